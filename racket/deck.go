package racket

import rand "math/rand/v2"

const (
	// DeckCopies is how many 52-card decks are merged into the shoe.
	DeckCopies = 4

	// DeckSize is the total number of cards in a fresh shoe.
	DeckSize = DeckCopies * 52
)

// Deck is the merged four-deck shoe. Shuffling is Fisher-Yates over the
// injected RNG, so the same seed always produces the same order.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled 208-card shoe with an explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}

	for deckIdx := uint8(0); deckIdx < DeckCopies; deckIdx++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				d.cards = append(d.cards, NewCard(rank, suit, deckIdx))
			}
		}
	}

	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals up to n cards from the deck head.
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		cards[i], _ = d.Deal()
	}
	return cards
}

// Remaining returns the cards still in the deck, head first. The returned
// slice is a copy and safe to retain.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
