package racket

import "fmt"

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a single card drawn from the merged four-deck shoe. DeckIndex
// records which of the four source decks it came from, so the up-to-four
// copies of every rank/suit combination stay distinguishable.
type Card struct {
	ID        int
	Rank      Rank
	Suit      Suit
	DeckIndex uint8
}

// NewCard creates a card with its canonical ID for the given deck copy.
func NewCard(rank Rank, suit Suit, deckIndex uint8) Card {
	return Card{
		ID:        int(deckIndex)*52 + int(suit)*13 + int(rank-Two),
		Rank:      rank,
		Suit:      suit,
		DeckIndex: deckIndex,
	}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// PointValue returns the card's point value: face value for 2-10,
// 10 for J/Q/K, 11 for Ace.
func (c Card) PointValue() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Jack:
		return 10
	default:
		return int(c.Rank)
	}
}

// ParseCard parses a card from compact notation such as "As" or "Td".
// The parsed card belongs to deck copy zero.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want rank+suit", s)
	}

	var rank Rank
	switch s[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(s[0] - '0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank %q in card %q", s[0], s)
	}

	var suit Suit
	switch s[1] {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card %q", s[1], s)
	}

	return NewCard(rank, suit, 0), nil
}

// ParseCards parses multiple cards, assigning repeated rank/suit
// combinations to successive deck copies so every card keeps a unique ID.
// It is primarily a fixture helper for tests and examples.
func ParseCards(ss ...string) ([]Card, error) {
	seen := make(map[[2]uint8]uint8, len(ss))
	cards := make([]Card, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		key := [2]uint8{uint8(c.Rank), uint8(c.Suit)}
		copyIdx := seen[key]
		if copyIdx >= DeckCopies {
			return nil, fmt.Errorf("more than %d copies of %s", DeckCopies, c)
		}
		seen[key] = copyIdx + 1
		cards = append(cards, NewCard(c.Rank, c.Suit, copyIdx))
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on malformed input. Test fixtures only.
func MustParseCards(ss ...string) []Card {
	cards, err := ParseCards(ss...)
	if err != nil {
		panic(err)
	}
	return cards
}
