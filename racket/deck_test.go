package racket

import (
	"testing"

	"github.com/lox/racketeer/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(randutil.New(42))

	if deck.CardsRemaining() != DeckSize {
		t.Errorf("Expected %d cards, got %d", DeckSize, deck.CardsRemaining())
	}

	// Every rank/suit combination appears exactly DeckCopies times, and
	// every card ID is unique.
	counts := make(map[[2]uint8]int)
	ids := make(map[int]bool)
	for _, c := range deck.Remaining() {
		counts[[2]uint8{uint8(c.Rank), uint8(c.Suit)}]++
		if ids[c.ID] {
			t.Fatalf("duplicate card ID %d", c.ID)
		}
		ids[c.ID] = true
	}
	if len(counts) != 52 {
		t.Errorf("Expected 52 distinct rank/suit combinations, got %d", len(counts))
	}
	for key, n := range counts {
		if n != DeckCopies {
			t.Errorf("combination %v appears %d times, want %d", key, n, DeckCopies)
		}
	}
}

func TestDeckDeterministicShuffle(t *testing.T) {
	a := NewDeck(randutil.New(7))
	b := NewDeck(randutil.New(7))
	c := NewDeck(randutil.New(8))

	if got, want := a.Remaining(), b.Remaining(); !sameOrder(got, want) {
		t.Errorf("same seed should produce the same order")
	}
	if sameOrder(a.Remaining(), c.Remaining()) {
		t.Errorf("different seeds should produce different orders")
	}
}

func TestDeckDeal(t *testing.T) {
	deck := NewDeck(randutil.New(42))

	card, ok := deck.Deal()
	if !ok {
		t.Fatal("Deal should succeed on a fresh deck")
	}
	if card.Rank < Two || card.Rank > Ace {
		t.Errorf("invalid rank dealt: %v", card.Rank)
	}
	if deck.CardsRemaining() != DeckSize-1 {
		t.Errorf("Expected %d cards after dealing, got %d", DeckSize-1, deck.CardsRemaining())
	}

	rest := deck.DealN(DeckSize - 1)
	if len(rest) != DeckSize-1 {
		t.Errorf("Expected to deal the rest of the deck, got %d", len(rest))
	}
	if !deck.IsEmpty() {
		t.Error("deck should be empty")
	}
	if _, ok := deck.Deal(); ok {
		t.Error("Deal should fail on an empty deck")
	}
	if got := deck.DealN(2); len(got) != 0 {
		t.Errorf("DealN on an empty deck should deal nothing, got %d", len(got))
	}
}

func sameOrder(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
