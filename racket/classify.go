package racket

import "sort"

// HandType enumerates the legal production shapes ordered from weakest to
// strongest. HandIllegal is the sentinel for anything that matches none.
type HandType uint8

const (
	HandIllegal HandType = iota
	HandPair
	HandTwoPair
	HandTrips
	HandStraight
	HandFlush
	HandFullHouse
	HandQuads
	HandStraightFlush
)

// String returns a human-readable hand description.
func (t HandType) String() string {
	switch t {
	case HandPair:
		return "Pair"
	case HandTwoPair:
		return "Two Pair"
	case HandTrips:
		return "Trips"
	case HandStraight:
		return "Straight"
	case HandFlush:
		return "Flush"
	case HandFullHouse:
		return "Full House"
	case HandQuads:
		return "Quads"
	case HandStraightFlush:
		return "Straight Flush"
	default:
		return "Illegal"
	}
}

// AuditEligible reports whether the shape qualifies to fund an internal
// audit: trips or better. Pairs and two pair never qualify.
func (t HandType) AuditEligible() bool {
	return t >= HandTrips
}

// Classify identifies the exact shape of the given cards. It is a pure
// function of the rank/suit multiset; card order and deck copy are ignored.
// Only cardinalities 2, 3, 4 and 5 can ever be legal.
func Classify(cards []Card) HandType {
	switch len(cards) {
	case 2:
		if cards[0].Rank == cards[1].Rank {
			return HandPair
		}
	case 3:
		if cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank {
			return HandTrips
		}
	case 4:
		return classifyFour(cards)
	case 5:
		return classifyFive(cards)
	}
	return HandIllegal
}

// IsLegalExact reports whether the exact given set (not a subset) forms one
// of the legal production shapes.
func IsLegalExact(cards []Card) bool {
	return Classify(cards) != HandIllegal
}

func classifyFour(cards []Card) HandType {
	counts := rankCounts(cards)
	switch len(counts) {
	case 1:
		return HandQuads
	case 2:
		// Two distinct ranks in four cards is two pair unless split 3+1.
		for _, n := range counts {
			if n == 3 {
				return HandIllegal
			}
		}
		return HandTwoPair
	}
	return HandIllegal
}

func classifyFive(cards []Card) HandType {
	counts := rankCounts(cards)

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	// Five copies of one rank is never legal, even when suited (possible
	// with a four-deck shoe only through misuse, but rejected regardless).
	if len(counts) == 1 {
		return HandIllegal
	}

	if len(counts) == 2 {
		// 3+2 is a full house. Full house wins over flush when the deck
		// copies make both readings possible.
		for _, n := range counts {
			if n == 3 {
				return HandFullHouse
			}
		}
		// 4+1: only the suits can save it.
		if flush {
			return HandFlush
		}
		return HandIllegal
	}

	straight := len(counts) == 5 && isStraightRanks(cards)

	switch {
	case straight && flush:
		return HandStraightFlush
	case flush:
		return HandFlush
	case straight:
		return HandStraight
	}
	return HandIllegal
}

// isStraightRanks checks five distinct ranks for consecutiveness, including
// the ace-low wheel (A-2-3-4-5).
func isStraightRanks(cards []Card) bool {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)

	consecutive := true
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return true
	}

	// Wheel: 2-3-4-5 plus an ace.
	return ranks[0] == int(Two) && ranks[1] == int(Three) &&
		ranks[2] == int(Four) && ranks[3] == int(Five) && ranks[4] == int(Ace)
}

func rankCounts(cards []Card) map[Rank]int {
	counts := make(map[Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}
