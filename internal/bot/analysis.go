package bot

import (
	"math"
	"sort"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/racket"
)

// sortedByValue returns the hand ordered by descending point value, with ID
// as the stable tiebreak so every analysis pass sees the same order.
func sortedByValue(hand []racket.Card) []racket.Card {
	out := make([]racket.Card, len(hand))
	copy(out, hand)
	sort.Slice(out, func(i, j int) bool {
		if out[i].PointValue() != out[j].PointValue() {
			return out[i].PointValue() > out[j].PointValue()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// legalCandidates enumerates every exact legal grouping assemblable from the
// hand, one per shape/rank combination. It is the shared search behind
// BestLegal and BestAuditHand.
func legalCandidates(hand []racket.Card) [][]racket.Card {
	byRank := make(map[racket.Rank][]racket.Card)
	bySuit := make(map[racket.Suit][]racket.Card)
	for _, c := range sortedByValue(hand) {
		byRank[c.Rank] = append(byRank[c.Rank], c)
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var out [][]racket.Card

	var pairRanks []racket.Rank
	for rank := racket.Ace; rank >= racket.Two; rank-- {
		cards := byRank[rank]
		if len(cards) >= 2 {
			out = append(out, cards[:2])
			pairRanks = append(pairRanks, rank)
		}
		if len(cards) >= 3 {
			out = append(out, cards[:3])
		}
		if len(cards) >= 4 {
			out = append(out, cards[:4])
		}
	}

	// Two pair from the two highest distinct pairs.
	if len(pairRanks) >= 2 {
		group := append(append([]racket.Card{}, byRank[pairRanks[0]][:2]...), byRank[pairRanks[1]][:2]...)
		out = append(out, group)
	}

	// Full houses: every trips rank against the best other pair rank.
	for _, trips := range pairRanks {
		if len(byRank[trips]) < 3 {
			continue
		}
		for _, pair := range pairRanks {
			if pair == trips {
				continue
			}
			group := append(append([]racket.Card{}, byRank[trips][:3]...), byRank[pair][:2]...)
			out = append(out, group)
			break
		}
	}

	// Straights, highest first, then the wheel.
	tryStraight := func(ranks [5]racket.Rank) {
		group := make([]racket.Card, 0, 5)
		for _, r := range ranks {
			if len(byRank[r]) == 0 {
				return
			}
			group = append(group, byRank[r][0])
		}
		out = append(out, group)
	}
	for high := racket.Ace; high >= racket.Six; high-- {
		tryStraight([5]racket.Rank{high - 4, high - 3, high - 2, high - 1, high})
	}
	tryStraight([5]racket.Rank{racket.Ace, racket.Two, racket.Three, racket.Four, racket.Five})

	// Flushes: top five distinct ranks per suit.
	for suit := racket.Spades; suit <= racket.Clubs; suit++ {
		group := make([]racket.Card, 0, 5)
		seen := make(map[racket.Rank]bool)
		for _, c := range bySuit[suit] {
			if seen[c.Rank] {
				continue
			}
			seen[c.Rank] = true
			group = append(group, c)
			if len(group) == 5 {
				out = append(out, group)
				break
			}
		}
	}

	return out
}

// BestLegal finds the exact legal grouping in the hand with the highest raw
// value. Deterministic: ties keep the earlier candidate in the fixed
// enumeration order.
func BestLegal(hand []racket.Card) ([]racket.Card, bool) {
	var best []racket.Card
	bestRaw := -1
	for _, cand := range legalCandidates(hand) {
		if !racket.IsLegalExact(cand) {
			continue
		}
		if raw := racket.RawValue(cand); raw > bestRaw {
			best = cand
			bestRaw = raw
		}
	}
	return best, best != nil
}

// BestAuditHand finds the cheapest currently-held hand that qualifies to
// fund an internal audit: legally exact, trips or better, taxed value at or
// above the threshold. Spending the weakest qualifying hand preserves the
// rest of the hand's earning power.
func BestAuditHand(hand []racket.Card) ([]racket.Card, bool) {
	var best []racket.Card
	bestRaw := math.MaxInt
	for _, cand := range legalCandidates(hand) {
		ht := racket.Classify(cand)
		if !ht.AuditEligible() {
			continue
		}
		raw := racket.RawValue(cand)
		if game.TaxedValue(raw) < game.InternalAuditMinTaxed {
			continue
		}
		if raw < bestRaw {
			best = cand
			bestRaw = raw
		}
	}
	return best, best != nil
}

// BestSafeIllegal assembles the maximal-raw illegal production staying below
// the spike threshold: greedy descending accumulation, skipping cards that
// would cross the line, then shrinking if the result accidentally forms a
// legal shape.
func BestSafeIllegal(hand []racket.Card) ([]racket.Card, bool) {
	var cards []racket.Card
	total := 0
	for _, c := range sortedByValue(hand) {
		if total+c.PointValue() >= game.SpikeThreshold {
			continue
		}
		cards = append(cards, c)
		total += c.PointValue()
	}
	cards = breakLegalShape(cards)
	return cards, len(cards) > 0
}

// BestDump assembles the maximal-raw illegal production with no regard for
// the spike threshold: the whole hand, shrunk only if it reads as legal.
func BestDump(hand []racket.Card) ([]racket.Card, bool) {
	cards := breakLegalShape(sortedByValue(hand))
	return cards, len(cards) > 0
}

// breakLegalShape drops trailing (lowest-value) cards until the set is no
// longer an exact legal shape. Dropping one card always changes cardinality,
// so the loop terminates at the latest with a single, necessarily illegal,
// card.
func breakLegalShape(cards []racket.Card) []racket.Card {
	for len(cards) > 0 && racket.IsLegalExact(cards) {
		cards = cards[:len(cards)-1]
	}
	return cards
}

// EstimatedLeftoverRaw estimates a seat's crime exposure: the raw value that
// would be confiscated if its floor were reorganized right now.
func EstimatedLeftoverRaw(p *game.PlayerState) int {
	_, leftover := game.Reorganize(p.Floor)
	return racket.RawValue(leftover)
}

// TopCrimeOpponent returns the opponent of seat with the highest estimated
// leftover, with the lowest seat id winning ties. ok is false when every
// opponent's floor reorganizes cleanly.
func TopCrimeOpponent(state *game.MatchState, seat int) (target, leftoverRaw int, ok bool) {
	target = game.NoSeat
	for i := range state.Players {
		if i == seat {
			continue
		}
		if raw := EstimatedLeftoverRaw(&state.Players[i]); raw > leftoverRaw {
			target = i
			leftoverRaw = raw
		}
	}
	return target, leftoverRaw, target != game.NoSeat
}

// AuditNetGain estimates the net value of an internal audit: the transfer
// taken from the target minus the taxed value the funding hand could have
// earned as a legal play instead.
func AuditNetGain(auditHand []racket.Card, leftoverRaw int) int {
	transfer := int(math.Round(game.InternalLeftoverMultiplier * float64(leftoverRaw)))
	return transfer - game.TaxedValue(racket.RawValue(auditHand))
}
