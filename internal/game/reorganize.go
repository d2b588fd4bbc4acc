package game

import (
	"sort"

	"github.com/lox/racketeer/racket"
)

// Reorganize greedily decomposes a floor into legal groups plus an
// unreorganizable leftover. Extraction priority is fixed: straight, quads,
// full house, trips, two pair, pair, flush; after each extraction the scan
// restarts from the top so a newly exposed stronger shape is never missed.
// The input is canonicalized first, so the same multiset always decomposes
// identically regardless of presentation order.
func Reorganize(cards []racket.Card) ([][]racket.Card, []racket.Card) {
	pool := append([]racket.Card{}, cards...)
	sortCanonical(pool)

	groups := [][]racket.Card{}
	for {
		group, rest, ok := extractOne(pool)
		if !ok {
			break
		}
		groups = append(groups, group)
		pool = rest
	}
	return groups, pool
}

// sortCanonical orders cards by rank descending, then suit, then card id.
func sortCanonical(cards []racket.Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}
		if cards[i].Suit != cards[j].Suit {
			return cards[i].Suit < cards[j].Suit
		}
		return cards[i].ID < cards[j].ID
	})
}

var extractors = []func([]racket.Card) ([]int, bool){
	extractStraight,
	extractQuads,
	extractFullHouse,
	extractTrips,
	extractTwoPair,
	extractPair,
	extractFlush,
}

// extractOne tries each extractor in priority order against the pool.
func extractOne(pool []racket.Card) (group []racket.Card, rest []racket.Card, ok bool) {
	for _, extract := range extractors {
		if picked, found := extract(pool); found {
			return take(pool, picked)
		}
	}
	return nil, pool, false
}

// take splits the pool into the picked cards (in picked order) and the rest.
func take(pool []racket.Card, picked []int) ([]racket.Card, []racket.Card, bool) {
	taken := make(map[int]bool, len(picked))
	group := make([]racket.Card, 0, len(picked))
	for _, i := range picked {
		taken[i] = true
		group = append(group, pool[i])
	}
	rest := make([]racket.Card, 0, len(pool)-len(picked))
	for i, c := range pool {
		if !taken[i] {
			rest = append(rest, c)
		}
	}
	return group, rest, true
}

// indicesOfRank returns pool indices per rank, preserving canonical order.
func indicesOfRank(pool []racket.Card) map[racket.Rank][]int {
	byRank := make(map[racket.Rank][]int)
	for i, c := range pool {
		byRank[c.Rank] = append(byRank[c.Rank], i)
	}
	return byRank
}

// extractStraight finds the highest five-rank run, trying ace-high down to
// six-high and the wheel last.
func extractStraight(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)

	for high := racket.Ace; high >= racket.Six; high-- {
		picked := make([]int, 0, 5)
		found := true
		for r := high; r > high-5; r-- {
			idx, ok := byRank[r]
			if !ok {
				found = false
				break
			}
			picked = append(picked, idx[0])
		}
		if found {
			return picked, true
		}
	}

	// Wheel: 5-4-3-2 plus an ace.
	picked := make([]int, 0, 5)
	for _, r := range []racket.Rank{racket.Five, racket.Four, racket.Three, racket.Two, racket.Ace} {
		idx, ok := byRank[r]
		if !ok {
			return nil, false
		}
		picked = append(picked, idx[0])
	}
	return picked, true
}

// ranksDescending returns the distinct ranks present, highest first.
func ranksDescending(byRank map[racket.Rank][]int) []racket.Rank {
	ranks := make([]racket.Rank, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}

func extractQuads(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)
	for _, r := range ranksDescending(byRank) {
		if idx := byRank[r]; len(idx) >= 4 {
			return idx[:4], true
		}
	}
	return nil, false
}

func extractFullHouse(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)
	ranks := ranksDescending(byRank)

	for _, r3 := range ranks {
		if len(byRank[r3]) < 3 {
			continue
		}
		for _, r2 := range ranks {
			if r2 == r3 || len(byRank[r2]) < 2 {
				continue
			}
			picked := append([]int{}, byRank[r3][:3]...)
			return append(picked, byRank[r2][:2]...), true
		}
	}
	return nil, false
}

func extractTrips(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)
	for _, r := range ranksDescending(byRank) {
		if idx := byRank[r]; len(idx) >= 3 {
			return idx[:3], true
		}
	}
	return nil, false
}

func extractTwoPair(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)
	picked := make([]int, 0, 4)
	for _, r := range ranksDescending(byRank) {
		if idx := byRank[r]; len(idx) >= 2 {
			picked = append(picked, idx[:2]...)
			if len(picked) == 4 {
				return picked, true
			}
		}
	}
	return nil, false
}

func extractPair(pool []racket.Card) ([]int, bool) {
	byRank := indicesOfRank(pool)
	for _, r := range ranksDescending(byRank) {
		if idx := byRank[r]; len(idx) >= 2 {
			return idx[:2], true
		}
	}
	return nil, false
}

// extractFlush needs five distinct ranks in one suit. Among qualifying
// suits it picks the one whose best five ranks compare highest.
func extractFlush(pool []racket.Card) ([]int, bool) {
	// First index per (suit, rank): one card per rank keeps the shape a
	// plain flush rather than tripping the duplicate-rank rejections.
	type suited struct {
		ranks []racket.Rank
		index map[racket.Rank]int
	}
	bySuit := make(map[racket.Suit]*suited)
	for i, c := range pool {
		s := bySuit[c.Suit]
		if s == nil {
			s = &suited{index: make(map[racket.Rank]int)}
			bySuit[c.Suit] = s
		}
		if _, seen := s.index[c.Rank]; !seen {
			s.index[c.Rank] = i
			s.ranks = append(s.ranks, c.Rank)
		}
	}

	var bestPicked []int
	var bestRanks []racket.Rank
	for suit := racket.Spades; suit <= racket.Clubs; suit++ {
		s := bySuit[suit]
		if s == nil || len(s.ranks) < 5 {
			continue
		}
		sort.Slice(s.ranks, func(i, j int) bool { return s.ranks[i] > s.ranks[j] })
		top := s.ranks[:5]
		if bestRanks == nil || flushRanksLess(bestRanks, top) {
			bestRanks = top
			bestPicked = bestPicked[:0]
			for _, r := range top {
				bestPicked = append(bestPicked, s.index[r])
			}
		}
	}
	return bestPicked, bestPicked != nil
}

// flushRanksLess reports whether a's descending ranks compare below b's.
func flushRanksLess(a, b []racket.Rank) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
