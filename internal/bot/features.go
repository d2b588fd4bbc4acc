package bot

import (
	"fmt"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/racket"
)

// featureKey extracts the learner's view of a state and discretizes it into
// a compact string key. Every feature is bucketed into a handful of values
// so the tabular Q-function generalizes across similar situations instead of
// memorizing exact hands.
func featureKey(state *game.MatchState, seat int) string {
	p := &state.Players[seat]

	handSize := bucket(len(p.Hand), 3, 6, 10)

	legalQuality := 0
	if cards, ok := BestLegal(p.Hand); ok {
		legalQuality = 1 + bucket(game.ScoreLegal(racket.RawValue(cards)), 12, 20, 1<<30)
	}

	illegalQuality := 0
	if cards, ok := BestSafeIllegal(p.Hand); ok {
		illegalQuality = 1 + bucket(racket.RawValue(cards), 10, 18, 1<<30)
	}

	crime := 0
	if _, leftoverRaw, ok := TopCrimeOpponent(state, seat); ok {
		crime = 1 + bucket(leftoverRaw, 15, 30, 1<<30)
	}

	phase := bucket(len(state.Deck), racket.DeckSize/4, racket.DeckSize/2, 3*racket.DeckSize/4)

	canAudit := 0
	if _, ok := BestAuditHand(p.Hand); ok {
		canAudit = 1
	}

	position := 0
	leaderScore := 0
	for i := range state.Players {
		if i != seat && state.Players[i].Score > leaderScore {
			leaderScore = state.Players[i].Score
		}
	}
	switch {
	case p.Score > leaderScore:
		position = 2
	case leaderScore-p.Score <= 20:
		position = 1
	}

	return fmt.Sprintf("h%d|l%d|i%d|c%d|t%d|g%d|a%d|p%d",
		handSize, legalQuality, illegalQuality, crime,
		state.AuditTrack, phase, canAudit, position)
}

// bucket maps v onto 0..3 using three ascending thresholds.
func bucket(v int, t1, t2, t3 int) int {
	switch {
	case v < t1:
		return 0
	case v < t2:
		return 1
	case v < t3:
		return 2
	default:
		return 3
	}
}
