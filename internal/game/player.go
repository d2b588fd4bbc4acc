package game

import "github.com/lox/racketeer/racket"

// NumSeats is the fixed number of players in a match.
const NumSeats = 4

// PersonaTag identifies who (or what) is driving a seat. The engine never
// interprets it; it exists for display and for the decision layer's registry.
type PersonaTag string

const (
	PersonaHuman        PersonaTag = "human"
	PersonaAggressive   PersonaTag = "aggressive"
	PersonaBalanced     PersonaTag = "balanced"
	PersonaConservative PersonaTag = "conservative"
	PersonaOpportunist  PersonaTag = "opportunist"
	PersonaLearner      PersonaTag = "learner"
)

// Stats records a player's per-match activity counts.
type Stats struct {
	LegalPlays     int
	IllegalPlays   int
	Spikes         int
	AuditsDone     int
	AuditsReceived int
}

// PlayerState is one seat's complete state. Hands and floors are plain
// slices; order in the hand carries no rules meaning. Floor holds every card
// the player ever produced (legally or not) until an audit confiscates some;
// FloorGroups additionally preserves the per-production grouping for display
// and audit bookkeeping, since the flat floor cannot reconstruct it exactly.
type PlayerState struct {
	ID          int
	Name        string
	Persona     PersonaTag
	Hand        []racket.Card
	Floor       []racket.Card
	FloorGroups [][]racket.Card
	Score       int
	Stats       Stats
}

// Holds reports whether the player's hand contains every cited card,
// matching by unique card ID. Each held card satisfies at most one
// citation, so a decision naming the same physical card twice fails.
func (p *PlayerState) Holds(cards []racket.Card) bool {
	held := make(map[int]bool, len(p.Hand))
	for _, c := range p.Hand {
		held[c.ID] = true
	}
	for _, c := range cards {
		if !held[c.ID] {
			return false
		}
		delete(held, c.ID)
	}
	return true
}

// removeFromHand deletes the cited cards (by ID) from the hand.
// Callers must have verified possession first.
func (p *PlayerState) removeFromHand(cards []racket.Card) {
	remove := make(map[int]bool, len(cards))
	for _, c := range cards {
		remove[c.ID] = true
	}
	kept := make([]racket.Card, 0, len(p.Hand))
	for _, c := range p.Hand {
		if !remove[c.ID] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
}

func (p *PlayerState) clone() PlayerState {
	out := *p
	out.Hand = append([]racket.Card(nil), p.Hand...)
	out.Floor = append([]racket.Card(nil), p.Floor...)
	out.FloorGroups = make([][]racket.Card, len(p.FloorGroups))
	for i, g := range p.FloorGroups {
		out.FloorGroups[i] = append([]racket.Card(nil), g...)
	}
	return out
}
