// Package bot is the decision layer: deterministic persona heuristics and a
// tabular Q-learning agent, all satisfying one capability: given a match
// state and a seat, return a decision. Deciders never mutate state; the
// match state machine applies what they return.
package bot

import "github.com/lox/racketeer/internal/game"

// Decider produces a decision for the given seat. Implementations must be
// pure with respect to the passed state and return in bounded time.
type Decider interface {
	Decide(state game.MatchState, seat int) game.Decision
}

// ForPersona returns the decider registered for a persona tag. Learner
// personas are resolved through a Registry by the caller; unknown tags fall
// back to the balanced persona so AI unavailability never blocks a match.
func ForPersona(tag game.PersonaTag) Decider {
	switch tag {
	case game.PersonaAggressive:
		return NewPersona(AggressiveProfile)
	case game.PersonaConservative:
		return NewPersona(ConservativeProfile)
	case game.PersonaOpportunist:
		return NewPersona(OpportunistProfile)
	default:
		return NewPersona(BalancedProfile)
	}
}
