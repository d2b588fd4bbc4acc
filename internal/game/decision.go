package game

import "github.com/lox/racketeer/racket"

// DecisionKind tags what kind of production a decision asks for.
type DecisionKind uint8

const (
	DecidePass DecisionKind = iota
	DecideLegal
	DecideIllegal
)

// String returns the string representation of a decision kind
func (k DecisionKind) String() string {
	switch k {
	case DecideLegal:
		return "legal"
	case DecideIllegal:
		return "illegal"
	default:
		return "pass"
	}
}

// AuditCall asks for an internal audit against a seat, funded by the cited
// cards from the actor's hand.
type AuditCall struct {
	Target int
	Cards  []racket.Card
}

// Decision is the sole contract between the decision layer and the match
// state machine: a production (or pass) optionally combined with an internal
// audit. Deciders return decisions; they never mutate state themselves.
type Decision struct {
	Kind  DecisionKind
	Cards []racket.Card
	Audit *AuditCall
}

// PassDecision is the always-valid fallback decision.
func PassDecision() Decision {
	return Decision{Kind: DecidePass}
}
