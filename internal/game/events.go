package game

import "github.com/lox/racketeer/racket"

// EventType represents a match event type with type safety
type EventType string

const (
	EventTypeDraw          EventType = "draw"
	EventTypeLegalPlay     EventType = "legal_play"
	EventTypeIllegalPlay   EventType = "illegal_play"
	EventTypePass          EventType = "pass"
	EventTypeInternalAudit EventType = "internal_audit"
	EventTypeExternalAudit EventType = "external_audit"
	EventTypeEndRound      EventType = "end_round"
	EventTypeMatchOver     EventType = "match_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is one entry in a match's event log. The engine appends events to
// every returned state so callers can render or replay a match without
// re-deriving what happened. Fields are populated per type; unused fields
// stay zero.
type Event struct {
	Type        EventType
	Seat        int
	Target      int
	Cards       []racket.Card
	Confiscated []racket.Card
	Points      int
	Ticks       int
	Kickback    int
}

func (m *MatchState) appendEvent(e Event) {
	if !m.Options.RecordEvents {
		return
	}
	m.Events = append(m.Events, e)
}
