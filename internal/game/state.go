package game

import (
	"github.com/lox/racketeer/internal/randutil"
	"github.com/lox/racketeer/racket"
)

// Phase represents the turn lifecycle state
type Phase uint8

const (
	PhaseAwaitingDraw Phase = iota
	PhaseAwaitingAction
	PhaseTurnComplete
	PhaseMatchOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingDraw:
		return "awaiting-draw"
	case PhaseAwaitingAction:
		return "awaiting-action"
	case PhaseTurnComplete:
		return "turn-complete"
	case PhaseMatchOver:
		return "match-over"
	default:
		return "unknown"
	}
}

// MatchOptions configures a match.
type MatchOptions struct {
	// TargetScore ends the match the instant any player reaches it.
	TargetScore int

	// EscalatingTicks enables the double-tick spike escalation. When
	// false a spike always adds a single tick.
	EscalatingTicks bool

	// RecordEvents controls whether state transitions append to the event
	// log. Training loops switch it off to avoid unbounded growth.
	RecordEvents bool
}

// DefaultOptions returns the standard match options.
func DefaultOptions() MatchOptions {
	return MatchOptions{
		TargetScore:     200,
		EscalatingTicks: true,
		RecordEvents:    true,
	}
}

// NoSeat marks the end-round and winner fields as unset.
const NoSeat = -1

// MatchState is the authoritative game state. It is a persistent value:
// every operation deep-clones and returns a new state, leaving its receiver
// untouched. That makes history/replay trivial and lets training loops run
// many independent matches concurrently without aliasing, as long as no single
// state value is advanced from two call sites at once.
type MatchState struct {
	Players    [NumSeats]PlayerState
	Deck       []racket.Card
	Discard    []racket.Card
	AuditTrack int
	Turn       int
	Phase      Phase

	// EndRoundSeat is recorded once the deck can no longer supply a full
	// draw; the match ends when the turn pointer comes back around to it.
	EndRoundSeat int

	// Winner is NoSeat until the match is decided.
	Winner int

	Options MatchOptions
	Events  []Event
}

// NewMatch creates a fresh match with a seeded shuffled deck, zeroed players
// and the given options. Same seed, names and options produce the same match.
func NewMatch(seed int64, names [NumSeats]string, personas [NumSeats]PersonaTag, opts MatchOptions) MatchState {
	deck := racket.NewDeck(randutil.New(seed))

	m := MatchState{
		Deck:         deck.Remaining(),
		Discard:      []racket.Card{},
		Turn:         0,
		Phase:        PhaseAwaitingDraw,
		EndRoundSeat: NoSeat,
		Winner:       NoSeat,
		Options:      opts,
	}
	for i := range m.Players {
		m.Players[i] = PlayerState{
			ID:          i,
			Name:        names[i],
			Persona:     personas[i],
			Hand:        []racket.Card{},
			Floor:       []racket.Card{},
			FloorGroups: [][]racket.Card{},
		}
	}
	return m
}

// Over reports whether the match has been decided.
func (m *MatchState) Over() bool {
	return m.Phase == PhaseMatchOver
}

// CurrentPlayer returns the seat whose turn it is.
func (m *MatchState) CurrentPlayer() *PlayerState {
	return &m.Players[m.Turn]
}

// clone deep-copies the state so mutations never alias the receiver.
func (m MatchState) clone() MatchState {
	out := m
	for i := range m.Players {
		out.Players[i] = m.Players[i].clone()
	}
	out.Deck = append([]racket.Card(nil), m.Deck...)
	out.Discard = append([]racket.Card(nil), m.Discard...)
	out.Events = append([]Event(nil), m.Events...)
	return out
}

// leader returns the seat with the highest score, breaking ties by the
// lowest seat id.
func (m *MatchState) leader() int {
	best := 0
	for i := 1; i < NumSeats; i++ {
		if m.Players[i].Score > m.Players[best].Score {
			best = i
		}
	}
	return best
}
