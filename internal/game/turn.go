package game

import (
	"fmt"
	"math"

	"github.com/lox/racketeer/racket"
)

// drawCount is how many cards a turn's draw takes from the deck head.
const drawCount = 2

// Draw performs the current player's draw and moves the turn to the action
// phase. When fewer than drawCount cards remain no cards move, and the
// end-round seat is recorded (once) as the seat three turns prior: the seat
// at which the final lap must complete.
func (m MatchState) Draw() (MatchState, error) {
	if m.Over() {
		return m, ErrMatchOver
	}
	if m.Phase != PhaseAwaitingDraw {
		return m, fmt.Errorf("%w: draw during %s", ErrWrongPhase, m.Phase)
	}

	n := m.clone()
	if len(n.Deck) < drawCount {
		if n.EndRoundSeat == NoSeat {
			n.EndRoundSeat = (n.Turn + NumSeats - 3) % NumSeats
			n.appendEvent(Event{Type: EventTypeEndRound, Seat: n.EndRoundSeat})
		}
	} else {
		drawn := n.Deck[:drawCount]
		p := n.CurrentPlayer()
		p.Hand = append(p.Hand, drawn...)
		n.appendEvent(Event{Type: EventTypeDraw, Seat: n.Turn, Cards: append([]racket.Card(nil), drawn...)})
		n.Deck = n.Deck[drawCount:]
	}
	n.Phase = PhaseAwaitingAction
	return n, nil
}

// Apply executes the current player's decision: the optional internal audit
// first, then the production. Any rejection returns the receiver unchanged.
func (m MatchState) Apply(d Decision) (MatchState, error) {
	if m.Over() {
		return m, ErrMatchOver
	}
	if m.Phase != PhaseAwaitingAction {
		return m, fmt.Errorf("%w: action during %s", ErrWrongPhase, m.Phase)
	}

	// Validate the whole decision against the untouched state before
	// mutating anything, so a bad half leaves no partial effects.
	if d.Audit != nil {
		if err := m.validateInternalAudit(d.Audit); err != nil {
			return m, err
		}
	}
	if err := m.validateProduction(d); err != nil {
		return m, err
	}

	n := m.clone()
	if d.Audit != nil {
		n.runInternalAudit(d.Audit)
	}
	n.runProduction(d)

	n.finishTurn()
	return n, nil
}

// validateProduction checks the production half of a decision.
func (m *MatchState) validateProduction(d Decision) error {
	switch d.Kind {
	case DecidePass:
		return nil
	case DecideLegal, DecideIllegal:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDecision, d.Kind)
	}
	if len(d.Cards) == 0 {
		return ErrNoCards
	}
	p := m.CurrentPlayer()
	if !p.Holds(d.Cards) {
		return fmt.Errorf("%w: %s production", ErrNotHoldingCards, d.Kind)
	}
	legal := racket.IsLegalExact(d.Cards)
	if d.Kind == DecideLegal && !legal {
		return ErrNotLegalHand
	}
	if d.Kind == DecideIllegal && legal {
		return ErrHandIsLegal
	}
	// The audit half may spend some of the same cards; reject overlap.
	if d.Audit != nil {
		cited := make(map[int]bool, len(d.Audit.Cards))
		for _, c := range d.Audit.Cards {
			cited[c.ID] = true
		}
		for _, c := range d.Cards {
			if cited[c.ID] {
				return fmt.Errorf("%w: card %s cited twice", ErrNotHoldingCards, c)
			}
		}
	}
	return nil
}

// runProduction applies an already-validated production to the clone.
func (m *MatchState) runProduction(d Decision) {
	if d.Kind == DecidePass {
		m.appendEvent(Event{Type: EventTypePass, Seat: m.Turn})
		return
	}

	p := m.CurrentPlayer()
	p.removeFromHand(d.Cards)
	group := append([]racket.Card(nil), d.Cards...)
	p.Floor = append(p.Floor, group...)
	p.FloorGroups = append(p.FloorGroups, group)

	raw := racket.RawValue(d.Cards)
	switch d.Kind {
	case DecideLegal:
		points := ScoreLegal(raw)
		p.Score += points
		p.Stats.LegalPlays++
		m.appendEvent(Event{Type: EventTypeLegalPlay, Seat: m.Turn, Cards: group, Points: points})
	case DecideIllegal:
		points, ticks, kickback := ScoreIllegal(raw, m.AuditTrack)
		if !m.Options.EscalatingTicks && ticks > 1 {
			ticks = 1
		}
		p.Score += points
		p.Stats.IllegalPlays++
		if kickback > 0 {
			p.Stats.Spikes++
		}
		m.appendEvent(Event{Type: EventTypeIllegalPlay, Seat: m.Turn, Cards: group, Points: points, Ticks: ticks, Kickback: kickback})
		if ticks > 0 {
			m.AuditTrack += ticks
			if m.AuditTrack > AuditTrackMax {
				m.AuditTrack = AuditTrackMax
			}
			if m.AuditTrack == AuditTrackMax {
				m.runExternalAudit(m.Turn)
			}
		}
	}
}

// validateInternalAudit checks the audit half of a decision: the actor must
// hold the cited cards, they must be an exact legal hand of trips or better,
// and their taxed value must reach the qualification minimum.
func (m *MatchState) validateInternalAudit(a *AuditCall) error {
	if a.Target < 0 || a.Target >= NumSeats || a.Target == m.Turn {
		return ErrBadAuditTarget
	}
	p := m.CurrentPlayer()
	if !p.Holds(a.Cards) {
		return fmt.Errorf("%w: audit hand", ErrNotHoldingCards)
	}
	ht := racket.Classify(a.Cards)
	if ht == racket.HandIllegal {
		return fmt.Errorf("%w: audit hand", ErrNotLegalHand)
	}
	if !ht.AuditEligible() {
		return fmt.Errorf("%w: got %s", ErrAuditNotEligible, ht)
	}
	if taxed := TaxedValue(racket.RawValue(a.Cards)); taxed < InternalAuditMinTaxed {
		return fmt.Errorf("%w: taxed %d < %d", ErrBelowAuditThreshold, taxed, InternalAuditMinTaxed)
	}
	return nil
}

// runInternalAudit applies an already-validated internal audit to the clone.
// The funding hand moves to the discard pile; the target's floor is
// reorganized, its leftover confiscated, and 1.5x the leftover raw value
// transfers from target to actor. The target's score may transiently go
// negative here; only external audits clamp.
func (m *MatchState) runInternalAudit(a *AuditCall) {
	actor := m.CurrentPlayer()
	target := &m.Players[a.Target]

	actor.removeFromHand(a.Cards)
	m.Discard = append(m.Discard, a.Cards...)

	kept, leftover := Reorganize(target.Floor)
	transfer := int(math.Round(InternalLeftoverMultiplier * float64(racket.RawValue(leftover))))

	actor.Score += transfer
	target.Score -= transfer
	actor.Stats.AuditsDone++
	target.Stats.AuditsReceived++

	// Rebuild the target's floor from the kept groups only; the leftover
	// is confiscated and leaves play entirely.
	target.FloorGroups = kept
	target.Floor = flatten(kept)

	m.appendEvent(Event{
		Type:        EventTypeInternalAudit,
		Seat:        m.Turn,
		Target:      a.Target,
		Cards:       append([]racket.Card(nil), a.Cards...),
		Confiscated: leftover,
		Points:      transfer,
	})
}

// runExternalAudit fires the track-driven all-players audit: every floor is
// reorganized, every player is fined twice their leftover raw value (scores
// clamp at zero), the triggering seat pays the flat penalty, leftovers leave
// play and the track resets.
func (m *MatchState) runExternalAudit(trigger int) {
	for i := range m.Players {
		p := &m.Players[i]
		kept, leftover := Reorganize(p.Floor)
		fine := ExternalLeftoverMultiplier * racket.RawValue(leftover)
		p.Score -= fine
		if i == trigger {
			p.Score -= ExternalAuditFlatPenalty
		}
		if p.Score < 0 {
			p.Score = 0
		}
		p.Stats.AuditsReceived++
		p.FloorGroups = kept
		p.Floor = flatten(kept)

		m.appendEvent(Event{
			Type:        EventTypeExternalAudit,
			Seat:        trigger,
			Target:      i,
			Confiscated: leftover,
			Points:      -fine,
		})
	}
	m.AuditTrack = 0
}

// finishTurn runs the end check and marks the turn complete.
func (m *MatchState) finishTurn() {
	// First seat in ascending order at or above target wins immediately.
	for i := range m.Players {
		if m.Players[i].Score >= m.Options.TargetScore {
			m.declareWinner(i)
			return
		}
	}
	m.Phase = PhaseTurnComplete
}

// Advance moves the turn pointer to the next seat, unconditionally modulo
// four. If the deck ran out and the pointer returns to the recorded
// end-round seat, the match ends with the current highest scorer winning.
func (m MatchState) Advance() (MatchState, error) {
	if m.Over() {
		return m, ErrMatchOver
	}
	if m.Phase != PhaseTurnComplete {
		return m, fmt.Errorf("%w: advance during %s", ErrWrongPhase, m.Phase)
	}

	n := m.clone()
	n.Turn = (n.Turn + 1) % NumSeats
	if n.EndRoundSeat != NoSeat && n.Turn == n.EndRoundSeat {
		n.declareWinner(n.leader())
		return n, nil
	}
	n.Phase = PhaseAwaitingDraw
	return n, nil
}

func (m *MatchState) declareWinner(seat int) {
	m.Winner = seat
	m.Phase = PhaseMatchOver
	m.appendEvent(Event{Type: EventTypeMatchOver, Seat: seat, Points: m.Players[seat].Score})
}

func flatten(groups [][]racket.Card) []racket.Card {
	out := []racket.Card{}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
