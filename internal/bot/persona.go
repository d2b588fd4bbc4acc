package bot

import (
	"math"

	"github.com/lox/racketeer/internal/game"
	"github.com/lox/racketeer/racket"
)

// Profile parameterizes the shared persona heuristic. The four archetypes
// differ only in these thresholds and weights; the decision procedure itself
// is identical and fully deterministic.
type Profile struct {
	Tag game.PersonaTag

	// IllegalMargin is how many points a safe illegal play must beat the
	// best legal play by before the persona prefers it. Negative values
	// make the persona favour illegal play even at a small cost.
	IllegalMargin float64

	// DumpMinRaw is the minimum raw value before a spike dump is even
	// considered. Set above any reachable hand value to disable dumping.
	DumpMinRaw int

	// DumpMaxTrack refuses dumps once the audit track has climbed past
	// this level.
	DumpMaxTrack int

	// AuditMinGain is the minimum estimated net gain (transfer minus the
	// funding hand's foregone taxed value) before auditing an opponent.
	AuditMinGain int
}

// The four persona archetypes.
var (
	AggressiveProfile = Profile{
		Tag:           game.PersonaAggressive,
		IllegalMargin: -3,
		DumpMinRaw:    game.SpikeThreshold,
		DumpMaxTrack:  game.EscalationTrack,
		AuditMinGain:  10,
	}
	BalancedProfile = Profile{
		Tag:           game.PersonaBalanced,
		IllegalMargin: 2,
		DumpMinRaw:    35,
		DumpMaxTrack:  1,
		AuditMinGain:  5,
	}
	ConservativeProfile = Profile{
		Tag:           game.PersonaConservative,
		IllegalMargin: 8,
		DumpMinRaw:    math.MaxInt, // never dumps
		DumpMaxTrack:  0,
		AuditMinGain:  12,
	}
	OpportunistProfile = Profile{
		Tag:           game.PersonaOpportunist,
		IllegalMargin: 4,
		DumpMinRaw:    40,
		DumpMaxTrack:  2,
		AuditMinGain:  0, // audits whenever the expected value is non-negative
	}
)

// Persona is a deterministic heuristic decider parameterized by a Profile.
type Persona struct {
	profile Profile
}

// NewPersona creates a persona decider from a profile.
func NewPersona(profile Profile) *Persona {
	return &Persona{profile: profile}
}

// Tag returns the persona's archetype tag.
func (p *Persona) Tag() game.PersonaTag {
	return p.profile.Tag
}

// Decide inspects the seat's hand for the best legal, safe-illegal and dump
// productions, weighs an internal audit against the juiciest opponent, and
// returns one decision. It never mutates the state.
func (p *Persona) Decide(state game.MatchState, seat int) game.Decision {
	hand := state.Players[seat].Hand

	var audit *game.AuditCall
	if auditHand, ok := BestAuditHand(hand); ok {
		if target, leftoverRaw, ok := TopCrimeOpponent(&state, seat); ok {
			if AuditNetGain(auditHand, leftoverRaw) >= p.profile.AuditMinGain {
				audit = &game.AuditCall{Target: target, Cards: auditHand}
				hand = without(hand, auditHand)
			}
		}
	}

	decision := p.chooseProduction(hand, state.AuditTrack)
	decision.Audit = audit
	return decision
}

// chooseProduction picks the production half of the decision from whatever
// cards remain after the (optional) audit spend.
func (p *Persona) chooseProduction(hand []racket.Card, track int) game.Decision {
	legalCards, legalOK := BestLegal(hand)
	legalPts := math.Inf(-1)
	if legalOK {
		legalPts = float64(game.ScoreLegal(racket.RawValue(legalCards)))
	}

	safeCards, safeOK := BestSafeIllegal(hand)
	safePts := math.Inf(-1)
	if safeOK {
		safePts = math.Round(float64(racket.RawValue(safeCards)) * game.IllegalRate)
	}

	if dumpCards, ok := BestDump(hand); ok && track <= p.profile.DumpMaxTrack {
		raw := racket.RawValue(dumpCards)
		if raw >= p.profile.DumpMinRaw {
			dumpPts, _, _ := game.ScoreIllegal(raw, track)
			if float64(dumpPts) > legalPts && float64(dumpPts) > safePts {
				return game.Decision{Kind: game.DecideIllegal, Cards: dumpCards}
			}
		}
	}

	if safeOK && safePts >= legalPts+p.profile.IllegalMargin {
		return game.Decision{Kind: game.DecideIllegal, Cards: safeCards}
	}
	if legalOK {
		return game.Decision{Kind: game.DecideLegal, Cards: legalCards}
	}
	if safeOK && safePts > 0 {
		return game.Decision{Kind: game.DecideIllegal, Cards: safeCards}
	}
	return game.PassDecision()
}

// without returns hand minus the cited cards, matching by ID.
func without(hand, spent []racket.Card) []racket.Card {
	cited := make(map[int]bool, len(spent))
	for _, c := range spent {
		cited[c.ID] = true
	}
	out := make([]racket.Card, 0, len(hand))
	for _, c := range hand {
		if !cited[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
