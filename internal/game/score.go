package game

import "math"

// Scoring constants. Rates apply to a production's raw point value.
const (
	// LegalRate and LegalBonus price a legal production: half the raw
	// value, rounded, plus a flat bonus so even a minimal pair banks
	// something.
	LegalRate  = 0.5
	LegalBonus = 5

	// IllegalRate prices an illegal production.
	IllegalRate = 0.6

	// SpikeThreshold is the raw value at or above which an illegal
	// production spikes: it draws attention, pays a kickback and ticks
	// the shared audit track.
	SpikeThreshold = 27
	SpikeKickback  = 5

	// A spike escalates to two ticks when the track is already hot and
	// the raw value is large.
	EscalationRaw   = 25
	EscalationTrack = 3

	// AuditTrackMax is the track value that fires an external audit.
	AuditTrackMax = 5

	// External audit pricing: everyone pays twice their unreorganizable
	// leftover, the triggering seat pays a flat penalty on top.
	ExternalAuditFlatPenalty   = 10
	ExternalLeftoverMultiplier = 2

	// Internal audit pricing: the target pays 1.5x its leftover to the
	// auditor. The funding hand must be worth at least the minimum in
	// taxed value to qualify.
	InternalLeftoverMultiplier = 1.5
	InternalAuditMinTaxed      = 15
)

// ScoreLegal returns the points banked by a legal production of the given
// raw value.
func ScoreLegal(raw int) int {
	return int(math.Round(float64(raw)*LegalRate)) + LegalBonus
}

// TaxedValue is the declared worth of a hand after the legal-channel tax.
// It is the same formula as ScoreLegal by construction: declaring a hand
// legally and valuing it for audit qualification are the same operation.
func TaxedValue(raw int) int {
	return ScoreLegal(raw)
}

// ScoreIllegal returns the points, audit-track ticks and kickback for an
// illegal production of the given raw value at the given track level.
// Below the spike threshold the play is quiet: full rate, no ticks, no
// kickback. At or above it the kickback is deducted from the points and the
// track ticks once, or twice when both escalation conditions hold.
func ScoreIllegal(raw, track int) (points, ticks, kickback int) {
	points = int(math.Round(float64(raw) * IllegalRate))
	if raw < SpikeThreshold {
		return points, 0, 0
	}
	kickback = SpikeKickback
	points -= kickback
	ticks = 1
	if track >= EscalationTrack && raw >= EscalationRaw {
		ticks = 2
	}
	return points, ticks, kickback
}
