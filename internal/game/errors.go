package game

import "errors"

// Sentinel errors returned by the match state machine. Call sites wrap
// these with context via fmt.Errorf and %w.
var (
	ErrMatchOver           = errors.New("match is over")
	ErrWrongPhase          = errors.New("operation not valid in this phase")
	ErrNotHoldingCards     = errors.New("player does not hold the cited cards")
	ErrNoCards             = errors.New("production requires at least one card")
	ErrUnknownDecision     = errors.New("unknown decision kind")
	ErrNotLegalHand        = errors.New("cards do not form a legal hand")
	ErrHandIsLegal         = errors.New("cards form a legal hand")
	ErrAuditNotEligible    = errors.New("audit hand must be trips or better")
	ErrBelowAuditThreshold = errors.New("audit hand below qualification minimum")
	ErrBadAuditTarget      = errors.New("audit target must be another seat")
)
