package env

import "errors"

var (
	// ErrClosed is returned once the simulation goroutine has stopped —
	// after Close, or after the engine failed. The environment is
	// unusable; callers must discard it and construct a new one.
	ErrClosed = errors.New("env: environment closed")

	// ErrWrongSeat is returned by MultiEnvironment.Play when the action
	// targets a seat other than the one the last observation addressed.
	// The pending observation is not consumed; the caller may retry
	// with the correct seat.
	ErrWrongSeat = errors.New("env: action sent for a seat that was not addressed")

	// ErrNoDecision is returned by Play when no decision is
	// outstanding: before the first Start, or after a terminal
	// observation (call Start to enter the next game).
	ErrNoDecision = errors.New("env: no outstanding decision to answer")

	// ErrDecisionPending is returned by Start while an observation is
	// still waiting for its action — answer it with Play first.
	ErrDecisionPending = errors.New("env: a decision is still pending")
)
