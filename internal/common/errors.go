// Package common defines shared constants and sentinel errors used across
// the DeepBrief client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport / availability errors.
	ErrUnavailable = errors.New("service unavailable")

	// Credit gating. Distinguished outcome, not a generic failure: the CLI
	// routes it to the upgrade surface, never to the inline error text.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// Validation errors (local, pre-network, user-correctable).
	ErrTopicTooShort = errors.New("topic must be at least 5 characters")
	ErrTopicTooLong  = errors.New("topic must be at most 200 characters")

	// Orchestration errors.
	ErrRequestInFlight = errors.New("a generation request is already in flight")

	// Identity errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Payment flow errors.
	ErrMissingSessionID   = errors.New("missing checkout session id")
	ErrCheckoutFailed     = errors.New("could not start checkout session")
	ErrVerificationFailed = errors.New("payment verification failed")

	// Local cache errors.
	ErrNotFound = errors.New("not found")
)
