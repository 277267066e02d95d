package domain

import "errors"

// Sentinel errors for the failure conditions that are surfaced to callers.
// Low-level numeric and record anomalies are absorbed at the aggregation
// boundary and never reach these.
var (
	// ErrUnauthorized means no verified user identity is present. All data
	// entry points fail closed with this rather than proceeding with
	// empty-user semantics.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers both missing records and ownership violations: a
	// record owned by another user is indistinguishable from one that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a mutation payload failed validation before any
	// write was attempted.
	ErrInvalidInput = errors.New("invalid input")
)
