package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSlotTaken marks an allocation conflict for a (section, slot, day) key.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrStoreUnavailable marks a transient storage failure, safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInternal marks an unexpected failure, opaque to the caller.
	ErrInternal = errors.New("internal error")
)
