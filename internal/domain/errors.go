package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by stores and
// services to communicate domain-specific error conditions.
// -----------------------------------------------------------------------------

// Progress errors
var (
	ErrProgressNotFound = errors.New("progress record not found")
	ErrMasteryNotFound  = errors.New("mastery record not found")
)

// Content cache errors
var (
	ErrNoCachedContent = errors.New("no cached content")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
