package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Record errors
	ErrNotFound     = errors.New("record not found")
	ErrMissingOwner = errors.New("owner id is required")

	// Template errors
	ErrInvalidFrequency  = errors.New("invalid recurrence frequency")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrEndBeforeAnchor   = errors.New("recurring end date precedes anchor date")
	ErrTemplateMalformed = errors.New("recurring template is malformed")

	// Expansion errors
	ErrRunInProgress = errors.New("expansion run already in progress")

	// Category errors
	ErrInvalidDirection = errors.New("invalid transaction direction")
	ErrTooManyKeywords  = errors.New("too many keywords")
	ErrKeywordTooLong   = errors.New("keyword exceeds maximum length")

	// Date errors
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)
