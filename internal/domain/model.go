// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import (
	"fmt"
	"time"
)

// ─── Enumerations ───────────────────────────────────────────────────────────

// Direction classifies a transaction or category as money in or money out.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)

// ParseDirection validates and returns a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Income, Expense:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Frequency is how often a recurring template produces an occurrence.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// ParseFrequency validates and returns a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
}

// ─── Dates ──────────────────────────────────────────────────────────────────
// All bookkeeping dates are day-granular. In memory a date is a time.Time
// pinned to UTC midnight; on the wire and in the store it is "YYYY-MM-DD".

const DateLayout = "2006-01-02"

// NewDate builds a day-granular date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders a date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ─── Recurring Template ─────────────────────────────────────────────────────

// Template is a user-declared recurring transaction definition.
// It is never itself a ledger entry; the expansion engine materializes
// dated Instances from it.
type Template struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Direction   Direction  `json:"direction"`
	AmountCents int64      `json:"amount_cents"`
	Description string     `json:"description"`
	CategoryID  string     `json:"category_id"`
	AnchorDate  time.Time  `json:"anchor_date"`
	Frequency   Frequency  `json:"frequency"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	// LastProcessed is the date through which occurrences have been
	// emitted. Initialized to AnchorDate at creation and only ever moved
	// forward, only by the expansion engine.
	LastProcessed time.Time `json:"last_processed"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate checks the template invariants that creation must enforce.
func (t Template) Validate() error {
	if t.OwnerID == "" {
		return fmt.Errorf("template owner: %w", ErrMissingOwner)
	}
	if t.AmountCents <= 0 {
		return ErrNonPositiveAmount
	}
	if _, err := ParseDirection(string(t.Direction)); err != nil {
		return err
	}
	if _, err := ParseFrequency(string(t.Frequency)); err != nil {
		return err
	}
	if t.EndDate != nil && t.EndDate.Before(t.AnchorDate) {
		return ErrEndBeforeAnchor
	}
	return nil
}

// Ended reports whether the template can no longer produce occurrences
// on or before now.
func (t Template) Ended(now time.Time) bool {
	return t.EndDate != nil && t.EndDate.Before(DateOf(now))
}

// ─── Transaction Instance ───────────────────────────────────────────────────

// Instance is one concrete, dated ledger entry. Materialized instances
// carry the template that produced them in TemplateID; ordinary one-off
// transactions leave it empty. Instances are never re-processed.
type Instance struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	TemplateID  string    `json:"template_id,omitempty"`
	Direction   Direction `json:"direction"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ─── Category ───────────────────────────────────────────────────────────────

// Keyword list bounds, enforced at the API boundary.
const (
	MaxKeywords      = 20
	MaxKeywordLength = 50
)

// Category is a user-curated bucket with a keyword list used for
// auto-suggestion. Read-only from the engines' perspective.
type Category struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Direction Direction `json:"direction"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateKeywords checks the keyword list bounds.
func (c Category) ValidateKeywords() error {
	if len(c.Keywords) > MaxKeywords {
		return fmt.Errorf("%w: %d keywords (max %d)", ErrTooManyKeywords, len(c.Keywords), MaxKeywords)
	}
	for _, k := range c.Keywords {
		if len(k) > MaxKeywordLength {
			return fmt.Errorf("%w: %q", ErrKeywordTooLong, k)
		}
	}
	return nil
}

// ─── Classifier Output ──────────────────────────────────────────────────────

// CategoryMatch is an ephemeral scoring result; never persisted.
type CategoryMatch struct {
	CategoryID     string `json:"category_id"`
	CategoryName   string `json:"category_name"`
	Score          int    `json:"score"`
	MatchedKeyword string `json:"matched_keyword"`
}

// ─── Expansion Report ───────────────────────────────────────────────────────

// ExpansionReport summarizes one expansion run.
// TemplatesProcessed counts templates advanced at least one period;
// "processed" means caught up to now, not advanced one tick.
type ExpansionReport struct {
	TemplatesConsidered int `json:"templates_considered"`
	TemplatesProcessed  int `json:"templates_processed"`
	InstancesCreated    int `json:"instances_created"`
	TemplatesFailed     int `json:"templates_failed"`
}
