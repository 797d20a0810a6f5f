package domain

import (
	"context"
	"time"
)

// ─── Store Interfaces ───────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// TemplateStore abstracts persistence of recurring templates and the
// materialization of their occurrences.
type TemplateStore interface {
	InsertTemplate(ctx context.Context, t Template) error
	GetTemplate(ctx context.Context, id string) (*Template, error)
	// ListDueTemplates returns every active template whose end date is
	// unset or not yet past as of now.
	ListDueTemplates(ctx context.Context, now time.Time) ([]Template, error)
	// MaterializeOccurrence creates the instance for occursOn and
	// advances the template's checkpoint to occursOn as a single atomic
	// unit. Either both take effect or neither does.
	MaterializeOccurrence(ctx context.Context, t Template, occursOn time.Time) (Instance, error)
}

// CategoryStore abstracts read access to a user's categories.
type CategoryStore interface {
	GetCategory(ctx context.Context, id string) (*Category, error)
	// ListCategories returns the owner's categories, optionally filtered
	// by direction (empty Direction means all).
	ListCategories(ctx context.Context, ownerID string, dir Direction) ([]Category, error)
}

// InstanceStore abstracts persistence of concrete ledger entries.
type InstanceStore interface {
	InsertInstance(ctx context.Context, in Instance) error
	ListInstances(ctx context.Context, q InstanceQuery) ([]Instance, error)
}

// InstanceQuery filters ListInstances. OwnerID is required; everything
// else narrows the result.
type InstanceQuery struct {
	OwnerID    string
	Direction  Direction
	CategoryID string
	From       *time.Time
	To         *time.Time
	Limit      int
}
