// Recurring template operations, including the transactional
// materialization used by the expansion engine.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/domain"
)

// ─── Template Operations ────────────────────────────────────────────────────

// InsertTemplate persists a recurring template. The checkpoint starts at
// the anchor date when unset.
func (db *DB) InsertTemplate(ctx context.Context, t domain.Template) error {
	if t.LastProcessed.IsZero() {
		t.LastProcessed = t.AnchorDate
	}
	var end *string
	if t.EndDate != nil {
		s := domain.FormatDate(*t.EndDate)
		end = &s
	}
	active := 0
	if t.Active {
		active = 1
	}
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO recurring_templates
			(id, owner_id, direction, amount_cents, description, category_id,
			 anchor_date, frequency, end_date, last_processed, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.OwnerID, string(t.Direction), t.AmountCents, t.Description, t.CategoryID,
		domain.FormatDate(t.AnchorDate), string(t.Frequency), end,
		domain.FormatDate(t.LastProcessed), active)
	return err
}

// GetTemplate retrieves one template by ID.
func (db *DB) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT id, owner_id, direction, amount_cents, description, category_id,
		       anchor_date, frequency, end_date, last_processed, active, created_at
		FROM recurring_templates WHERE id = ?
	`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListDueTemplates returns all active templates whose end date is unset or
// not yet past as of now, across all owners.
func (db *DB) ListDueTemplates(ctx context.Context, now time.Time) ([]domain.Template, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, owner_id, direction, amount_cents, description, category_id,
		       anchor_date, frequency, end_date, last_processed, active, created_at
		FROM recurring_templates
		WHERE active = 1 AND (end_date IS NULL OR end_date >= ?)
		ORDER BY id
	`, domain.FormatDate(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ListTemplates returns one owner's templates.
func (db *DB) ListTemplates(ctx context.Context, ownerID string) ([]domain.Template, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT id, owner_id, direction, amount_cents, description, category_id,
		       anchor_date, frequency, end_date, last_processed, active, created_at
		FROM recurring_templates WHERE owner_id = ? ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// DeactivateTemplate stops a template from producing further occurrences.
func (db *DB) DeactivateTemplate(ctx context.Context, id string) error {
	res, err := db.db.ExecContext(ctx,
		`UPDATE recurring_templates SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MaterializeOccurrence creates the concrete instance dated occursOn and
// advances the template's checkpoint to occursOn in one transaction, so a
// crash between the two writes is not observable. If a previous run
// already created the instance for this exact date (two-phase retry), the
// insert is skipped and the checkpoint still advances. The checkpoint
// update is monotonic — it never moves the date backward.
func (db *DB) MaterializeOccurrence(ctx context.Context, t domain.Template, occursOn time.Time) (domain.Instance, error) {
	in := domain.Instance{
		ID:          uuid.NewString(),
		OwnerID:     t.OwnerID,
		TemplateID:  t.ID,
		Direction:   t.Direction,
		AmountCents: t.AmountCents,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Date:        domain.DateOf(occursOn),
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions
			(id, owner_id, template_id, direction, amount_cents, description, category_id, tx_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(template_id, tx_date) WHERE template_id IS NOT NULL DO NOTHING
	`, in.ID, in.OwnerID, in.TemplateID, string(in.Direction), in.AmountCents,
		in.Description, in.CategoryID, domain.FormatDate(in.Date))
	if err != nil {
		return domain.Instance{}, fmt.Errorf("insert instance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Already materialized by an earlier attempt; reuse its ID.
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM transactions WHERE template_id = ? AND tx_date = ?
		`, in.TemplateID, domain.FormatDate(in.Date)).Scan(&in.ID)
		if err != nil {
			return domain.Instance{}, fmt.Errorf("lookup existing instance: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE recurring_templates SET last_processed = ?
		WHERE id = ? AND last_processed < ?
	`, domain.FormatDate(in.Date), t.ID, domain.FormatDate(in.Date)); err != nil {
		return domain.Instance{}, fmt.Errorf("advance checkpoint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Instance{}, fmt.Errorf("commit: %w", err)
	}
	return in, nil
}

// ─── Row Scanning ───────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(r rowScanner) (*domain.Template, error) {
	var (
		t         domain.Template
		dir, freq string
		anchor    string
		end       sql.NullString
		processed string
		active    int
		created   string
	)
	if err := r.Scan(&t.ID, &t.OwnerID, &dir, &t.AmountCents, &t.Description,
		&t.CategoryID, &anchor, &freq, &end, &processed, &active, &created); err != nil {
		return nil, err
	}
	t.Direction = domain.Direction(dir)
	t.Frequency = domain.Frequency(freq)
	t.Active = active == 1

	var err error
	if t.AnchorDate, err = domain.ParseDate(anchor); err != nil {
		return nil, err
	}
	if t.LastProcessed, err = domain.ParseDate(processed); err != nil {
		return nil, err
	}
	if end.Valid {
		e, err := domain.ParseDate(end.String)
		if err != nil {
			return nil, err
		}
		t.EndDate = &e
	}
	t.CreatedAt = parseStoredTime(created)
	return &t, nil
}

// parseStoredTime reads SQLite's datetime('now') format.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
