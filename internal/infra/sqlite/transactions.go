// Concrete transaction (ledger entry) operations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/centavo-app/centavo/internal/domain"
)

// ─── Transaction Operations ─────────────────────────────────────────────────

// InsertInstance persists a one-off ledger entry. Materialized recurring
// instances go through MaterializeOccurrence instead.
func (db *DB) InsertInstance(ctx context.Context, in domain.Instance) error {
	var templateID any
	if in.TemplateID != "" {
		templateID = in.TemplateID
	}
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, owner_id, template_id, direction, amount_cents, description, category_id, tx_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, in.ID, in.OwnerID, templateID, string(in.Direction), in.AmountCents,
		in.Description, in.CategoryID, domain.FormatDate(in.Date))
	return err
}

// GetInstance retrieves one ledger entry by ID.
func (db *DB) GetInstance(ctx context.Context, id string) (*domain.Instance, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT id, owner_id, template_id, direction, amount_cents, description, category_id, tx_date, created_at
		FROM transactions WHERE id = ?
	`, id)
	in, err := scanInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// ListInstances returns an owner's ledger entries, newest first, narrowed
// by the optional query filters.
func (db *DB) ListInstances(ctx context.Context, q domain.InstanceQuery) ([]domain.Instance, error) {
	query := `
		SELECT id, owner_id, template_id, direction, amount_cents, description, category_id, tx_date, created_at
		FROM transactions WHERE owner_id = ?`
	args := []any{q.OwnerID}

	if q.Direction != "" {
		query += ` AND direction = ?`
		args = append(args, string(q.Direction))
	}
	if q.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, q.CategoryID)
	}
	if q.From != nil {
		query += ` AND tx_date >= ?`
		args = append(args, domain.FormatDate(*q.From))
	}
	if q.To != nil {
		query += ` AND tx_date <= ?`
		args = append(args, domain.FormatDate(*q.To))
	}
	query += ` ORDER BY tx_date DESC, id`
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Instance
	for rows.Next() {
		in, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

// DeleteInstance removes a ledger entry.
func (db *DB) DeleteInstance(ctx context.Context, id string) error {
	res, err := db.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInstance(r rowScanner) (*domain.Instance, error) {
	var (
		in         domain.Instance
		templateID sql.NullString
		dir        string
		date       string
		created    string
	)
	if err := r.Scan(&in.ID, &in.OwnerID, &templateID, &dir, &in.AmountCents,
		&in.Description, &in.CategoryID, &date, &created); err != nil {
		return nil, err
	}
	in.TemplateID = templateID.String
	in.Direction = domain.Direction(dir)

	var err error
	if in.Date, err = domain.ParseDate(date); err != nil {
		return nil, err
	}
	in.CreatedAt = parseStoredTime(created)
	return &in, nil
}
