// Category operations. Keyword lists are stored as a JSON array.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/centavo-app/centavo/internal/domain"
)

// ─── Category Operations ────────────────────────────────────────────────────

// InsertCategory persists a category.
func (db *DB) InsertCategory(ctx context.Context, c domain.Category) error {
	kw, err := json.Marshal(append([]string{}, c.Keywords...))
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	_, err = db.db.ExecContext(ctx, `
		INSERT INTO categories (id, owner_id, name, direction, keywords_json)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.OwnerID, c.Name, string(c.Direction), string(kw))
	return err
}

// GetCategory retrieves one category by ID.
func (db *DB) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, direction, keywords_json, created_at
		FROM categories WHERE id = ?
	`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns the owner's categories, optionally filtered by
// direction (empty Direction means all). Ordered by creation so the
// classifier's first-wins tie-break is stable across calls.
func (db *DB) ListCategories(ctx context.Context, ownerID string, dir domain.Direction) ([]domain.Category, error) {
	query := `
		SELECT id, owner_id, name, direction, keywords_json, created_at
		FROM categories WHERE owner_id = ?`
	args := []any{ownerID}
	if dir != "" {
		query += ` AND direction = ?`
		args = append(args, string(dir))
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpdateCategory replaces a category's name and keyword list. The update
// is owner-scoped: a mismatched owner reads as not found.
func (db *DB) UpdateCategory(ctx context.Context, c domain.Category) error {
	kw, err := json.Marshal(append([]string{}, c.Keywords...))
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	res, err := db.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, keywords_json = ? WHERE id = ? AND owner_id = ?
	`, c.Name, string(kw), c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCategory removes an owner's category.
func (db *DB) DeleteCategory(ctx context.Context, id, ownerID string) error {
	res, err := db.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(r rowScanner) (*domain.Category, error) {
	var (
		c       domain.Category
		dir     string
		kwJSON  string
		created string
	)
	if err := r.Scan(&c.ID, &c.OwnerID, &c.Name, &dir, &kwJSON, &created); err != nil {
		return nil, err
	}
	c.Direction = domain.Direction(dir)
	if err := json.Unmarshal([]byte(kwJSON), &c.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	c.CreatedAt = parseStoredTime(created)
	return &c, nil
}
