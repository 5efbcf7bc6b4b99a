// Package storage is the SQLite persistence of the development ledger
// server. The real system of record for the client is whatever service it
// is pointed at; this package only exists so the client can be exercised
// end to end on a laptop.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kakeibo/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound marks a lookup or mutation that matched no row.
var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectTransaction = `
	SELECT t.id, t.date, t.type, t.category_id, t.amount, t.memo, t.created_at, c.id, c.name
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id`

// FindAll returns every transaction with its category snapshot joined in,
// newest first.
func (r *Repository) FindAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransaction+` ORDER BY t.date DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("find all: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// FindByID returns one transaction or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id int) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectTransaction+` WHERE t.id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("find by id: %w", err)
	}
	return t, nil
}

// FindCategories returns the category reference data in id order.
func (r *Repository) FindCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("find categories: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindCategoryByID returns one category or ErrNotFound.
func (r *Repository) FindCategoryByID(ctx context.Context, id int) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// Insert stores a new transaction and fills in its assigned id and creation
// timestamp.
func (r *Repository) Insert(ctx context.Context, t *core.Transaction) error {
	t.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category_id, amount, memo, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.Date.Format(core.DateLayout), string(t.Type), t.CategoryID, t.Amount, t.Memo, t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert transaction id: %w", err)
	}
	t.ID = int(id)
	return nil
}

// Update replaces all mutable fields of one transaction. The creation
// timestamp is immutable.
func (r *Repository) Update(ctx context.Context, t *core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, type = ?, category_id = ?, amount = ?, memo = ? WHERE id = ?`,
		t.Date.Format(core.DateLayout), string(t.Type), t.CategoryID, t.Amount, t.Memo, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(res, t.ID)
}

// Delete removes one transaction or returns ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t          core.Transaction
		date       string
		direction  string
		createdAt  string
		catID      sql.NullInt64
		catName    sql.NullString
	)
	if err := row.Scan(&t.ID, &date, &direction, &t.CategoryID, &t.Amount, &t.Memo, &createdAt, &catID, &catName); err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.Direction(direction)

	parsed, err := time.Parse(core.DateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	t.Date = parsed

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = created

	// Rows whose category was removed keep a zero snapshot; the client
	// buckets them as uncategorized.
	if catID.Valid && catName.Valid {
		t.Category = core.Category{ID: int(catID.Int64), Name: catName.String}
	}
	return t, nil
}
