package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kakeibo/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_SeededCategories(t *testing.T) {
	repo := newTestRepo(t)

	categories, err := repo.FindCategories(context.Background())
	if err != nil {
		t.Fatalf("FindCategories: %v", err)
	}
	if len(categories) != 10 {
		t.Fatalf("got %d seeded categories, want 10", len(categories))
	}
	if categories[0].Name != "食費" {
		t.Errorf("first category = %q, want 食費", categories[0].Name)
	}

	c, err := repo.FindCategoryByID(context.Background(), categories[9].ID)
	if err != nil {
		t.Fatalf("FindCategoryByID: %v", err)
	}
	if c.Name != "給与" {
		t.Errorf("last category = %q, want 給与", c.Name)
	}

	if _, err := repo.FindCategoryByID(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown category error = %v, want ErrNotFound", err)
	}
}

func TestRepository_TransactionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:       core.Expense,
		CategoryID: 1,
		Amount:     -1200,
		Memo:       "lunch",
	}
	if err := repo.Insert(ctx, &tx); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if tx.ID == 0 {
		t.Fatal("Insert did not assign an id")
	}
	if tx.CreatedAt.IsZero() {
		t.Fatal("Insert did not assign a creation timestamp")
	}

	got, err := repo.FindByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Amount != -1200 || got.Memo != "lunch" || got.Type != core.Expense {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Date.Equal(tx.Date) {
		t.Errorf("date = %v, want %v", got.Date, tx.Date)
	}
	if got.Category.Name != "食費" {
		t.Errorf("category snapshot = %+v, want joined 食費", got.Category)
	}

	got.Amount = -1500
	got.Memo = "dinner"
	if err := repo.Update(ctx, &got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.FindByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if updated.Amount != -1500 || updated.Memo != "dinner" {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(tx.CreatedAt) {
		t.Errorf("created_at must be immutable: %v != %v", updated.CreatedAt, tx.CreatedAt)
	}

	if err := repo.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, FindByID = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func TestRepository_FindAllOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := core.Transaction{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Type: core.Expense, CategoryID: 1, Amount: -100}
	newer := core.Transaction{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Type: core.Income, CategoryID: 10, Amount: 250000}
	if err := repo.Insert(ctx, &older); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Insert(ctx, &newer); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}
	if all[0].ID != newer.ID {
		t.Errorf("newest row must come first, got id %d", all[0].ID)
	}
}
