package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/api"
	"kakeibo/internal/core"
)

type fakeFetcher struct {
	transactions []core.Transaction
	categories   []core.Category
	listErr      error
	categoryErr  error
	listCalls    int
}

func (f *fakeFetcher) List(context.Context) ([]core.Transaction, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func (f *fakeFetcher) ListCategories(context.Context) ([]core.Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categories, nil
}

func seed() *fakeFetcher {
	return &fakeFetcher{
		transactions: []core.Transaction{
			{ID: 1, Type: core.Income, Amount: 1000},
			{ID: 2, Type: core.Expense, Amount: -500},
		},
		categories: []core.Category{{ID: 1, Name: "食費"}},
	}
}

func TestStore_RefreshReplacesWholesale(t *testing.T) {
	fetcher := seed()
	s := New(fetcher, nil)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Transactions(), 2)
	assert.Len(t, s.Categories(), 1)

	// A later snapshot fully replaces the earlier one, no merging.
	fetcher.transactions = []core.Transaction{{ID: 3, Type: core.Expense, Amount: -900}}
	require.NoError(t, s.Refresh(context.Background()))

	got := s.Transactions()
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestStore_FailedRefreshKeepsStaleData(t *testing.T) {
	fetcher := seed()
	s := New(fetcher, nil)
	require.NoError(t, s.Refresh(context.Background()))

	fetcher.listErr = &api.NetworkError{Op: "GET /api/transactions", Err: errors.New("connection refused")}
	err := s.Refresh(context.Background())

	require.Error(t, err)
	assert.Len(t, s.Transactions(), 2, "stale transactions must survive a failed refresh")
	assert.Len(t, s.Categories(), 1, "stale categories must survive a failed refresh")
}

func TestStore_MalformedPayloadCoercedToEmpty(t *testing.T) {
	fetcher := seed()
	s := New(fetcher, nil)
	require.NoError(t, s.Refresh(context.Background()))

	fetcher.listErr = fmt.Errorf("GET /api/transactions: decode body: %w", api.ErrMalformedResponse)
	require.NoError(t, s.Refresh(context.Background()), "malformed payload degrades, not fails")

	assert.Empty(t, s.Transactions())
	assert.Len(t, s.Categories(), 1, "categories still replaced from their own fetch")
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	s := New(seed(), nil)
	require.NoError(t, s.Refresh(context.Background()))

	got := s.Transactions()
	got[0].Amount = -999999
	assert.Equal(t, int64(1000), s.Transactions()[0].Amount, "mutating a returned slice must not touch the mirror")
}

func TestStore_Lookups(t *testing.T) {
	s := New(seed(), nil)
	require.NoError(t, s.Refresh(context.Background()))

	tx, ok := s.Transaction(2)
	require.True(t, ok)
	assert.Equal(t, int64(-500), tx.Amount)

	_, ok = s.Transaction(99)
	assert.False(t, ok)

	cat, ok := s.Category(1)
	require.True(t, ok)
	assert.Equal(t, "食費", cat.Name)
}
