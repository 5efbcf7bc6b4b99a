// Package store keeps the client-side mirror of the server's transaction
// and category collections. The mirror is a cache of server truth only:
// Refresh discards and replaces both collections wholesale, and nothing
// else writes them.
package store

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"kakeibo/internal/api"
	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

// Fetcher is the slice of the ledger client the store reads from.
type Fetcher interface {
	List(ctx context.Context) ([]core.Transaction, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
}

type Store struct {
	mu           sync.RWMutex
	fetcher      Fetcher
	logger       *log.Logger
	transactions []core.Transaction
	categories   []core.Category
}

func New(fetcher Fetcher, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{fetcher: fetcher, logger: logger.WithComponent("store")}
}

// Refresh re-fetches both collections and replaces the mirror wholesale.
// The two fetches run concurrently and both must land. On failure the
// last-known collections stay untouched and the error is returned for
// display. A malformed payload is coerced to an empty collection so the UI
// stays usable; that coercion is logged, not silent.
func (s *Store) Refresh(ctx context.Context) error {
	var (
		transactions []core.Transaction
		categories   []core.Category
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		got, err := s.fetcher.List(ctx)
		if errors.Is(err, api.ErrMalformedResponse) {
			s.logger.Warn("transaction payload malformed, treating as empty", "error", err)
			return nil
		}
		transactions = got
		return err
	})
	g.Go(func() error {
		got, err := s.fetcher.ListCategories(ctx)
		if errors.Is(err, api.ErrMalformedResponse) {
			s.logger.Warn("category payload malformed, treating as empty", "error", err)
			return nil
		}
		categories = got
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("refresh failed, keeping stale data", "error", err)
		return err
	}

	s.mu.Lock()
	s.transactions = transactions
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// Transactions returns a copy of the mirrored transaction collection.
func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Categories returns a copy of the mirrored category collection.
func (s *Store) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

// Transaction looks one row up by id in the current mirror.
func (s *Store) Transaction(id int) (core.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Category looks a category up by id in the current mirror.
func (s *Store) Category(id int) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}
