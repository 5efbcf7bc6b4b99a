// Package ledger wires the client, the store, and the edit session into the
// user-facing operations: register a transaction, edit one, delete one.
// Every mutation is followed by a wholesale store refresh; the mirror never
// diverges from server truth by more than one round trip.
package ledger

import (
	"context"
	"fmt"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
	"kakeibo/internal/session"
	"kakeibo/internal/store"
)

// Client is the slice of the ledger API the service mutates through.
type Client interface {
	Create(ctx context.Context, draft core.Draft) (core.Transaction, error)
	Delete(ctx context.Context, id int) error
}

// Confirmer is the human confirmation gate in front of irreversible
// operations. Tests substitute an automatic yes.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}

type Service struct {
	client  Client
	store   *store.Store
	session *session.Session
	logger  *log.Logger
}

func NewService(client Client, st *store.Store, sess *session.Session, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Discard()
	}
	return &Service{client: client, store: st, session: sess, logger: logger.WithComponent("ledger")}
}

// Register validates a draft and creates the transaction on the server,
// then refreshes the mirror. A failed create leaves the mirror untouched.
// A failed refresh after a successful create is logged, not fatal: the row
// exists on the server and the next refresh will pick it up.
func (s *Service) Register(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}
	created, err := s.client.Create(ctx, draft)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after create failed", "row", created.ID, "error", err)
	}
	return created, nil
}

// StartEdit opens the edit session on the row with the given id, looked up
// in the current mirror.
func (s *Service) StartEdit(id int) error {
	t, ok := s.store.Transaction(id)
	if !ok {
		return fmt.Errorf("transaction %d not found", id)
	}
	return s.session.StartEdit(t)
}

// Delete removes one transaction after the confirmation gate approves. A
// declined confirmation issues no request. On success the mirror is
// refreshed and a dangling edit on the deleted row is torn down; on failure
// local state stays as it was so the user can retry.
func (s *Service) Delete(ctx context.Context, id int, confirm Confirmer) error {
	if !confirm.Confirm(fmt.Sprintf("delete transaction %d? this cannot be undone", id)) {
		s.logger.Debug("deletion declined", "row", id)
		return nil
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.session.NotifyDeleted(id)
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after delete failed", "row", id, "error", err)
	}
	return nil
}
