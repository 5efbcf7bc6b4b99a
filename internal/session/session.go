// Package session owns the single edit session of the UI. The session is a
// tagged union over three states — Viewing, Editing, Submitting — with a
// draft that exists only while an edit is in progress, so a draft dangling
// without an active edit is unrepresentable.
package session

import (
	"context"
	"errors"
	"sync"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

type State int

const (
	Viewing State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "viewing"
	}
}

// ErrConflict is returned for actions that need a different session state:
// submitting with no active edit, double-submitting, or starting an edit
// while another submission is in flight. Callers treat it as a no-op rather
// than surfacing it.
var ErrConflict = errors.New("edit session busy")

// Updater is the slice of the ledger client a submission needs.
type Updater interface {
	Update(ctx context.Context, id int, draft core.Draft) (core.Transaction, error)
}

// Refresher re-syncs the local mirror after a successful submission.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Session is the singleton edit-session state machine. At most one row is
// under edit at any time; starting an edit on another row discards the
// previous draft.
type Session struct {
	mu     sync.Mutex
	state  State
	rowID  int
	draft  core.Draft
	errMsg string

	client Updater
	store  Refresher
	logger *log.Logger
}

func New(client Updater, store Refresher, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	return &Session{client: client, store: store, logger: logger.WithComponent("session")}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RowID returns the id of the row under edit, if any.
func (s *Session) RowID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowID, s.state != Viewing
}

// Draft returns a copy of the in-progress draft, if any.
func (s *Session) Draft() (core.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.state != Viewing
}

// Err returns the message of the last failed submission, cleared by the
// next transition.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// StartEdit opens an edit on t, seeding the draft from the stored row. Any
// draft from a previous edit is discarded. Rejected while a submission is
// in flight.
func (s *Session) StartEdit(t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return ErrConflict
	}
	s.state = Editing
	s.rowID = t.ID
	s.draft = core.DraftFromTransaction(t)
	s.errMsg = ""
	return nil
}

// UpdateDraft applies a field change to the draft. Outside Editing this is
// a no-op.
func (s *Session) UpdateDraft(apply func(*core.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return
	}
	apply(&s.draft)
}

// Cancel discards the draft and returns to Viewing. A submission in flight
// cannot be cancelled.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return
	}
	s.reset()
}

// Submit sends the draft to the server. On success the session returns to
// Viewing and the mirror is refreshed; on failure it falls back to Editing
// with the draft intact and the error recorded, so the user can retry
// without retyping. Submitting while not Editing returns ErrConflict, which
// doubles as the double-submission guard.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Editing {
		s.mu.Unlock()
		return ErrConflict
	}
	id, draft := s.rowID, s.draft
	if err := draft.Validate(); err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}
	s.state = Submitting
	s.errMsg = ""
	s.mu.Unlock()

	_, err := s.client.Update(ctx, id, draft)

	s.mu.Lock()
	// The edit may have been torn down by NotifyDeleted while the request
	// was in flight; only touch the session if it is still ours.
	current := s.state == Submitting && s.rowID == id
	if err != nil {
		if current {
			s.state = Editing
			s.errMsg = err.Error()
		}
		s.mu.Unlock()
		return err
	}
	if current {
		s.reset()
	}
	s.mu.Unlock()

	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("refresh after update failed", "row", id, "error", err)
		return err
	}
	return nil
}

// NotifyDeleted tears the session down when the row it holds was deleted
// out from under it. For any other row it is a no-op.
func (s *Session) NotifyDeleted(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Viewing || s.rowID != id {
		return
	}
	s.reset()
}

// reset returns to Viewing. Callers hold the lock.
func (s *Session) reset() {
	s.state = Viewing
	s.rowID = 0
	s.draft = core.Draft{}
	s.errMsg = ""
}
