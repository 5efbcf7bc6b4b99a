package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kakeibo/internal/core"
	"kakeibo/internal/storage"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.repo.FindCategories(r.Context())
	if err != nil {
		s.logger.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.repo.FindAll(r.Context())
	if err != nil {
		s.logger.Error("list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	t, ok := s.transactionFromBody(w, r)
	if !ok {
		return
	}
	if err := s.repo.Insert(r.Context(), &t); err != nil {
		s.logger.Error("create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	existing, err := s.repo.FindByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		s.logger.Error("update transaction lookup", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}

	t, ok := s.transactionFromBody(w, r)
	if !ok {
		return
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(r.Context(), &t); err != nil {
		s.logger.Error("update transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		s.logger.Error("delete transaction", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// transactionFromBody decodes and validates a draft body, resolves the
// category snapshot, and canonicalizes the amount's sign: expenses are
// stored negative, income positive, regardless of what the client sent.
func (s *Server) transactionFromBody(w http.ResponseWriter, r *http.Request) (core.Transaction, bool) {
	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse request body")
		return core.Transaction{}, false
	}
	if !draft.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be income or expense")
		return core.Transaction{}, false
	}
	date, err := core.ParseDate(draft.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return core.Transaction{}, false
	}
	if draft.Amount == 0 {
		writeError(w, http.StatusBadRequest, "amount must not be zero")
		return core.Transaction{}, false
	}

	amount := draft.Amount
	if draft.Type == core.Expense && amount > 0 {
		amount = -amount
	} else if draft.Type == core.Income && amount < 0 {
		amount = -amount
	}

	category, err := s.repo.FindCategoryByID(r.Context(), draft.CategoryID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return core.Transaction{}, false
	}
	if err != nil {
		s.logger.Error("category lookup", "id", draft.CategoryID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return core.Transaction{}, false
	}

	return core.Transaction{
		Date:       date,
		Type:       draft.Type,
		CategoryID: draft.CategoryID,
		Category:   category,
		Amount:     amount,
		Memo:       draft.Memo,
	}, true
}
