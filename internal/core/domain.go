package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

// DateLayout is the calendar-date form the ledger service expects in drafts.
const DateLayout = "2006-01-02"

// MemoMaxLen caps free-text memos.
const MemoMaxLen = 200

type (
	// Direction marks a transaction as money in or money out.
	Direction string

	Category struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	// Transaction is one recorded income or expense event as the ledger
	// service returns it. ID and CreatedAt are server-assigned. Amount is
	// signed in the server representation: expenses are stored negative.
	Transaction struct {
		ID         int       `json:"id"`
		Date       time.Time `json:"date"`
		Type       Direction `json:"type"`
		CategoryID int       `json:"category_id"`
		Category   Category  `json:"category"`
		Amount     int64     `json:"amount"`
		Memo       string    `json:"memo"`
		CreatedAt  time.Time `json:"created_at"`
	}

	// Draft is the client-side, unsaved shape of a transaction, used both
	// for registering a new one and for editing an existing one. Amount is
	// always a positive magnitude; the server applies the sign.
	Draft struct {
		Date       string    `json:"date"` // DateLayout form
		Type       Direction `json:"type"`
		CategoryID int       `json:"category_id"`
		Amount     int64     `json:"amount"`
		Memo       string    `json:"memo"`
	}
)

var (
	ErrInvalidDirection = errors.New("direction must be income or expense")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD form")
	ErrInvalidAmount    = errors.New("amount must be a positive number of yen")
	ErrInvalidCategory  = errors.New("category must be selected")
	ErrMemoTooLong      = errors.New("memo too long")
)

func (d Direction) Valid() bool {
	return d == Income || d == Expense
}

// IsIncome reports whether the transaction counts as income. Either signal
// wins: the direction field, or a positive stored amount. Rows written by
// other clients may carry disagreeing signals; the OR keeps historical
// behavior for them.
func (t Transaction) IsIncome() bool {
	return t.Type == Income || t.Amount > 0
}

// Magnitude returns the unsigned amount in yen.
func (t Transaction) Magnitude() int64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return ErrInvalidDirection
	}
	if _, err := ParseDate(d.Date); err != nil {
		return ErrInvalidDate
	}
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	if d.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if len(d.Memo) > MemoMaxLen {
		return ErrMemoTooLong
	}
	return nil
}

// DraftFromTransaction seeds an edit draft from an existing row: the date is
// normalized to calendar form, the amount to its unsigned magnitude, and the
// direction and category are copied verbatim.
func DraftFromTransaction(t Transaction) Draft {
	return Draft{
		Date:       t.Date.Format(DateLayout),
		Type:       t.Type,
		CategoryID: t.CategoryID,
		Amount:     t.Magnitude(),
		Memo:       t.Memo,
	}
}

// ParseDate parses a calendar date in DateLayout form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
