// Package api is the typed network boundary to the remote ledger service.
// It translates HTTP outcomes into domain results and the error taxonomy in
// errors.go; nothing above this package touches the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

type Client struct {
	base   string
	hc     *http.Client
	logger *log.Logger
}

// NewClient creates a client for the service at base (no trailing slash;
// see ResolveBase). The timeout applies per request.
func NewClient(base string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		base:   base,
		hc:     &http.Client{Timeout: timeout},
		logger: logger.WithComponent("api"),
	}
}

// Base returns the resolved endpoint the client talks to.
func (c *Client) Base() string {
	return c.base
}

// List fetches the full transaction collection.
func (c *Client) List(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories fetches the category reference data.
func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new transaction from a draft and returns the stored row
// with its server-assigned id and timestamp.
func (c *Client) Create(ctx context.Context, draft core.Draft) (core.Transaction, error) {
	var out core.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", draft, &out); err != nil {
		return core.Transaction{}, err
	}
	return out, nil
}

// Update replaces all mutable fields of one transaction from a draft.
func (c *Client) Update(ctx context.Context, id int, draft core.Draft) (core.Transaction, error) {
	var out core.Transaction
	path := fmt.Sprintf("/api/transactions/%d", id)
	if err := c.do(ctx, http.MethodPut, path, draft, &out); err != nil {
		return core.Transaction{}, err
	}
	return out, nil
}

// Delete removes one transaction. Success carries no payload.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", id), nil, nil)
}

// do runs one JSON round trip. Transport failures become *NetworkError,
// non-2xx statuses *HTTPError, and undecodable success bodies wrap
// ErrMalformedResponse.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		httpErr := &HTTPError{Status: resp.StatusCode, Message: errorMessage(op, resp.StatusCode, raw)}
		c.logger.Debug("request failed", "op", op, "status", resp.StatusCode)
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode body: %w", op, ErrMalformedResponse)
	}
	return nil
}
