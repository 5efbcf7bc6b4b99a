package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 2xx response whose body did not decode as the
// expected shape. The store coerces this to an empty collection instead of
// failing the whole refresh.
var ErrMalformedResponse = errors.New("malformed response from ledger service")

// NetworkError wraps a transport-level failure: the service was unreachable
// before any HTTP status was observed.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: ledger service unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response. Message carries the server-supplied
// explanation when the body held one, otherwise a generic text embedding
// the status code.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// errorMessage extracts a human-readable message from an error response
// body. Bodies are expected to look like {"error": "..."} but are often
// empty or not JSON at all; any such body falls back to a generic message
// rather than breaking the error path.
func errorMessage(op string, status int, body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("%s failed with status %d", op, status)
}
