package odoo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no session is available; no request is sent.
	ErrNotAuthenticated = errors.New("not authenticated: run 'odoocli login' first")

	// ErrInvalidCredentials is returned when session authentication yields no uid.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TransportError wraps a failure to reach the server or read its reply.
type TransportError struct {
	Model  string
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("odoo %s.%s: request failed: %v", e.Model, e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx reply. Body is the raw response text.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Odoo Error %d: %s", e.StatusCode, e.Body)
}

// DecodeError is a 2xx reply whose body is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RPCError is the error member of a JSON-RPC reply.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return e.Message
}
