package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoServerURL is returned when neither the input nor the active profile has a URL
	ErrNoServerURL = errors.New("no server URL: pass --url or set one on the active profile")

	// ErrNoPartner is returned when a quotation has no customer
	ErrNoPartner = errors.New("select a customer")

	// ErrNoLines is returned when a quotation has no product lines
	ErrNoLines = errors.New("add at least one product")

	// ErrUserNotFound is returned when API key verification finds no matching user
	ErrUserNotFound = errors.New("user not found")
)

// LineError reports an invalid quotation line
type LineError struct {
	Index  int
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Index+1, e.Reason)
}

// UnexpectedResponseError is returned when a reply has a shape the caller cannot use
type UnexpectedResponseError struct {
	Operation string
	Value     any
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response %v", e.Operation, e.Value)
}
