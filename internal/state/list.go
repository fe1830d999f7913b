package state

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Fetch when a newer fetch was issued meanwhile
// and the LatestIssuedWins policy discarded this result.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// Policy decides which of several overlapping fetches updates the list.
type Policy int

const (
	// LastResolvedWins applies every result as it arrives, so a slow early
	// fetch can overwrite a faster later one.
	LastResolvedWins Policy = iota

	// LatestIssuedWins applies a result only if no newer fetch was started.
	LatestIssuedWins
)

func (p Policy) String() string {
	switch p {
	case LatestIssuedWins:
		return "latest-issued-wins"
	default:
		return "last-resolved-wins"
	}
}

// FetchFunc loads a list, usually with one gateway call.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// ListState is a snapshot of a ListStore.
type ListState[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

// ListOption configures a ListStore.
type ListOption func(*listOptions)

type listOptions struct {
	policy Policy
}

// WithPolicy sets the ordering policy. The default is LastResolvedWins.
func WithPolicy(p Policy) ListOption {
	return func(o *listOptions) {
		o.policy = p
	}
}

// ListStore holds a fetched entity list with its loading and error flags.
type ListStore[T any] struct {
	mu     sync.RWMutex
	fetch  FetchFunc[T]
	policy Policy
	state  ListState[T]
	issued uint64
}

// NewListStore returns an idle, empty store.
func NewListStore[T any](fetch FetchFunc[T], opts ...ListOption) *ListStore[T] {
	o := listOptions{policy: LastResolvedWins}
	for _, opt := range opts {
		opt(&o)
	}

	return &ListStore[T]{fetch: fetch, policy: o.policy}
}

// Policy returns the ordering policy.
func (s *ListStore[T]) Policy() Policy {
	return s.policy
}

// Fetch marks the store loading, runs the fetch function and records its
// outcome. On error the previous items are kept and the message is stored.
func (s *ListStore[T]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	token := s.issued
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.policy == LatestIssuedWins && token != s.issued {
		return ErrSuperseded
	}

	s.state.Loading = false

	if err != nil {
		s.state.Error = err.Error()
		return err
	}

	s.state.Items = items

	return nil
}

// ClearError resets the error message.
func (s *ListStore[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Error = ""
}

// State returns a snapshot; Items is a copy.
func (s *ListStore[T]) State() ListState[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Items != nil {
		st.Items = append([]T(nil), st.Items...)
	}

	return st
}
