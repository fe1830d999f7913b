package secret

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the service name used for keyring entries
	keyringService = "odoocli"

	// keyringTimeout bounds every keyring operation
	keyringTimeout = 5 * time.Second
)

// KeyringError represents an error during keyring operations
type KeyringError struct {
	Operation string
	Err       error
}

func (e *KeyringError) Error() string {
	return fmt.Sprintf("keyring %s failed: %v", e.Operation, e.Err)
}

func (e *KeyringError) Unwrap() error {
	return e.Err
}

// KeyringSealer keeps the secret in the OS keyring; the blob is only a reference.
type KeyringSealer struct {
	service string
	timeout time.Duration
}

// NewKeyringSealer returns a sealer using the "odoocli" keyring service.
func NewKeyringSealer() *KeyringSealer {
	return &KeyringSealer{service: keyringService, timeout: keyringTimeout}
}

// withTimeout runs fn on its own goroutine; some keyring backends block
// indefinitely when no secret service is running.
func withTimeout[T any](timeout time.Duration, op string, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}

	ch := make(chan result, 1)

	go func() {
		v, err := fn()
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return r.v, &KeyringError{Operation: op, Err: r.err}
		}

		return r.v, nil
	case <-ctx.Done():
		var zero T
		return zero, &KeyringError{Operation: op, Err: ctx.Err()}
	}
}

func (k *KeyringSealer) Seal(label, plaintext string) ([]byte, error) {
	_, err := withTimeout(k.timeout, "set", func() (struct{}, error) {
		return struct{}{}, keyring.Set(k.service, label, plaintext)
	})
	if err != nil {
		return nil, err
	}

	return []byte(PrefixKeyring + label), nil
}

// Open resolves the reference stored in blob; label is ignored.
func (k *KeyringSealer) Open(_ string, blob []byte) (string, error) {
	ref, ok := bytes.CutPrefix(blob, []byte(PrefixKeyring))
	if !ok {
		return "", ErrUnknownBlob
	}

	return withTimeout(k.timeout, "get", func() (string, error) {
		return keyring.Get(k.service, string(ref))
	})
}

// Forget deletes the entry for label. A missing entry is not an error.
func (k *KeyringSealer) Forget(label string) error {
	_, err := withTimeout(k.timeout, "delete", func() (struct{}, error) {
		err := keyring.Delete(k.service, label)
		if errors.Is(err, keyring.ErrNotFound) {
			return struct{}{}, nil
		}

		return struct{}{}, err
	})

	return err
}
