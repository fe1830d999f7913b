// Package secret seals the API key before it is persisted.
//
// A sealed blob starts with a prefix naming how it was sealed: KEYRING: (a
// reference into the OS keyring), ENC: (AES-256-GCM under a local master key)
// or OPEN: (clear text, explicit opt-in only). Any blob can be opened by a
// Vault regardless of the mode that is currently configured.
package secret

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
)

// Blob prefixes.
const (
	PrefixKeyring = "KEYRING:"
	PrefixEnc     = "ENC:"
	PrefixOpen    = "OPEN:"
)

// Modes accepted by New.
const (
	ModeAuto    = "auto"
	ModeKeyring = "keyring"
	ModeAES     = "aes"
	ModePlain   = "plain"
)

var (
	// ErrUnknownBlob is returned for a blob without a recognised prefix.
	ErrUnknownBlob = errors.New("unknown sealed blob format")

	// ErrDecryptionFailed is returned when an ENC: blob cannot be opened.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
)

// Sealer turns a secret into a blob that is safe to persist, and back.
type Sealer interface {
	Seal(label, plaintext string) ([]byte, error)
	Open(label string, blob []byte) (string, error)
	Forget(label string) error
}

// Vault seals with the configured mode and opens blobs of any kind.
type Vault struct {
	mode    string
	keyring *KeyringSealer
	aes     *AESSealer
	plain   PlainSealer
	logger  *slog.Logger
}

// Options configures New.
type Options struct {
	// Dir holds the AES master key file.
	Dir    string
	Logger *slog.Logger
}

// New returns a Vault for mode (auto, keyring, aes or plain).
func New(mode string, opts Options) (*Vault, error) {
	switch mode {
	case ModeAuto, ModeKeyring, ModeAES, ModePlain:
	default:
		return nil, fmt.Errorf("unknown secrets mode %q", mode)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Vault{
		mode:    mode,
		keyring: NewKeyringSealer(),
		aes:     NewAESSealer(opts.Dir),
		logger:  logger,
	}, nil
}

// Mode returns the sealing mode.
func (v *Vault) Mode() string {
	return v.mode
}

// Seal seals plaintext. In auto mode the keyring is tried first and AES is
// used when the keyring is unavailable.
func (v *Vault) Seal(label, plaintext string) ([]byte, error) {
	switch v.mode {
	case ModeKeyring:
		return v.keyring.Seal(label, plaintext)
	case ModeAES:
		return v.aes.Seal(label, plaintext)
	case ModePlain:
		return v.plain.Seal(label, plaintext)
	}

	blob, err := v.keyring.Seal(label, plaintext)
	if err == nil {
		return blob, nil
	}

	v.logger.Warn("keyring unavailable, using local encryption", slog.Any("error", err))

	return v.aes.Seal(label, plaintext)
}

// Open dispatches on the blob prefix.
func (v *Vault) Open(label string, blob []byte) (string, error) {
	switch {
	case bytes.HasPrefix(blob, []byte(PrefixKeyring)):
		return v.keyring.Open(label, blob)
	case bytes.HasPrefix(blob, []byte(PrefixEnc)):
		return v.aes.Open(label, blob)
	case bytes.HasPrefix(blob, []byte(PrefixOpen)):
		return v.plain.Open(label, blob)
	default:
		return "", ErrUnknownBlob
	}
}

// Forget removes anything held outside the blob for label.
func (v *Vault) Forget(label string) error {
	if v.mode == ModeAES || v.mode == ModePlain {
		return nil
	}

	return v.keyring.Forget(label)
}

// PlainSealer stores the secret in clear with an OPEN: prefix.
type PlainSealer struct{}

func (PlainSealer) Seal(_ string, plaintext string) ([]byte, error) {
	return []byte(PrefixOpen + plaintext), nil
}

func (PlainSealer) Open(_ string, blob []byte) (string, error) {
	after, ok := bytes.CutPrefix(blob, []byte(PrefixOpen))
	if !ok {
		return "", ErrUnknownBlob
	}

	return string(after), nil
}

func (PlainSealer) Forget(string) error {
	return nil
}

// Kind names how blob was sealed: ModeKeyring, ModeAES or ModePlain. It
// returns "" for an unrecognised blob.
func Kind(blob []byte) string {
	switch {
	case bytes.HasPrefix(blob, []byte(PrefixKeyring)):
		return ModeKeyring
	case bytes.HasPrefix(blob, []byte(PrefixEnc)):
		return ModeAES
	case bytes.HasPrefix(blob, []byte(PrefixOpen)):
		return ModePlain
	default:
		return ""
	}
}
