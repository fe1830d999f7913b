package secret

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"
)

const (
	masterKeyFile = "master.key"
	masterKeySize = 32
	hkdfInfo      = "odoocli-credential"
)

// AESSealer encrypts with AES-256-GCM. The key for each label is derived by
// HKDF-SHA256 from a random master key kept in a 0600 file.
type AESSealer struct {
	path string

	mu  sync.Mutex
	key []byte
}

// NewAESSealer uses dir/master.key, creating it on first Seal.
func NewAESSealer(dir string) *AESSealer {
	return &AESSealer{path: filepath.Join(dir, masterKeyFile)}
}

// KeyPath returns the master key file path.
func (a *AESSealer) KeyPath() string {
	return a.path
}

func (a *AESSealer) masterKey(create bool) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.key != nil {
		return a.key, nil
	}

	data, err := os.ReadFile(a.path)
	switch {
	case err == nil:
		if len(data) != masterKeySize {
			return nil, fmt.Errorf("master key %s: want %d bytes, got %d", a.path, masterKeySize, len(data))
		}
	case errors.Is(err, os.ErrNotExist) && create:
		data = make([]byte, masterKeySize)
		if _, err := io.ReadFull(rand.Reader, data); err != nil {
			return nil, fmt.Errorf("generate master key: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(a.path), 0o700); err != nil {
			return nil, fmt.Errorf("create key dir: %w", err)
		}

		if err := os.WriteFile(a.path, data, 0o600); err != nil {
			return nil, fmt.Errorf("write master key: %w", err)
		}
	default:
		return nil, fmt.Errorf("read master key: %w", err)
	}

	a.key = data

	return data, nil
}

func deriveKey(master []byte, label string) ([]byte, error) {
	r := hkdf.New(sha256.New, master, []byte(label), []byte(hkdfInfo))

	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("HKDF key derivation failed: %w", err)
	}

	return key, nil
}

func (a *AESSealer) gcm(label string, create bool) (cipher.AEAD, error) {
	master, err := a.masterKey(create)
	if err != nil {
		return nil, err
	}

	key, err := deriveKey(master, label)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

func (a *AESSealer) Seal(label, plaintext string) ([]byte, error) {
	aead, err := a.gcm(label, true)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	ciphertext := aead.Seal(nonce, nonce, []byte(plaintext), nil)

	out := make([]byte, 0, len(PrefixEnc)+len(ciphertext))
	out = append(out, PrefixEnc...)

	return append(out, ciphertext...), nil
}

// Open decrypts an ENC: blob. The label must match the one used to seal it.
func (a *AESSealer) Open(label string, blob []byte) (string, error) {
	data, ok := bytes.CutPrefix(blob, []byte(PrefixEnc))
	if !ok {
		return "", ErrUnknownBlob
	}

	aead, err := a.gcm(label, false)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	if len(data) < aead.NonceSize() {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// Forget is a no-op; the ciphertext lives in the blob itself.
func (a *AESSealer) Forget(string) error {
	return nil
}
