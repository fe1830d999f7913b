package secret

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/odoocli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func newVault(t *testing.T, mode string) *Vault {
	t.Helper()

	v, err := New(mode, Options{Dir: t.TempDir(), Logger: logging.Discard()})
	require.NoError(t, err)

	return v
}

func TestNew_RejectsUnknownMode(t *testing.T) {
	_, err := New("vault", Options{Dir: t.TempDir()})
	require.Error(t, err)
}

func TestVault_SealPrefixes(t *testing.T) {
	keyring.MockInit()

	tests := []struct {
		mode   string
		prefix string
	}{
		{ModeAuto, PrefixKeyring},
		{ModeKeyring, PrefixKeyring},
		{ModeAES, PrefixEnc},
		{ModePlain, PrefixOpen},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			v := newVault(t, tt.mode)

			blob, err := v.Seal("ana@prod@https://erp", "k-123")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(blob), tt.prefix), "blob %q", blob)

			got, err := v.Open("ana@prod@https://erp", blob)
			require.NoError(t, err)
			assert.Equal(t, "k-123", got)
		})
	}
}

func TestVault_NonPlainBlobsHideTheSecret(t *testing.T) {
	keyring.MockInit()

	for _, mode := range []string{ModeKeyring, ModeAES} {
		v := newVault(t, mode)

		blob, err := v.Seal("label", "super-secret-api-key")
		require.NoError(t, err)
		assert.NotContains(t, string(blob), "super-secret-api-key", mode)
	}
}

func TestVault_AutoFallsBackToAES(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Cleanup(keyring.MockInit)

	v := newVault(t, ModeAuto)

	blob, err := v.Seal("label", "k-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(blob), PrefixEnc))

	got, err := v.Open("label", blob)
	require.NoError(t, err)
	assert.Equal(t, "k-1", got)
}

func TestVault_KeyringModeSurfacesKeyringError(t *testing.T) {
	keyring.MockInitWithError(errors.New("locked"))
	t.Cleanup(keyring.MockInit)

	_, err := newVault(t, ModeKeyring).Seal("label", "k")

	var kerr *KeyringError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, "set", kerr.Operation)
}

func TestVault_OpenAnyPrefix(t *testing.T) {
	keyring.MockInit()

	dir := t.TempDir()
	aesVault, err := New(ModeAES, Options{Dir: dir, Logger: logging.Discard()})
	require.NoError(t, err)

	encBlob, err := aesVault.Seal("l", "from-aes")
	require.NoError(t, err)

	// A vault in another mode sharing the same directory still opens ENC: blobs.
	plainVault, err := New(ModePlain, Options{Dir: dir, Logger: logging.Discard()})
	require.NoError(t, err)

	got, err := plainVault.Open("l", encBlob)
	require.NoError(t, err)
	assert.Equal(t, "from-aes", got)

	got, err = aesVault.Open("l", []byte(PrefixOpen+"clear"))
	require.NoError(t, err)
	assert.Equal(t, "clear", got)

	_, err = aesVault.Open("l", []byte("garbage"))
	assert.ErrorIs(t, err, ErrUnknownBlob)
}

func TestVault_ForgetRemovesKeyringEntry(t *testing.T) {
	keyring.MockInit()

	v := newVault(t, ModeKeyring)

	blob, err := v.Seal("label", "k")
	require.NoError(t, err)
	require.NoError(t, v.Forget("label"))

	_, err = v.Open("label", blob)
	require.Error(t, err)
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	// forgetting twice is fine
	require.NoError(t, v.Forget("label"))
}

func TestAESSealer_LabelBindsCiphertext(t *testing.T) {
	s := NewAESSealer(t.TempDir())

	blob, err := s.Seal("ana@prod", "k-123")
	require.NoError(t, err)

	_, err = s.Open("bob@prod", blob)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestAESSealer_MasterKeyFile(t *testing.T) {
	dir := t.TempDir()
	s := NewAESSealer(dir)

	_, err := s.Seal("l", "v")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, masterKeyFile))
	require.NoError(t, err)
	assert.Equal(t, int64(masterKeySize), info.Size())
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	blob, err := s.Seal("l", "v")
	require.NoError(t, err)

	// a fresh sealer reads the persisted key
	got, err := NewAESSealer(dir).Open("l", blob)
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestAESSealer_OpenWithoutKeyFails(t *testing.T) {
	s := NewAESSealer(t.TempDir())

	_, err := s.Open("l", []byte(PrefixEnc+"0123456789abcdef"))
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, statErr := os.Stat(s.KeyPath())
	assert.True(t, os.IsNotExist(statErr), "Open must not create a master key")
}

func TestAESSealer_TruncatedBlob(t *testing.T) {
	s := NewAESSealer(t.TempDir())

	_, err := s.Seal("l", "v")
	require.NoError(t, err)

	_, err = s.Open("l", []byte(PrefixEnc+"x"))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestKind(t *testing.T) {
	tests := []struct {
		blob string
		want string
	}{
		{"KEYRING:ana@prod@https://erp", ModeKeyring},
		{"ENC:\x00\x01", ModeAES},
		{"OPEN:k-1", ModePlain},
		{"k-1", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Kind([]byte(tt.blob)); got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.blob, got, tt.want)
		}
	}
}
