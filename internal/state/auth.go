package state

import (
	"fmt"
	"sync"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/secret"
)

// AuthRepository persists the auth record.
type AuthRepository interface {
	GetAuth() (*model.AuthRecord, error)
	SaveAuth(rec *model.AuthRecord) error
}

// AuthStore owns the current session. It performs no validation and has no
// notion of expiry: Login and Logout replace the state unconditionally.
type AuthStore struct {
	mu     sync.RWMutex
	state  model.AuthState
	repo   AuthRepository
	sealer secret.Sealer
}

// NewAuthStore returns a logged-out store.
func NewAuthStore(repo AuthRepository, sealer secret.Sealer) *AuthStore {
	return &AuthStore{repo: repo, sealer: sealer}
}

// Load restores the persisted state. A missing record means logged out. If
// the sealed credential cannot be opened the store stays logged out and the
// error is returned.
func (a *AuthStore) Load() error {
	rec, err := a.repo.GetAuth()
	if err != nil {
		return fmt.Errorf("load auth state: %w", err)
	}

	var st model.AuthState

	if rec != nil && rec.IsLoggedIn && rec.User != nil {
		u := rec.User
		label := model.CredentialLabel(u.URL, u.Database, u.Username)

		key, err := a.sealer.Open(label, u.Credential)
		if err != nil {
			return fmt.Errorf("open stored credential: %w", err)
		}

		st = model.AuthState{
			IsLoggedIn: true,
			User: &model.Session{
				URL:      u.URL,
				APIKey:   key,
				Database: u.Database,
				Username: u.Username,
			},
		}
	}

	a.mu.Lock()
	a.state = st
	a.mu.Unlock()

	return nil
}

// Login replaces the session and marks the store logged in. When the new
// session has a different credential label the previous entry is forgotten.
func (a *AuthStore) Login(s model.Session) error {
	label := model.CredentialLabel(s.URL, s.Database, s.Username)

	blob, err := a.sealer.Seal(label, s.APIKey)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}

	rec := &model.AuthRecord{
		IsLoggedIn: true,
		User: &model.SessionRecord{
			URL:        s.URL,
			Database:   s.Database,
			Username:   s.Username,
			Credential: blob,
		},
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.repo.SaveAuth(rec); err != nil {
		return fmt.Errorf("persist auth state: %w", err)
	}

	prev := a.state.User
	a.state = model.AuthState{IsLoggedIn: true, User: &s}

	if prev != nil {
		if old := model.CredentialLabel(prev.URL, prev.Database, prev.Username); old != label {
			// the new session is already persisted; a stale entry only wastes space
			_ = a.sealer.Forget(old)
		}
	}

	return nil
}

// Logout clears the session and marks the store logged out.
func (a *AuthStore) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.repo.SaveAuth(&model.AuthRecord{}); err != nil {
		return fmt.Errorf("persist auth state: %w", err)
	}

	a.state = model.AuthState{}

	return nil
}

// State returns a copy of the current state.
func (a *AuthStore) State() model.AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := a.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}

	return st
}

func (a *AuthStore) IsLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.state.IsLoggedIn
}

// User returns a copy of the session, or nil when logged out.
func (a *AuthStore) User() *model.Session {
	return a.State().User
}

// Credentials implements odoo.CredentialSource.
func (a *AuthStore) Credentials() (model.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.state.IsLoggedIn || a.state.User == nil {
		return model.Session{}, false
	}

	return *a.state.User, true
}
