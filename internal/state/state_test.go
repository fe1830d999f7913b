package state

import (
	"errors"
	"sync"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/secret"
)

// memRepo is an in-memory AuthRepository and ConfigRepository.
type memRepo struct {
	mu      sync.Mutex
	auth    *model.AuthRecord
	cfg     *model.ConnectionConfig
	saves   int
	failErr error
}

func (m *memRepo) GetAuth() (*model.AuthRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.auth, nil
}

func (m *memRepo) SaveAuth(rec *model.AuthRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}

	m.saves++
	m.auth = rec

	return nil
}

func (m *memRepo) GetConnectionConfig() (*model.ConnectionConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cfg, nil
}

func (m *memRepo) SaveConnectionConfig(cfg *model.ConnectionConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}

	m.saves++
	c := cfg.Clone()
	m.cfg = &c

	return nil
}

var errDiskFull = errors.New("disk full")

// recordingSealer stores secrets in clear and records forgotten labels.
type recordingSealer struct {
	secret.PlainSealer

	forgotten []string
}

func (r *recordingSealer) Forget(label string) error {
	r.forgotten = append(r.forgotten, label)
	return nil
}
