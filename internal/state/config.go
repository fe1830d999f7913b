package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/inovacc/odoocli/internal/model"
)

// ErrProfileNotFound is returned for an unknown profile id. Nothing is changed.
var ErrProfileNotFound = errors.New("profile not found")

// ConfigRepository persists the connection profiles.
type ConfigRepository interface {
	GetConnectionConfig() (*model.ConnectionConfig, error)
	SaveConnectionConfig(cfg *model.ConnectionConfig) error
}

// ConfigStore owns the connection profiles and the active profile id.
type ConfigStore struct {
	mu   sync.RWMutex
	cfg  model.ConnectionConfig
	repo ConfigRepository
}

// NewConfigStore returns a store holding the default profiles.
func NewConfigStore(repo ConfigRepository) *ConfigStore {
	return &ConfigStore{cfg: model.DefaultConnectionConfig(), repo: repo}
}

// Load restores persisted profiles, keeping the defaults when none exist.
func (c *ConfigStore) Load() error {
	rec, err := c.repo.GetConnectionConfig()
	if err != nil {
		return fmt.Errorf("load connection config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if rec == nil || len(rec.Profiles) == 0 {
		c.cfg = model.DefaultConnectionConfig()
	} else {
		c.cfg = rec.Clone()
	}

	return nil
}

// Snapshot returns a copy of the whole configuration.
func (c *ConfigStore) Snapshot() model.ConnectionConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cfg.Clone()
}

func (c *ConfigStore) Profiles() []model.ConnectionProfile {
	return c.Snapshot().Profiles
}

func (c *ConfigStore) ActiveProfileID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cfg.ActiveProfileID
}

// ActiveProfile returns the active profile, if its id exists.
func (c *ConfigStore) ActiveProfile() (model.ConnectionProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.cfg.Find(c.cfg.ActiveProfileID)
	if i < 0 {
		return model.ConnectionProfile{}, false
	}

	return c.cfg.Profiles[i], true
}

// SetProfileURL changes the URL of one profile. The URL is not validated.
func (c *ConfigStore) SetProfileURL(id, url string) error {
	return c.mutate(func(cfg *model.ConnectionConfig) error {
		i := cfg.Find(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrProfileNotFound, id)
		}

		cfg.Profiles[i].URL = url

		return nil
	})
}

// SetProfileName renames one profile.
func (c *ConfigStore) SetProfileName(id, name string) error {
	return c.mutate(func(cfg *model.ConnectionConfig) error {
		i := cfg.Find(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrProfileNotFound, id)
		}

		cfg.Profiles[i].Name = name

		return nil
	})
}

// SetActiveProfile changes only the active id.
func (c *ConfigStore) SetActiveProfile(id string) error {
	return c.mutate(func(cfg *model.ConnectionConfig) error {
		if cfg.Find(id) < 0 {
			return fmt.Errorf("%w: %q", ErrProfileNotFound, id)
		}

		cfg.ActiveProfileID = id

		return nil
	})
}

// mutate applies fn to a copy, persists it and only then commits.
func (c *ConfigStore) mutate(fn func(cfg *model.ConnectionConfig) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.cfg.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	if err := c.repo.SaveConnectionConfig(&next); err != nil {
		return fmt.Errorf("persist connection config: %w", err)
	}

	c.cfg = next

	return nil
}
