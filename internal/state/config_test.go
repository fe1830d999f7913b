package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Defaults(t *testing.T) {
	c := NewConfigStore(&memRepo{})
	require.NoError(t, c.Load())

	assert.Equal(t, "1", c.ActiveProfileID())

	p, ok := c.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, model.ConnectionProfile{ID: "1", Name: "Connection 1"}, p)
	assert.Len(t, c.Profiles(), 3)
}

func TestConfigStore_SetProfileURLTouchesOnlyTarget(t *testing.T) {
	repo := &memRepo{}
	c := NewConfigStore(repo)

	before := c.Snapshot()
	require.NoError(t, c.SetProfileURL("2", "https://two.example.com"))
	after := c.Snapshot()

	want := before.Clone()
	want.Profiles[1].URL = "https://two.example.com"

	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("SetProfileURL() changed more than the target (-want +got):\n%s", diff)
	}

	// persisted on mutation
	require.NotNil(t, repo.cfg)
	assert.Equal(t, "https://two.example.com", repo.cfg.Profiles[1].URL)
}

func TestConfigStore_EmptyURLIsAccepted(t *testing.T) {
	c := NewConfigStore(&memRepo{})
	require.NoError(t, c.SetProfileURL("1", "https://one"))
	require.NoError(t, c.SetProfileURL("1", ""))
	assert.Equal(t, "", c.Profiles()[0].URL)
}

func TestConfigStore_SetActiveProfileChangesOnlyActiveID(t *testing.T) {
	c := NewConfigStore(&memRepo{})
	require.NoError(t, c.SetProfileURL("3", "https://three"))

	before := c.Snapshot()
	require.NoError(t, c.SetActiveProfile("3"))
	after := c.Snapshot()

	assert.Equal(t, "3", after.ActiveProfileID)
	assert.Equal(t, before.Profiles, after.Profiles)

	p, ok := c.ActiveProfile()
	require.True(t, ok)
	assert.Equal(t, "https://three", p.URL)
}

func TestConfigStore_UnknownID(t *testing.T) {
	tests := []struct {
		name string
		op   func(c *ConfigStore) error
	}{
		{"url", func(c *ConfigStore) error { return c.SetProfileURL("9", "x") }},
		{"name", func(c *ConfigStore) error { return c.SetProfileName("9", "x") }},
		{"active", func(c *ConfigStore) error { return c.SetActiveProfile("9") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			c := NewConfigStore(repo)
			before := c.Snapshot()

			err := tt.op(c)
			require.ErrorIs(t, err, ErrProfileNotFound)

			assert.Equal(t, before, c.Snapshot())
			assert.Zero(t, repo.saves, "nothing should be persisted")
		})
	}
}

func TestConfigStore_LoadPersisted(t *testing.T) {
	saved := model.DefaultConnectionConfig()
	saved.Profiles[0].Name = "Staging"
	saved.Profiles[0].URL = "https://staging"
	saved.ActiveProfileID = "2"

	c := NewConfigStore(&memRepo{cfg: &saved})
	require.NoError(t, c.Load())

	if diff := cmp.Diff(saved, c.Snapshot()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigStore_PersistFailureKeepsState(t *testing.T) {
	repo := &memRepo{failErr: errDiskFull}
	c := NewConfigStore(repo)

	require.ErrorIs(t, c.SetActiveProfile("2"), errDiskFull)
	assert.Equal(t, "1", c.ActiveProfileID())
}
