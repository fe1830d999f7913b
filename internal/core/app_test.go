package core

import (
	"path/filepath"
	"testing"

	"github.com/inovacc/odoocli/internal/config"
	"github.com/inovacc/odoocli/internal/logging"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
	"github.com/inovacc/odoocli/internal/odoo/odootest"
	"github.com/inovacc/odoocli/internal/secret"
	"github.com/inovacc/odoocli/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	st, err := store.NewBolt(filepath.Join(t.TempDir(), "test.bolt"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	app, err := NewApp(Options{
		Config: config.Default(),
		Logger: logging.Discard(),
		Store:  st,
		Sealer: secret.NewAESSealer(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	t.Cleanup(func() { _ = app.Close() })

	return app
}

// gatewayFor returns a gateway logged in to srv.
func gatewayFor(srv *odootest.Server) *odoo.Client {
	return odoo.NewClient(
		odoo.StaticCredentials(model.Session{URL: srv.URL, APIKey: "k", Database: "db", Username: "u"}),
		odoo.Options{Logger: logging.Discard()},
	)
}

func TestNewApp_StartsLoggedOutWithDefaultProfiles(t *testing.T) {
	app := newTestApp(t)

	st := app.Status()
	if st.LoggedIn {
		t.Error("new app should be logged out")
	}

	if st.ActiveProfile != "1" {
		t.Errorf("ActiveProfile = %q, want %q", st.ActiveProfile, "1")
	}

	if st.StorePath == "" {
		t.Error("StorePath should be set")
	}
}

func TestNewApp_RestoresSessionFromStore(t *testing.T) {
	dir := t.TempDir()
	keyDir := t.TempDir()

	open := func() *App {
		st, err := store.NewBolt(filepath.Join(dir, "s.bolt"))
		if err != nil {
			t.Fatalf("open store: %v", err)
		}

		app, err := NewApp(Options{
			Config: config.Default(),
			Logger: logging.Discard(),
			Store:  st,
			Sealer: secret.NewAESSealer(keyDir),
		})
		if err != nil {
			t.Fatalf("NewApp() error = %v", err)
		}

		return app
	}

	first := open()
	if err := first.Auth.Login(model.Session{URL: "https://erp", APIKey: "k-1", Database: "prod", Username: "ana"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := first.Profiles.SetActiveProfile("2"); err != nil {
		t.Fatalf("SetActiveProfile() error = %v", err)
	}

	_ = first.Close()

	second := open()
	defer func() { _ = second.Close() }()

	creds, ok := second.Auth.Credentials()
	if !ok || creds.APIKey != "k-1" {
		t.Errorf("Credentials() = %+v, %v; want restored session", creds, ok)
	}

	if got := second.Profiles.ActiveProfileID(); got != "2" {
		t.Errorf("ActiveProfileID() = %q, want %q", got, "2")
	}
}
