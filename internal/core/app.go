package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/inovacc/odoocli/internal/application"
	"github.com/inovacc/odoocli/internal/config"
	"github.com/inovacc/odoocli/internal/odoo"
	"github.com/inovacc/odoocli/internal/secret"
	"github.com/inovacc/odoocli/internal/state"
	"github.com/inovacc/odoocli/internal/store"
)

// Options configures NewApp. Store and Sealer are built from Config when nil.
type Options struct {
	Config     config.Config
	Logger     *slog.Logger
	Store      store.Store
	Sealer     secret.Sealer
	HTTPClient *http.Client
}

// App wires the stores and the gateway together.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    store.Store
	Sealer   secret.Sealer
	Auth     *state.AuthStore
	Profiles *state.ConfigStore
	Gateway  *odoo.Client
}

// NewApp opens persistence and restores the auth and profile state. A stored
// credential that cannot be opened is logged and leaves the app logged out.
func NewApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := opts.Store
	if st == nil {
		s, err := store.Open(opts.Config.Storage.Backend, opts.Config.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}

		st = s
	}

	sealer := opts.Sealer
	if sealer == nil {
		dir, err := application.GetApplicationDirectory()
		if err != nil {
			_ = st.Close()
			return nil, err
		}

		v, err := secret.New(opts.Config.Secrets.Mode, secret.Options{Dir: dir, Logger: logger})
		if err != nil {
			_ = st.Close()
			return nil, err
		}

		sealer = v
	}

	app := &App{
		Config:   opts.Config,
		Logger:   logger,
		Store:    st,
		Sealer:   sealer,
		Auth:     state.NewAuthStore(st, sealer),
		Profiles: state.NewConfigStore(st),
	}

	if err := app.Profiles.Load(); err != nil {
		_ = st.Close()
		return nil, err
	}

	if err := app.Auth.Load(); err != nil {
		logger.Warn("stored session could not be restored; log in again", slog.Any("error", err))
	}

	app.Gateway = odoo.NewClient(app.Auth, odoo.Options{
		Logger:     logger,
		HTTPClient: opts.HTTPClient,
		Timeout:    opts.Config.HTTP.Timeout,
	})

	return app, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}

	return a.Store.Close()
}

// Status summarises the session for display.
type Status struct {
	LoggedIn      bool   `json:"logged_in"`
	URL           string `json:"url,omitempty"`
	Database      string `json:"database,omitempty"`
	Username      string `json:"username,omitempty"`
	ActiveProfile string `json:"active_profile"`
	ProfileURL    string `json:"profile_url,omitempty"`
	StorePath     string `json:"store_path"`
}

// Status reports the current session and active profile.
func (a *App) Status() Status {
	s := Status{
		ActiveProfile: a.Profiles.ActiveProfileID(),
		StorePath:     a.Store.Path(),
	}

	if p, ok := a.Profiles.ActiveProfile(); ok {
		s.ProfileURL = p.URL
	}

	if u := a.Auth.User(); u != nil {
		s.LoggedIn = true
		s.URL = u.URL
		s.Database = u.Database
		s.Username = u.Username
	}

	return s
}
