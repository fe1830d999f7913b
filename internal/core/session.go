package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/odoo"
)

// LoginInput holds what the user supplied to log in.
type LoginInput struct {
	// URL overrides the active profile's URL
	URL      string
	Database string
	Username string
	Password string
	APIKey   string

	// Verify checks the API key with a res.users lookup before storing it.
	// It is implied when Password is empty.
	Verify bool
}

// LoginResult describes a successful login.
type LoginResult struct {
	Session model.Session
	UID     int64
	Name    string
	Email   string
}

// ResolveURL returns the URL to log in to: the explicit one, or the active profile's.
func (a *App) ResolveURL(explicit string) (string, error) {
	if u := strings.TrimSpace(explicit); u != "" {
		return u, nil
	}

	if p, ok := a.Profiles.ActiveProfile(); ok && p.URL != "" {
		return p.URL, nil
	}

	return "", ErrNoServerURL
}

// Login authenticates and stores the session. Nothing is stored on failure.
func (a *App) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	url, err := a.ResolveURL(in.URL)
	if err != nil {
		return nil, err
	}

	session := model.Session{
		URL:      url,
		APIKey:   in.APIKey,
		Database: in.Database,
		Username: in.Username,
	}

	res := &LoginResult{Session: session}

	if in.Password != "" {
		auth, err := a.Gateway.Authenticate(ctx, odoo.AuthRequest{
			URL:      url,
			Database: in.Database,
			Login:    in.Username,
			Password: in.Password,
		})
		if err != nil {
			return nil, err
		}

		res.UID = auth.UID
		res.Name = auth.Name
	}

	if in.Verify || in.Password == "" {
		user, err := VerifyAPIKey(ctx, a.Gateway.WithCredentials(odoo.StaticCredentials(session)), in.Username)
		if err != nil {
			return nil, err
		}

		res.UID = user.ID
		res.Name = user.DisplayName.String()
		res.Email = user.Email.String()
	}

	if err := a.Auth.Login(session); err != nil {
		return nil, err
	}

	a.Logger.Info("logged in", slog.String("url", url), slog.String("username", in.Username))

	return res, nil
}

// VerifyAPIKey looks the user up by login through the JSON-2 API.
func VerifyAPIKey(ctx context.Context, gw odoo.Caller, username string) (*model.User, error) {
	users, err := odoo.SearchRead[model.User](ctx, gw, "res.users", odoo.Params{
		Domain: odoo.Domain{odoo.Cond("login", "=", username)},
		Fields: []string{"display_name", "email"},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}

	return &users[0], nil
}

// Logout clears the session and forgets its sealed credential.
func (a *App) Logout() error {
	prev := a.Auth.User()

	if err := a.Auth.Logout(); err != nil {
		return err
	}

	if prev != nil {
		label := model.CredentialLabel(prev.URL, prev.Database, prev.Username)
		if err := a.Sealer.Forget(label); err != nil {
			a.Logger.Warn("failed to remove stored credential", slog.Any("error", err))
		}
	}

	return nil
}
