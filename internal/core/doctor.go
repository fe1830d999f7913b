package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/inovacc/odoocli/internal/secret"
	"github.com/inovacc/odoocli/internal/security"
)

// Check is one doctor result.
type Check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// DoctorReport is the outcome of Doctor.
type DoctorReport struct {
	Checks   []Check            `json:"checks"`
	Findings []security.Finding `json:"findings,omitempty"`
}

// Healthy reports whether every check passed.
func (r DoctorReport) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}

	return true
}

// DoctorOptions configures Doctor.
type DoctorOptions struct {
	// Scan runs gitleaks over ScanDir, or over the store's directory when empty.
	Scan    bool
	ScanDir string
}

// Doctor checks the store, the persisted session and, optionally, scans the
// data directory for credentials written in clear.
func (a *App) Doctor(ctx context.Context, opts DoctorOptions) (*DoctorReport, error) {
	var r DoctorReport

	if err := a.Store.Ping(); err != nil {
		r.Checks = append(r.Checks, Check{Name: "store", Detail: err.Error()})
	} else {
		r.Checks = append(r.Checks, Check{Name: "store", OK: true, Detail: a.Store.Path()})
	}

	r.Checks = append(r.Checks, a.sessionCheck(), a.credentialCheck())

	if c, ok := a.sealingCheck(); ok {
		r.Checks = append(r.Checks, c)
	}

	if !opts.Scan {
		return &r, nil
	}

	dir := opts.ScanDir
	if dir == "" {
		dir = filepath.Dir(a.Store.Path())
	}

	scanner, err := security.NewLeakScanner()
	if err != nil {
		return nil, err
	}

	res, err := scanner.ScanDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	r.Findings = res.Findings

	scan := Check{Name: "scan", OK: !res.HasLeaks, Detail: "no secrets in " + res.ScannedPath}
	if res.HasLeaks {
		scan.Detail = fmt.Sprintf("%d potential secret(s) in %s", len(res.Findings), res.ScannedPath)
	}

	r.Checks = append(r.Checks, scan)

	return &r, nil
}

func (a *App) sessionCheck() Check {
	u := a.Auth.User()
	if u == nil {
		return Check{Name: "session", OK: true, Detail: "logged out"}
	}

	return Check{Name: "session", OK: true, Detail: fmt.Sprintf("%s on %s (%s)", u.Username, u.URL, u.Database)}
}

// sealingCheck reports the configured secrets mode when the sealer exposes one.
func (a *App) sealingCheck() (Check, bool) {
	m, ok := a.Sealer.(interface{ Mode() string })
	if !ok {
		return Check{}, false
	}

	mode := m.Mode()
	if mode == secret.ModePlain {
		return Check{Name: "secrets", Detail: "mode plain: new API keys are stored in clear"}, true
	}

	return Check{Name: "secrets", OK: true, Detail: "mode " + mode}, true
}

func (a *App) credentialCheck() Check {
	rec, err := a.Store.GetAuth()
	if err != nil {
		return Check{Name: "credential", Detail: err.Error()}
	}

	if rec == nil || rec.User == nil || len(rec.User.Credential) == 0 {
		return Check{Name: "credential", OK: true, Detail: "none stored"}
	}

	switch kind := secret.Kind(rec.User.Credential); kind {
	case secret.ModeKeyring:
		return Check{Name: "credential", OK: true, Detail: "OS keyring"}
	case secret.ModeAES:
		return Check{Name: "credential", OK: true, Detail: "AES-256-GCM"}
	case secret.ModePlain:
		return Check{Name: "credential", Detail: "stored in clear (secrets.mode=plain)"}
	default:
		return Check{Name: "credential", Detail: "unrecognised format"}
	}
}
