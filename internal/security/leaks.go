// Package security scans the odoocli data directory for credentials that were
// written in clear.
package security

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
	"github.com/zricethezav/gitleaks/v8/sources"
)

// LeakScanner runs the default gitleaks rules over files on disk.
type LeakScanner struct {
	detector *detect.Detector
}

// ScanResult contains the results of a leak scan
type ScanResult struct {
	Findings    []Finding
	HasLeaks    bool
	ScannedPath string
}

// Finding is one detected secret. Secret is redacted.
type Finding struct {
	RuleID      string `json:"rule_id"`
	Description string `json:"description"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	Secret      string `json:"secret"`
}

// NewLeakScanner creates a scanner with the default gitleaks rules.
func NewLeakScanner() (*LeakScanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	detector.Redact = 80

	return &LeakScanner{detector: detector}, nil
}

// ScanDirectory scans every file under path. A .gitleaksignore in path is honoured.
func (s *LeakScanner) ScanDirectory(ctx context.Context, path string) (*ScanResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := s.loadIgnore(absPath); err != nil {
		return nil, err
	}

	source := &sources.Files{
		Path:   absPath,
		Config: &s.detector.Config,
		Sema:   s.detector.Sema,
	}

	findings, err := s.detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return buildResult(findings, absPath), nil
}

func (s *LeakScanner) loadIgnore(dir string) error {
	ignorePath := filepath.Join(dir, ".gitleaksignore")
	if _, err := os.Stat(ignorePath); err != nil {
		return nil
	}

	if err := s.detector.AddGitleaksIgnore(ignorePath); err != nil {
		return fmt.Errorf("load %s: %w", ignorePath, err)
	}

	return nil
}

func buildResult(findings []report.Finding, path string) *ScanResult {
	result := &ScanResult{
		ScannedPath: path,
		HasLeaks:    len(findings) > 0,
		Findings:    make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			File:        f.File,
			Line:        f.StartLine,
			Secret:      f.Secret,
		})
	}

	return result
}

// FormatFindings renders findings as an indented list.
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "Found %d potential secret(s):\n\n", len(findings))

	for i, f := range findings {
		_, _ = fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Description)
		_, _ = fmt.Fprintf(&sb, "     Rule: %s\n", f.RuleID)
		_, _ = fmt.Fprintf(&sb, "     File: %s:%d\n", f.File, f.Line)
		_, _ = fmt.Fprintf(&sb, "     Secret: %s\n\n", f.Secret)
	}

	return sb.String()
}
