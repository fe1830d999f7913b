package core

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/inovacc/odoocli/internal/model"
	"gopkg.in/ini.v1"
)

// RCSection is one server entry of an odoorpc-style rc file:
//
//	[staging]
//	host = erp.example.com
//	protocol = jsonrpc+ssl
//	port = 443
//	database = staging
type RCSection struct {
	Host     string `ini:"host"`
	Protocol string `ini:"protocol"`
	Port     int    `ini:"port"`
	Database string `ini:"database"`
	User     string `ini:"user"`
}

// ImportedProfile is a parsed rc section.
type ImportedProfile struct {
	Name     string
	URL      string
	Database string
	User     string
}

// URL builds protocol://host[:port]. jsonrpc maps to http and jsonrpc+ssl to
// https; default ports are omitted.
func (s RCSection) URL() (string, error) {
	if s.Host == "" {
		return "", fmt.Errorf("missing host")
	}

	var scheme string

	switch strings.ToLower(strings.TrimSpace(s.Protocol)) {
	case "", "jsonrpc", "http":
		scheme = "http"
	case "jsonrpc+ssl", "https":
		scheme = "https"
	default:
		return "", fmt.Errorf("unsupported protocol %q", s.Protocol)
	}

	host := s.Host
	if s.Port != 0 && !(scheme == "http" && s.Port == 80) && !(scheme == "https" && s.Port == 443) {
		host = net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	}

	return scheme + "://" + host, nil
}

// ParseProfiles reads up to model.ProfileSlots sections from an rc file.
func ParseProfiles(path string) ([]ImportedProfile, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	var out []ImportedProfile

	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}

		if len(out) == model.ProfileSlots {
			break
		}

		var rc RCSection
		if err := sec.MapTo(&rc); err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Name(), err)
		}

		url, err := rc.URL()
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sec.Name(), err)
		}

		out = append(out, ImportedProfile{
			Name:     sec.Name(),
			URL:      url,
			Database: rc.Database,
			User:     rc.User,
		})
	}

	return out, nil
}

// ImportProfiles loads an rc file into profile slots "1".."3" in file order.
// Slots beyond the number of sections are left untouched.
func (a *App) ImportProfiles(path string) ([]ImportedProfile, error) {
	imported, err := ParseProfiles(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	for i, p := range imported {
		id := strconv.Itoa(i + 1)

		if err := a.Profiles.SetProfileName(id, p.Name); err != nil {
			return nil, err
		}

		if err := a.Profiles.SetProfileURL(id, p.URL); err != nil {
			return nil, err
		}
	}

	return imported, nil
}
