package session

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Mode identifies the client flavor a session was opened with.
type Mode string

const (
	ModePlain Mode = "plain"
	ModeJDBC  Mode = "jdbc"
	ModeODBC  Mode = "odbc"
	ModeCLI   Mode = "cli"
)

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModePlain, ModeJDBC, ModeODBC, ModeCLI:
		return m, nil
	case "":
		return ModePlain, nil
	default:
		return "", errors.Newf("unknown mode %q", s)
	}
}

// Configuration is the read-only session context threaded through analysis.
// Resolution borrows it for the duration of a single call and never mutates it.
type Configuration struct {
	Zone           *time.Location
	PageSize       int
	RequestTimeout time.Duration
	PageTimeout    time.Duration
	Mode           Mode
	Username       string
	ClusterName    string
}

// Default returns a UTC configuration with the usual page settings.
func Default() *Configuration {
	return &Configuration{
		Zone:           time.UTC,
		PageSize:       1000,
		RequestTimeout: 90 * time.Second,
		PageTimeout:    45 * time.Second,
		Mode:           ModePlain,
	}
}

// TimeZone returns the session zone, UTC when unset.
func (c *Configuration) TimeZone() *time.Location {
	if c == nil || c.Zone == nil {
		return time.UTC
	}
	return c.Zone
}

// WithZone returns a copy of c using zone.
func (c *Configuration) WithZone(zone *time.Location) *Configuration {
	cp := *c
	cp.Zone = zone
	return &cp
}
