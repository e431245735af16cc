package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kioku-app/kioku/internal/version"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where kioku stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Timezone is the IANA timezone identifier used for all day-boundary
	// arithmetic (due-today, daily buckets, streaks). Empty means the
	// system local timezone.
	Timezone string
	// Version is the current version of server
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from KIOKU_* environment variables.
// Values already set on the profile are only overridden when the
// corresponding variable is present.
func (p *Profile) FromEnv() {
	if v := os.Getenv("KIOKU_MODE"); v != "" {
		p.Mode = v
	}
	if v := os.Getenv("KIOKU_ADDR"); v != "" {
		p.Addr = v
	}
	if v := os.Getenv("KIOKU_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Port = port
		}
	}
	if v := os.Getenv("KIOKU_DATA"); v != "" {
		p.Data = v
	}
	if v := os.Getenv("KIOKU_DSN"); v != "" {
		p.DSN = v
	}
	p.Driver = getEnvOrDefault("KIOKU_DRIVER", p.Driver)
	p.Timezone = getEnvOrDefault("KIOKU_TZ", p.Timezone)
}

// Location resolves the configured timezone. An empty timezone means the
// system local timezone. Invalid identifiers are rejected by Validate, so
// callers after validation may ignore the error.
func (p *Profile) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", p.Timezone)
	}
	return loc, nil
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.Data == "" {
		p.Data = "."
	}
	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("kioku_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	if _, err := p.Location(); err != nil {
		return err
	}

	p.Version = version.GetCurrentVersion(p.Mode)
	return nil
}
