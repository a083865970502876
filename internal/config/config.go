// Package config provides configuration file parsing for kernelprune.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/lockwait"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "/etc/kernelprune.yaml"

// ErrInvalid marks a configuration file that exists but cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds defaults that command-line flags may override.
type Config struct {
	// WaitSecondsForLock bounds how long to wait for the dpkg lock before
	// purging. Zero means do not wait.
	WaitSecondsForLock int `yaml:"wait_seconds_for_lock"`
	// LegacyLockWait polls the lock from this process even when apt-get
	// can wait for it itself.
	LegacyLockWait bool `yaml:"legacy_lock_wait"`
	// LockFile is the lock probed in legacy mode.
	LockFile string `yaml:"lock_file"`
	// Tool is "auto", "apt-get" or "dpkg".
	Tool string `yaml:"tool"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LockFile: lockwait.DefaultLockFile,
		Tool:     dpkg.ToolAuto,
	}
}

// Load reads the YAML file at path on top of the defaults. When explicit is
// false a missing file is not an error and the defaults are returned, and any
// other read failure is returned without ErrInvalid. Unknown keys are
// rejected.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case !explicit && errors.Is(err, fs.ErrNotExist):
			return cfg, nil
		case explicit:
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.WaitSecondsForLock < 0 {
		return fmt.Errorf("wait_seconds_for_lock must not be negative (got %d)", c.WaitSecondsForLock)
	}
	if c.LockFile == "" {
		return fmt.Errorf("lock_file must not be empty")
	}
	if c.Tool != dpkg.ToolAuto {
		if _, err := dpkg.ParseTool(c.Tool); err != nil {
			return err
		}
	}
	return nil
}
