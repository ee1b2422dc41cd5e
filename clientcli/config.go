package clientcli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultServerURL is used when no server address is configured.
	DefaultServerURL = "http://localhost:44987"

	// DefaultTimeout is the aggregate per-operation timeout.
	DefaultTimeout = 5 * time.Second
)

// Config holds resolved client configuration for a single invocation.
// It is immutable once handed to New.
type Config struct {
	// ServerURL is the archive server address. A bare host[:port] is
	// accepted and normalized to http://host[:port].
	ServerURL string `validate:"required"`

	// Timeout bounds the whole exchange: connect, request and body read.
	Timeout time.Duration `validate:"min=0"`

	// LooseTLS disables certificate verification. Non-production only.
	LooseTLS bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that required fields are set. Run WithDefaults first
// if the config may be partially populated.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WithDefaults returns a copy of the config with defaults applied and
// the server URL scheme-normalized.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	cfg.ServerURL = NormalizeServerURL(cfg.ServerURL)
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg
}

// NormalizeServerURL prefixes a bare address with http:// and strips any
// trailing slash.
func NormalizeServerURL(addr string) string {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return strings.TrimSuffix(addr, "/")
}

// MergeConfig merges configs with later ones taking precedence. Zero
// values in later configs do not override earlier values. LooseTLS is
// sticky: once enabled by any layer it stays enabled.
func MergeConfig(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.ServerURL != "" {
			result.ServerURL = cfg.ServerURL
		}
		if cfg.Timeout != 0 {
			result.Timeout = cfg.Timeout
		}
		if cfg.LooseTLS {
			result.LooseTLS = true
		}
	}
	return result
}

// Profile holds saved connection settings for a single archive server.
type Profile struct {
	Name      string `yaml:"name"`
	ServerURL string `yaml:"server_url"`
	Timeout   int    `yaml:"timeout,omitempty"` // seconds
	LooseTLS  bool   `yaml:"loose_tls,omitempty"`
	Default   bool   `yaml:"default,omitempty"`
}

// ConfigFile holds the full profile file structure.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// GetProfile returns the profile by name, or the default profile when
// name is empty.
func (c *ConfigFile) GetProfile(name string) (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}
	if name == "" {
		return c.GetDefaultProfile()
	}
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// GetDefaultProfile returns the profile marked default, falling back to
// the first profile.
func (c *ConfigFile) GetDefaultProfile() (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}
	for i := range c.Profiles {
		if c.Profiles[i].Default {
			return &c.Profiles[i], nil
		}
	}
	return &c.Profiles[0], nil
}

// AddProfile adds a new profile. Returns ErrProfileExists if the name is
// already taken.
func (c *ConfigFile) AddProfile(p Profile) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
		}
	}
	c.Profiles = append(c.Profiles, p)
	return nil
}

// UpdateProfile replaces an existing profile by name.
func (c *ConfigFile) UpdateProfile(p Profile) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == p.Name {
			c.Profiles[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProfileNotFound, p.Name)
}

// RemoveProfile removes a profile by name.
func (c *ConfigFile) RemoveProfile(name string) error {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// SetDefault marks the named profile as default and clears the flag from
// all others.
func (c *ConfigFile) SetDefault(name string) error {
	found := false
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			c.Profiles[i].Default = true
			found = true
		} else {
			c.Profiles[i].Default = false
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

// Save writes the profile file, creating the parent directory if needed.
func (c *ConfigFile) Save(path string) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadConfigFile loads the profile file from the given path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default profile file path
// (~/.backuper/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".backuper", "config.yaml")
}

// ConfigFromProfile creates a Config from a saved profile.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{
		ServerURL: p.ServerURL,
		Timeout:   time.Duration(p.Timeout) * time.Second,
		LooseTLS:  p.LooseTLS,
	}
}
