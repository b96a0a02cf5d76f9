package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/weightboard/internal/clierr"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no weightboard config found (run 'weightboard init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the dashboard client configuration.
type Config struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
	LogFile string    `yaml:"log_file,omitempty"`
	TUI     TUIConfig `yaml:"tui,omitempty"`

	// APIURL is the v1 location of the store address.
	APIURL string `yaml:"api_url,omitempty"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// APIConfig locates the remote task store.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	RefreshInterval string     `yaml:"refresh_interval,omitempty"`
	DateColors      DateColors `yaml:"date_colors,omitempty"`
}

// DateColors maps pill classes to ANSI 256 color codes.
type DateColors struct {
	Today    string `yaml:"today,omitempty" json:"today,omitempty"`
	Tomorrow string `yaml:"tomorrow,omitempty" json:"tomorrow,omitempty"`
	Week     string `yaml:"week,omitempty" json:"week,omitempty"`
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LogPath returns the TUI log file path. Relative paths are resolved
// against the config directory.
func (c *Config) LogPath() string {
	p := c.LogFile
	if p == "" {
		p = DefaultLogFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// APIPath returns the endpoint prefix, defaulting to DefaultAPIPath.
func (c *Config) APIPath() string {
	if c.API.Path == "" {
		return DefaultAPIPath
	}
	return c.API.Path
}

// RefreshInterval parses tui.refresh_interval. Returns the default when the
// field is empty or unparseable.
func (c *Config) RefreshInterval() time.Duration {
	s := c.TUI.RefreshInterval
	if s == "" {
		s = DefaultRefreshInterval
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultRefreshInterval)
	}
	return d
}

// DateColor returns the pill color for a class name ("today", "tomorrow",
// "week"), falling back to DefaultDateColors.
func (c *Config) DateColor(class string) string {
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}
	switch class {
	case "today":
		return pick(c.TUI.DateColors.Today, DefaultDateColors.Today)
	case "tomorrow":
		return pick(c.TUI.DateColors.Tomorrow, DefaultDateColors.Tomorrow)
	default:
		return pick(c.TUI.DateColors.Week, DefaultDateColors.Week)
	}
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		API:     APIConfig{BaseURL: DefaultBaseURL, Path: DefaultAPIPath},
		LogFile: DefaultLogFile,
		TUI: TUIConfig{
			RefreshInterval: DefaultRefreshInterval,
			DateColors:      DefaultDateColors,
		},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("%w: api.base_url: %w", ErrInvalid, err)
	}
	if c.TUI.RefreshInterval != "" {
		d, err := time.ParseDuration(c.TUI.RefreshInterval)
		if err != nil {
			return fmt.Errorf("%w: invalid tui.refresh_interval %q: %w", ErrInvalid, c.TUI.RefreshInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: tui.refresh_interval must be positive", ErrInvalid)
		}
	}
	return nil
}

// ValidateBaseURL checks that s is an absolute http(s) URL.
func ValidateBaseURL(s string) error {
	if s == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", s)
	}
	return nil
}

// Init writes a default config into dir, creating the directory.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a weightboard directory
// containing config.yml. Returns the absolute path to that directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the config directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no weightboard config found (run 'weightboard init' to create one)")
		}
		dir = parent
	}
}
