// Package config loads the planboard configuration: a yaml file with
// env-var overrides for credentials and deployment-specific knobs. Every
// behavioral input of the pipeline (root container, keyword, column
// aliases, terminal statuses, cache TTL, lookahead window) lives here so
// revisions never require a code change.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planboard/planboard/internal/columns"
	"github.com/planboard/planboard/internal/extract"
	"github.com/planboard/planboard/internal/views"
)

// Duration wraps time.Duration so yaml values can use the "10m" / "90s"
// syntax instead of raw nanosecond counts
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the runtime configuration
type Config struct {
	// Remote service
	AccessToken string `yaml:"access_token"`
	APIBaseURL  string `yaml:"api_base_url"`

	// Discovery
	RootID  int64  `yaml:"root_id"`  // workspace or folder id
	Keyword string `yaml:"keyword"`  // sheet-name substring to match

	// Extraction
	Aliases         columns.AliasTable      `yaml:"aliases"`
	InclusionPolicy extract.InclusionPolicy `yaml:"inclusion_policy"`

	// Views
	TerminalStatuses []string `yaml:"terminal_statuses"`
	LookaheadDays    int      `yaml:"lookahead_days"`
	DigestTopN       int      `yaml:"digest_top_n"`

	// Caching
	CacheTTL Duration `yaml:"cache_ttl"`

	// AI summary (optional; disabled when the key is empty)
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	Debug bool `yaml:"debug"`
}

// Default returns the configuration defaults applied before the file and
// environment are read
func Default() *Config {
	return &Config{
		APIBaseURL:       "https://api.smartsheet.com/2.0",
		Keyword:          "Project Plan",
		Aliases:          columns.DefaultAliases(),
		InclusionPolicy:  extract.RequireTask,
		TerminalStatuses: views.DefaultTerminalStatuses,
		LookaheadDays:    7,
		DigestTopN:       5,
		CacheTTL:         Duration(10 * time.Minute),
		GeminiModel:      "gemini-2.0-flash",
	}
}

// Load reads the config file at path (missing file is fine: defaults
// apply), layers env overrides on top and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides layers environment variables over file values.
// Credentials in particular usually arrive this way.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SMARTSHEET_ACCESS_TOKEN"); v != "" {
		c.AccessToken = v
	}
	if v := os.Getenv("PLANBOARD_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("PLANBOARD_ROOT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.RootID = id
		}
	}
	if v := os.Getenv("PLANBOARD_KEYWORD"); v != "" {
		c.Keyword = v
	}
	if v := os.Getenv("PLANBOARD_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = Duration(d)
		}
	}
	if v := os.Getenv("PLANBOARD_LOOKAHEAD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LookaheadDays = n
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("PLANBOARD_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

func (c *Config) validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("access token is required (set SMARTSHEET_ACCESS_TOKEN)")
	}
	if c.RootID == 0 {
		return fmt.Errorf("root_id is required")
	}
	if c.Keyword == "" {
		return fmt.Errorf("keyword must not be empty")
	}
	if !c.InclusionPolicy.Valid() {
		return fmt.Errorf("inclusion_policy must be %q or %q, got %q",
			extract.RequireTask, extract.RequireAssigneeOrDate, c.InclusionPolicy)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL.Std())
	}
	if c.LookaheadDays < 0 {
		return fmt.Errorf("lookahead_days must not be negative, got %d", c.LookaheadDays)
	}
	for _, field := range []string{
		columns.FieldTask, columns.FieldStatus, columns.FieldAssignee,
		columns.FieldStart, columns.FieldEnd,
	} {
		if len(c.Aliases[field]) == 0 {
			return fmt.Errorf("aliases for %q must not be empty", field)
		}
	}
	return nil
}
