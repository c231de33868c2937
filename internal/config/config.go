package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchselect/internal/eventbus"
	"searchselect/internal/selector"
)

// CurrentVersion is written to every saved file.
const CurrentVersion = 1

// ErrInvalidConfig is returned for negative intervals, sizes or limits.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Selector SelectorSettings `toml:"selector"`
	Provider ProviderSettings `toml:"provider"`
	UI       UISettings       `toml:"ui"`
}

// SelectorSettings tunes the select box
type SelectorSettings struct {
	DebounceIntervalMs int    `toml:"debounce_interval_ms"`
	ItemHeight         int    `toml:"item_height"`
	MaxVisibleItems    int    `toml:"max_visible_items"`
	OverscanCount      int    `toml:"overscan_count"`
	BlurGraceMs        int    `toml:"blur_grace_ms"`
	PlaceholderText    string `toml:"placeholder_text"`
	NoResultsText      string `toml:"no_results_text"`
	LoadingText        string `toml:"loading_text"`
	ErrorText          string `toml:"error_text"`
	Disabled           bool   `toml:"disabled"`
}

// ProviderSettings configures the candidate directory
type ProviderSettings struct {
	LatencyMs      int    `toml:"latency_ms"`
	CandidateCount int    `toml:"candidate_count"`
	ResultLimit    int    `toml:"result_limit"`
	FailureKeyword string `toml:"failure_keyword"`
	CacheSize      int    `toml:"cache_size"` // 0 disables the result cache
}

// UISettings represents UI-related configuration
type UISettings struct {
	Controlled    bool   `toml:"controlled"`
	LastSelection string `toml:"last_selection"` // candidate value restored on start
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath is config.toml under the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "searchselect", "config.toml")
}

// NewConfigService creates a config service for path; an empty path means
// DefaultPath.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the service's file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	missing := errors.Is(err, os.ErrNotExist)
	switch {
	case missing:
		cfg = DefaultConfig()
	case err != nil:
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: missing})
	}
	return cfg, nil
}

// Save writes config to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Normalize(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	sel := selector.DefaultConfig()
	return &Config{
		Version: CurrentVersion,
		Selector: SelectorSettings{
			DebounceIntervalMs: int(sel.DebounceInterval / time.Millisecond),
			ItemHeight:         sel.ItemHeight,
			MaxVisibleItems:    sel.MaxVisibleItems,
			OverscanCount:      sel.OverscanCount,
			BlurGraceMs:        int(sel.BlurGrace / time.Millisecond),
			PlaceholderText:    sel.Texts.Placeholder,
			NoResultsText:      sel.Texts.NoResults,
			LoadingText:        sel.Texts.Loading,
			ErrorText:          sel.Texts.Error,
		},
		Provider: ProviderSettings{
			LatencyMs:      400,
			CandidateCount: 1000,
			ResultLimit:    300,
			FailureKeyword: "error",
			CacheSize:      128,
		},
		UI: UISettings{
			Controlled: true,
		},
	}
}

// Normalize rejects negative numbers and fills zero values with defaults.
// Overscan and cache size may legitimately be zero.
func (c *Config) Normalize() error {
	checks := []struct {
		name  string
		value int
	}{
		{"selector.debounce_interval_ms", c.Selector.DebounceIntervalMs},
		{"selector.item_height", c.Selector.ItemHeight},
		{"selector.max_visible_items", c.Selector.MaxVisibleItems},
		{"selector.overscan_count", c.Selector.OverscanCount},
		{"selector.blur_grace_ms", c.Selector.BlurGraceMs},
		{"provider.latency_ms", c.Provider.LatencyMs},
		{"provider.candidate_count", c.Provider.CandidateCount},
		{"provider.result_limit", c.Provider.ResultLimit},
		{"provider.cache_size", c.Provider.CacheSize},
	}
	for _, ch := range checks {
		if ch.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, ch.name, ch.value)
		}
	}

	d := DefaultConfig()
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	fillInt(&c.Selector.DebounceIntervalMs, d.Selector.DebounceIntervalMs)
	fillInt(&c.Selector.ItemHeight, d.Selector.ItemHeight)
	fillInt(&c.Selector.MaxVisibleItems, d.Selector.MaxVisibleItems)
	fillInt(&c.Selector.BlurGraceMs, d.Selector.BlurGraceMs)
	fillInt(&c.Provider.CandidateCount, d.Provider.CandidateCount)
	fillInt(&c.Provider.ResultLimit, d.Provider.ResultLimit)
	fillString(&c.Selector.PlaceholderText, d.Selector.PlaceholderText)
	fillString(&c.Selector.NoResultsText, d.Selector.NoResultsText)
	fillString(&c.Selector.LoadingText, d.Selector.LoadingText)
	fillString(&c.Selector.ErrorText, d.Selector.ErrorText)
	return nil
}

// SelectorConfig converts the selector section
func (c *Config) SelectorConfig() selector.Config {
	s := c.Selector
	return selector.Config{
		DebounceInterval: time.Duration(s.DebounceIntervalMs) * time.Millisecond,
		BlurGrace:        time.Duration(s.BlurGraceMs) * time.Millisecond,
		ItemHeight:       s.ItemHeight,
		MaxVisibleItems:  s.MaxVisibleItems,
		OverscanCount:    s.OverscanCount,
		Disabled:         s.Disabled,
		Texts: selector.Texts{
			Placeholder: s.PlaceholderText,
			NoResults:   s.NoResultsText,
			Loading:     s.LoadingText,
			Error:       s.ErrorText,
		},
	}
}

// Latency is the simulated provider delay
func (c *Config) Latency() time.Duration {
	return time.Duration(c.Provider.LatencyMs) * time.Millisecond
}

func fillInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func fillString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
