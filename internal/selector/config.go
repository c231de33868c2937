package selector

import "time"

const (
	DefaultDebounceInterval = 300 * time.Millisecond
	DefaultBlurGrace        = 120 * time.Millisecond
	DefaultItemHeight       = 40
	DefaultMaxVisibleItems  = 8
	DefaultOverscanCount    = 4
)

// Texts are the strings shown by a presentation layer in place of, or next
// to, the option list.
type Texts struct {
	Placeholder string
	NoResults   string
	Loading     string
	Error       string
}

// Config tunes a Controller. Zero fields fall back to the defaults, except
// OverscanCount: zero means no overscan, so only DefaultConfig carries
// DefaultOverscanCount. Start from DefaultConfig to keep it.
type Config struct {
	DebounceInterval time.Duration
	BlurGrace        time.Duration
	ItemHeight       int
	MaxVisibleItems  int
	OverscanCount    int
	Disabled         bool
	Texts            Texts
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		DebounceInterval: DefaultDebounceInterval,
		BlurGrace:        DefaultBlurGrace,
		ItemHeight:       DefaultItemHeight,
		MaxVisibleItems:  DefaultMaxVisibleItems,
		OverscanCount:    DefaultOverscanCount,
		Texts: Texts{
			Placeholder: "Search...",
			NoResults:   "No results",
			Loading:     "Loading...",
			Error:       "Error occurred",
		},
	}
}

// withDefaults fills zero values. A zero overscan is kept since it is valid.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = d.DebounceInterval
	}
	if c.BlurGrace <= 0 {
		c.BlurGrace = d.BlurGrace
	}
	if c.ItemHeight <= 0 {
		c.ItemHeight = d.ItemHeight
	}
	if c.MaxVisibleItems <= 0 {
		c.MaxVisibleItems = d.MaxVisibleItems
	}
	if c.OverscanCount < 0 {
		c.OverscanCount = 0
	}
	if c.Texts.Placeholder == "" {
		c.Texts.Placeholder = d.Texts.Placeholder
	}
	if c.Texts.NoResults == "" {
		c.Texts.NoResults = d.Texts.NoResults
	}
	if c.Texts.Loading == "" {
		c.Texts.Loading = d.Texts.Loading
	}
	if c.Texts.Error == "" {
		c.Texts.Error = d.Texts.Error
	}
	return c
}
