// Package fetch coordinates asynchronous option lookups. Every issued fetch
// gets a generation number and only the result of the newest generation is
// ever applied, whatever order the lookups complete in.
package fetch

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// GenericError is reported when a provider fails without a message.
const GenericError = "Error"

// Snapshot is the observable state of the controller. While Loading the
// options of the previous settled fetch are kept.
type Snapshot[T any] struct {
	Options []T
	Loading bool
	Error   string
}

// Failed reports whether the last settled fetch failed.
func (s Snapshot[T]) Failed() bool { return s.Error != "" }

// Empty reports a settled, successful fetch with no options.
func (s Snapshot[T]) Empty() bool {
	return !s.Loading && !s.Failed() && len(s.Options) == 0
}

// ResultMsg carries the outcome of one provider call.
type ResultMsg[T any] struct {
	id         string
	Generation uint64
	Query      string
	Options    []T
	Err        error
}

// Controller issues fetches against a Provider and exposes the latest
// Snapshot.
type Controller[T any] struct {
	id       string
	provider Provider[T]

	ctx    context.Context
	cancel context.CancelFunc

	generation uint64
	query      string
	observed   bool
	snapshot   Snapshot[T]
	disposed   bool
}

// NewController creates a controller for provider.
func NewController[T any](provider Provider[T]) *Controller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		id:       uuid.NewString(),
		provider: provider,
		ctx:      ctx,
		cancel:   cancel,
		snapshot: Snapshot[T]{Options: []T{}},
	}
}

// ID identifies the controller in result messages.
func (c *Controller[T]) ID() string { return c.id }

// Snapshot returns the current options, loading flag and error.
func (c *Controller[T]) Snapshot() Snapshot[T] { return c.snapshot }

// Generation is the generation of the most recently issued fetch.
func (c *Controller[T]) Generation() uint64 { return c.generation }

// Query is the query of the most recently issued fetch.
func (c *Controller[T]) Query() string { return c.query }

// Fetch issues a lookup for query. The snapshot switches to loading at once;
// the returned command performs the lookup.
func (c *Controller[T]) Fetch(query string) tea.Cmd {
	if c.disposed || c.provider == nil {
		return nil
	}
	c.generation++
	c.query = query
	c.observed = true
	c.snapshot.Loading = true
	c.snapshot.Error = ""

	id, gen, provider, ctx := c.id, c.generation, c.provider, c.ctx
	return func() tea.Msg {
		opts, err := call(ctx, provider, query)
		return ResultMsg[T]{id: id, Generation: gen, Query: query, Options: opts, Err: err}
	}
}

// Observe fetches query if it differs from the last observed query.
func (c *Controller[T]) Observe(query string) tea.Cmd {
	if c.observed && query == c.query {
		return nil
	}
	return c.Fetch(query)
}

// Refetch issues a new fetch for the last query.
func (c *Controller[T]) Refetch() tea.Cmd {
	return c.Fetch(c.query)
}

// SetProvider swaps the provider and re-fetches the current query.
func (c *Controller[T]) SetProvider(p Provider[T]) tea.Cmd {
	if c.disposed {
		return nil
	}
	c.provider = p
	return c.Fetch(c.query)
}

// Update applies a ResultMsg. It returns true only when the message belonged
// to this controller and to its current generation.
func (c *Controller[T]) Update(msg tea.Msg) bool {
	m, ok := msg.(ResultMsg[T])
	if !ok || m.id != c.id || c.disposed || m.Generation != c.generation {
		return false
	}

	c.snapshot.Loading = false
	if m.Err != nil {
		c.snapshot.Options = []T{}
		c.snapshot.Error = m.Err.Error()
		if c.snapshot.Error == "" {
			c.snapshot.Error = GenericError
		}
		return true
	}

	c.snapshot.Error = ""
	if m.Options == nil {
		c.snapshot.Options = []T{}
	} else {
		c.snapshot.Options = m.Options
	}
	return true
}

// Dispose cancels the provider context; results arriving later are ignored.
func (c *Controller[T]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.cancel()
}

// call runs the provider, converting a panic into an error.
func call[T any](ctx context.Context, p Provider[T], query string) (opts []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			opts, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.FetchOptions(ctx, query)
}
