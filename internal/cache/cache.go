// Package cache decorates a fetch.Provider with an LRU of successful results
// and coalesces identical lookups that are in flight at the same time.
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"searchselect/internal/fetch"
)

// Provider is a caching fetch.Provider. It is safe for concurrent use.
type Provider[T any] struct {
	next    fetch.Provider[T]
	results *lru.Cache[string, []T]
	group   singleflight.Group
}

// New wraps next with a cache holding up to size queries.
func New[T any](next fetch.Provider[T], size int) (*Provider[T], error) {
	results, err := lru.New[string, []T](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	return &Provider[T]{next: next, results: results}, nil
}

// FetchOptions answers from the cache or asks the wrapped provider. Errors
// are returned to every waiting caller and never cached.
func (p *Provider[T]) FetchOptions(ctx context.Context, query string) ([]T, error) {
	if opts, ok := p.results.Get(query); ok {
		return opts, nil
	}

	v, err, _ := p.group.Do(query, func() (any, error) {
		opts, err := p.next.FetchOptions(ctx, query)
		if err != nil {
			return nil, err
		}
		p.results.Add(query, opts)
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// Len is the number of cached queries.
func (p *Provider[T]) Len() int { return p.results.Len() }

// Purge drops every cached result.
func (p *Provider[T]) Purge() { p.results.Purge() }
