package fetch

import "context"

// Provider looks up options for a query. Implementations may be slow, may
// fail, and are not required to honour ctx.
type Provider[T any] interface {
	FetchOptions(ctx context.Context, query string) ([]T, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc[T any] func(ctx context.Context, query string) ([]T, error)

// FetchOptions calls f.
func (f ProviderFunc[T]) FetchOptions(ctx context.Context, query string) ([]T, error) {
	return f(ctx, query)
}
