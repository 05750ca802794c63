package builder

import "github.com/dshills/dequebuf/internal/engine/pool"

// Option configures a Builder during creation.
type Option[T any] func(*Builder[T])

// WithPool sets the array source. The default is pool.Shared[T]().
func WithPool[T any](p pool.Pool[T]) Option[T] {
	return func(b *Builder[T]) {
		if p != nil {
			b.pool = p
		}
	}
}

// WithMaxCapacity caps the backing array size in elements.
// Non-positive values keep DefaultMaxCapacity.
func WithMaxCapacity[T any](n int) Option[T] {
	return func(b *Builder[T]) {
		if n > 0 {
			b.maxCapacity = n
		}
	}
}
