package builder

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dshills/dequebuf/internal/engine/pool"
)

// Capacity bounds, in elements.
const (
	MinCapacity        = 32
	DefaultMaxCapacity = 1 << 30
)

// Builder is a double-ended growable sequence of T.
//
// The live content occupies array[head:tail]; the slots before head and after
// tail are free space for cheap prepends and appends. The backing array is
// rented from a pool.Pool and returned by Close.
//
// A Builder is not safe for concurrent use. Spans and views taken from it
// alias its storage and must not be used across a mutation.
//
// The zero value is an empty builder backed by pool.Shared[T]().
type Builder[T any] struct {
	array       []T
	head        int
	tail        int
	pool        pool.Pool[T]
	maxCapacity int

	// generation changes whenever live elements move or leave, so views can
	// detect that the layout they captured is gone.
	generation uint64
}

// New creates an empty builder with room for at least capacity elements.
// The capacity is rounded up to a power of two, at least MinCapacity. A
// non-positive capacity defers renting until the first write.
func New[T any](capacity int, opts ...Option[T]) *Builder[T] {
	b := &Builder[T]{}
	for _, opt := range opts {
		opt(b)
	}

	if capacity > 0 {
		b.array = b.getPool().Rent(b.roundCapacity(capacity))
		b.head = len(b.array) / 2
		b.tail = b.head
	}
	return b
}

// FromSlice creates a builder holding a copy of items, centered in its array.
// The initial array always fits items, even beyond the maximum capacity;
// later growth is checked against it.
func FromSlice[T any](items []T, opts ...Option[T]) *Builder[T] {
	b := New[T](0, opts...)
	if len(items) == 0 {
		return b
	}

	b.array = b.getPool().Rent(b.fitCapacity(len(items)))
	b.head = (len(b.array) - len(items)) / 2
	b.tail = b.head + copy(b.array[b.head:], items)
	return b
}

// With runs fn with a fresh builder and returns its array to the pool when fn
// returns, whatever the outcome. The builder must not escape fn; use ToSlice
// to keep its content.
func With[T any](capacity int, fn func(*Builder[T]) error, opts ...Option[T]) error {
	b := New(capacity, opts...)
	defer b.Close()
	return fn(b)
}

func (b *Builder[T]) getPool() pool.Pool[T] {
	if b.pool == nil {
		b.pool = pool.Shared[T]()
	}
	return b.pool
}

func (b *Builder[T]) limit() int {
	if b.maxCapacity <= 0 {
		return DefaultMaxCapacity
	}
	return b.maxCapacity
}

// fitCapacity sizes an array that must hold n elements. Within the limit it
// rounds like any growth; past it the array is exactly n.
func (b *Builder[T]) fitCapacity(n int) int {
	if n <= b.limit() {
		return b.roundCapacity(n)
	}
	return n
}

func (b *Builder[T]) moved() {
	b.generation++
}

// Len returns the number of elements.
func (b *Builder[T]) Len() int {
	return b.tail - b.head
}

// Cap returns the size of the backing array.
func (b *Builder[T]) Cap() int {
	return len(b.array)
}

// FreeAppend returns the number of free slots after the live region.
func (b *Builder[T]) FreeAppend() int {
	return len(b.array) - b.tail
}

// FreePrepend returns the number of free slots before the live region.
func (b *Builder[T]) FreePrepend() int {
	return b.head
}

// IsEmpty reports whether the builder holds no elements.
func (b *Builder[T]) IsEmpty() bool {
	return b.head == b.tail
}

// MaxCapacity returns the largest backing array the builder may grow to.
func (b *Builder[T]) MaxCapacity() int {
	return b.limit()
}

// At returns the element at index.
func (b *Builder[T]) At(index int) (T, error) {
	if index < 0 || index >= b.Len() {
		var zero T
		return zero, indexError(index, b.Len())
	}
	return b.array[b.head+index], nil
}

// Set overwrites the element at index.
func (b *Builder[T]) Set(index int, value T) error {
	if index < 0 || index >= b.Len() {
		return indexError(index, b.Len())
	}
	b.array[b.head+index] = value
	return nil
}

// First returns the first element, if any.
func (b *Builder[T]) First() (T, bool) {
	if b.IsEmpty() {
		var zero T
		return zero, false
	}
	return b.array[b.head], true
}

// Last returns the last element, if any.
func (b *Builder[T]) Last() (T, bool) {
	if b.IsEmpty() {
		var zero T
		return zero, false
	}
	return b.array[b.tail-1], true
}

// All iterates over index/element pairs from first to last.
func (b *Builder[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.head; i < b.tail; i++ {
			if !yield(i-b.head, b.array[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs from last to first.
func (b *Builder[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.tail - 1; i >= b.head; i-- {
			if !yield(i-b.head, b.array[i]) {
				return
			}
		}
	}
}

// ToSlice returns an owned copy of the content.
func (b *Builder[T]) ToSlice() []T {
	out := make([]T, b.Len())
	copy(out, b.array[b.head:b.tail])
	return out
}

// String renders the content. Rune and byte builders render as text.
func (b *Builder[T]) String() string {
	return render(b.array[b.head:b.tail])
}

func render[T any](items []T) string {
	switch s := any(items).(type) {
	case []rune:
		return string(s)
	case []byte:
		return string(s)
	case []string:
		return strings.Join(s, "")
	default:
		return fmt.Sprint(s)
	}
}

// Clear empties the builder and keeps its array.
func (b *Builder[T]) Clear() {
	clear(b.array[b.head:b.tail])
	b.head = len(b.array) / 2
	b.tail = b.head
	b.moved()
}

// Close returns the backing array to the pool. The builder is left empty
// and may be reused; the next write rents a new array. Close is idempotent.
func (b *Builder[T]) Close() error {
	if b.array == nil {
		return nil
	}
	old := b.array
	b.array = nil
	b.head, b.tail = 0, 0
	b.moved()
	b.getPool().Return(old)
	return nil
}

func (b *Builder[T]) checkIndex(index int) error {
	if index < 0 || index > b.Len() {
		return indexError(index, b.Len())
	}
	return nil
}

func (b *Builder[T]) checkRange(index, length int) error {
	size := b.Len()
	if index < 0 || length < 0 || index > size || length > size-index {
		return rangeError(index, length, size)
	}
	return nil
}

// recenter puts an empty live region back in the middle of the array so
// both ends regain slack.
func (b *Builder[T]) recenter() {
	if b.head == b.tail {
		b.head = len(b.array) / 2
		b.tail = b.head
	}
}
