package pool

import (
	"math/bits"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dshills/dequebuf/internal/logging"
)

// Size classes handled by Bucketed.
const (
	MinBucketShift = 5  // 32 elements
	MaxBucketShift = 30 // 1 << 30 elements

	// DefaultMaxRetained is the largest array (in elements) Bucketed keeps.
	DefaultMaxRetained = 1 << 20
)

// Pool is a source of backing arrays.
//
// Rent returns an array whose length is at least capacity. Return hands an
// array back; the caller must not touch it afterwards.
type Pool[T any] interface {
	Rent(capacity int) []T
	Return(array []T)
}

// Stats is a snapshot of pool activity.
type Stats struct {
	Rented    int64 // arrays handed out
	Allocated int64 // arrays that had to be allocated fresh
	Returned  int64 // arrays accepted back into a bucket
	Discarded int64 // arrays rejected on return (foreign size or too large)
}

// Bucketed pools arrays in power-of-two size classes.
// It is safe for concurrent use.
type Bucketed[T any] struct {
	buckets     [MaxBucketShift + 1]sync.Pool
	maxRetained int

	rented    atomic.Int64
	allocated atomic.Int64
	returned  atomic.Int64
	discarded atomic.Int64
}

// NewBucketed creates a bucketed pool that retains arrays of up to
// maxRetained elements. A non-positive maxRetained selects DefaultMaxRetained.
func NewBucketed[T any](maxRetained int) *Bucketed[T] {
	if maxRetained <= 0 {
		maxRetained = DefaultMaxRetained
	}
	return &Bucketed[T]{maxRetained: maxRetained}
}

// Rent returns an array of length RoundUp(capacity).
// Requests larger than the biggest size class get an exact, unpooled array.
func (p *Bucketed[T]) Rent(capacity int) []T {
	p.rented.Add(1)
	if capacity > 1<<MaxBucketShift {
		p.allocated.Add(1)
		return make([]T, capacity)
	}

	shift := bucketShift(capacity)
	if v := p.buckets[shift].Get(); v != nil {
		a := v.(*[]T)
		return (*a)[:1<<shift]
	}

	p.allocated.Add(1)
	return make([]T, 1<<shift)
}

// Return clears array and puts it back into its size class.
func (p *Bucketed[T]) Return(array []T) {
	c := cap(array)
	if c == 0 {
		return
	}
	if c < 1<<MinBucketShift || c&(c-1) != 0 {
		p.discarded.Add(1)
		return
	}
	if c > p.maxRetained {
		p.discarded.Add(1)
		logging.Logger().Debug("pool: discarding oversized array",
			"capacity", c, "max_retained", p.maxRetained)
		return
	}

	array = array[:c]
	clear(array)
	p.returned.Add(1)
	p.buckets[bits.TrailingZeros(uint(c))].Put(&array)
}

// Stats returns the current counters.
func (p *Bucketed[T]) Stats() Stats {
	return Stats{
		Rented:    p.rented.Load(),
		Allocated: p.allocated.Load(),
		Returned:  p.returned.Load(),
		Discarded: p.discarded.Load(),
	}
}

// MaxRetained returns the retention limit in elements.
func (p *Bucketed[T]) MaxRetained() int {
	return p.maxRetained
}

// Heap allocates a fresh array on every Rent and lets the garbage collector
// reclaim returned arrays.
type Heap[T any] struct{}

// Rent allocates an array of exactly capacity elements.
func (Heap[T]) Rent(capacity int) []T {
	if capacity < 0 {
		capacity = 0
	}
	return make([]T, capacity)
}

// Return is a no-op.
func (Heap[T]) Return([]T) {}

// RoundUp returns the smallest power of two >= n, never below 1<<MinBucketShift.
func RoundUp(n int) int {
	return 1 << bucketShift(n)
}

func bucketShift(n int) int {
	if n <= 1<<MinBucketShift {
		return MinBucketShift
	}
	return bits.Len(uint(n - 1))
}

var shared sync.Map // reflect.Type -> *Bucketed[T]

// Shared returns the process-wide bucketed pool for element type T.
func Shared[T any]() *Bucketed[T] {
	key := reflect.TypeFor[T]()
	if v, ok := shared.Load(key); ok {
		return v.(*Bucketed[T])
	}
	v, _ := shared.LoadOrStore(key, NewBucketed[T](DefaultMaxRetained))
	return v.(*Bucketed[T])
}

// SetSharedMaxRetained replaces the shared pool for T with one using the
// given retention limit. Arrays pooled by the previous instance are dropped.
func SetSharedMaxRetained[T any](maxRetained int) *Bucketed[T] {
	p := NewBucketed[T](maxRetained)
	shared.Store(reflect.TypeFor[T](), p)
	return p
}
