// Package pool provides the array sources that back sequence builders.
//
// A Pool hands out arrays with Rent and takes them back with Return. The
// builder package only depends on that contract, so any allocator that honors
// it can be plugged in:
//
//   - Bucketed keeps one sync.Pool per power-of-two size class and is the
//     default. Arrays above a retention limit are left to the garbage
//     collector instead of being pooled.
//   - Heap allocates fresh arrays and ignores returns.
//
// Shared returns a process-wide Bucketed pool per element type:
//
//	p := pool.Shared[rune]()
//	a := p.Rent(100) // len(a) == 128
//	defer p.Return(a)
//
// Arrays are cleared when returned so pooled memory does not keep stale
// references alive.
package pool
