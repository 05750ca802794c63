// Package builder provides a double-ended growable sequence buffer.
//
// A Builder keeps its content in the middle of a pooled array, delimited by
// a head and a tail offset. Free space on both sides makes appends and
// prepends amortized O(1), and inserts in the middle only move the shorter
// side of the content.
//
// # Layout
//
//	array: [ free prepend | live content        | free append ]
//	        0             head                  tail          len(array)
//
// Every mutator goes through the same capacity algorithm:
//
//   - use slack on the side that needs it,
//   - otherwise slide the content within the same array,
//   - otherwise rent a power-of-two array, center the content in it and
//     return the old array to the pool.
//
// # Basic Usage
//
//	b := builder.FromString("Hello")
//	defer b.Close()
//
//	builder.AppendString(b, ", World") // "Hello, World"
//	b.Insert(5, '!')                   // "Hello!, World"
//	b.Remove(5, 1)                     // "Hello, World"
//	b.ReverseAll()                     // "dlroW ,olleH"
//
// Builders are generic over the element type:
//
//	ids := builder.New[int](64)
//	ids.Append(3, 1, 2)
//	ids.Prepend(0)
//
// # Compaction
//
// Predicate-driven removal and normalization run as a single forward pass
// with a lagging write cursor:
//
//	b := builder.FromString("aaabbbccc")
//	b.NormalizeAdjacent(1, nil, false, 'a', 'b', 'c') // "abc"
//
//	b = builder.FromString("  a   b  ")
//	b.NormalizeReplace(unicode.IsSpace, ' ') // "a b"
//
// NormalizeReplace drops runs at either end and collapses interior runs to
// one replacement element.
//
// # Views
//
// View, Slice, AsSpan and MutableSlice alias the builder's array without
// copying. Any mutation that moves or removes elements invalidates them;
// View.Valid reports this, View.Clone copies out.
//
// # Resources
//
// Close returns the array to its pool. With scopes a builder to a function:
//
//	err := builder.With(0, func(b *builder.Builder[rune]) error {
//	    builder.AppendString(b, "scoped")
//	    out = b.String()
//	    return nil
//	})
//
// # Errors
//
//   - ErrOutOfRange: index or length outside the content
//   - ErrCapacityOverflow: growth beyond the maximum capacity
//   - ErrInvalidArgument: negative count, empty search pattern, maxAdjacent < 1
//
// Checks run before any write. Panics from caller predicates and comparers
// propagate; the Try variants and Transact restore the content instead.
//
// # Concurrency
//
// A Builder is not safe for concurrent use.
package builder
