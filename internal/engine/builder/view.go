package builder

import "iter"

// View is a read-only window onto a builder's live region. It shares the
// builder's array: taking a view copies nothing, and a view stops being
// meaningful once the builder moves or drops elements. Valid reports
// whether that has happened; it does not detect in-place writes such as Set
// or Reverse.
type View[T any] struct {
	owner      *Builder[T]
	generation uint64
	items      []T
}

// View returns a view of the whole content.
func (b *Builder[T]) View() View[T] {
	return View[T]{
		owner:      b,
		generation: b.generation,
		items:      b.array[b.head:b.tail:b.tail],
	}
}

// Slice returns a zero-copy view of length elements starting at index.
func (b *Builder[T]) Slice(index, length int) (View[T], error) {
	if err := b.checkRange(index, length); err != nil {
		return View[T]{}, err
	}
	start := b.head + index
	return View[T]{
		owner:      b,
		generation: b.generation,
		items:      b.array[start : start+length : start+length],
	}, nil
}

// AsSpan returns the live region as a mutable slice aliasing the builder's
// array. Appending to the returned slice never writes into the builder.
func (b *Builder[T]) AsSpan() []T {
	return b.array[b.head:b.tail:b.tail]
}

// MutableSlice returns length elements starting at index as a mutable slice
// aliasing the builder's array.
func (b *Builder[T]) MutableSlice(index, length int) ([]T, error) {
	if err := b.checkRange(index, length); err != nil {
		return nil, err
	}
	start := b.head + index
	return b.array[start : start+length : start+length], nil
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int {
	return len(v.items)
}

// At returns the element at index.
func (v View[T]) At(index int) (T, error) {
	if index < 0 || index >= len(v.items) {
		var zero T
		return zero, indexError(index, len(v.items))
	}
	return v.items[index], nil
}

// All iterates over index/element pairs.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.items {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Slice narrows the view without copying.
func (v View[T]) Slice(index, length int) (View[T], error) {
	if index < 0 || length < 0 || index > len(v.items) || length > len(v.items)-index {
		return View[T]{}, rangeError(index, length, len(v.items))
	}
	v.items = v.items[index : index+length : index+length]
	return v, nil
}

// Valid reports whether the owning builder still has the layout the view
// was taken from.
func (v View[T]) Valid() bool {
	return v.owner == nil || v.owner.generation == v.generation
}

// Clone returns an owned copy of the viewed elements.
func (v View[T]) Clone() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// CopyTo copies the viewed elements into dst and returns the count copied.
func (v View[T]) CopyTo(dst []T) int {
	return copy(dst, v.items)
}

// Builder materializes the view into a new, independent builder.
func (v View[T]) Builder(opts ...Option[T]) *Builder[T] {
	return FromSlice(v.items, opts...)
}

// String renders the viewed elements like Builder.String.
func (v View[T]) String() string {
	return render(v.items)
}

// source returns the elements to write into dst, copying them first when
// they live in dst's own array.
func (v View[T]) source(dst *Builder[T]) []T {
	if v.owner == dst {
		return v.Clone()
	}
	return v.items
}
