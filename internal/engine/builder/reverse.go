package builder

import "slices"

// Reverse reverses the order of length elements starting at index.
func (b *Builder[T]) Reverse(index, length int) error {
	if err := b.checkRange(index, length); err != nil {
		return err
	}
	slices.Reverse(b.array[b.head+index : b.head+index+length])
	return nil
}

// ReverseAll reverses the whole builder.
func (b *Builder[T]) ReverseAll() {
	slices.Reverse(b.array[b.head:b.tail])
}

// Swap exchanges the elements at i and j.
func (b *Builder[T]) Swap(i, j int) error {
	size := b.Len()
	if i < 0 || i >= size {
		return indexError(i, size)
	}
	if j < 0 || j >= size {
		return indexError(j, size)
	}
	b.array[b.head+i], b.array[b.head+j] = b.array[b.head+j], b.array[b.head+i]
	return nil
}

// SwapWithFirst exchanges the element at i with the first element.
func (b *Builder[T]) SwapWithFirst(i int) error {
	return b.Swap(0, i)
}

// SwapWithLast exchanges the element at i with the last element.
func (b *Builder[T]) SwapWithLast(i int) error {
	return b.Swap(i, b.Len()-1)
}
