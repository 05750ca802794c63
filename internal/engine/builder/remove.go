package builder

// Remove deletes length elements starting at index.
//
// Removing at either end only moves head or tail. Otherwise the shorter of
// the prefix and suffix is copied over the gap.
func (b *Builder[T]) Remove(index, length int) error {
	if err := b.checkRange(index, length); err != nil {
		return err
	}
	b.remove(index, length)
	return nil
}

// remove is Remove without the range check.
func (b *Builder[T]) remove(index, length int) {
	if length == 0 {
		return
	}

	start := b.head + index
	suffix := b.Len() - index - length
	switch {
	case index == 0:
		clear(b.array[b.head : b.head+length])
		b.head += length
	case suffix == 0:
		clear(b.array[start:b.tail])
		b.tail -= length
	case index <= suffix:
		copy(b.array[b.head+length:], b.array[b.head:start])
		clear(b.array[b.head : b.head+length])
		b.head += length
	default:
		copy(b.array[start:], b.array[start+length:b.tail])
		clear(b.array[b.tail-length : b.tail])
		b.tail -= length
	}

	b.recenter()
	b.moved()
}

// RemoveLeft deletes the first n elements.
func (b *Builder[T]) RemoveLeft(n int) error {
	return b.Remove(0, n)
}

// RemoveRight deletes the last n elements.
func (b *Builder[T]) RemoveRight(n int) error {
	if n < 0 || n > b.Len() {
		return rangeError(0, n, b.Len())
	}
	return b.Remove(b.Len()-n, n)
}

// RemoveWhere deletes every element for which pred returns true, keeping the
// relative order of the rest, and returns how many were removed.
//
// A panicking pred propagates and leaves the content partially compacted;
// TryRemoveWhere restores it instead.
func (b *Builder[T]) RemoveWhere(pred func(T) bool) int {
	w := b.head
	for r := b.head; r < b.tail; r++ {
		if !pred(b.array[r]) {
			b.array[w] = b.array[r]
			w++
		}
	}
	return b.truncate(w)
}

// truncate ends the live region at physical offset w and reports how many
// elements were dropped.
func (b *Builder[T]) truncate(w int) int {
	removed := b.tail - w
	if removed == 0 {
		return 0
	}
	clear(b.array[w:b.tail])
	b.tail = w
	b.recenter()
	b.moved()
	return removed
}
