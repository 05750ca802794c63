package builder

// NormalizeAdjacent collapses every run of equal, flagged elements to at most
// maxAdjacent occurrences and returns how many elements were removed.
//
// An element is flagged when anyValue is true or it equals one of values.
// Unflagged elements are never removed. The pass is in place, single and
// stable. A nil cmp uses DefaultComparer.
func (b *Builder[T]) NormalizeAdjacent(maxAdjacent int, cmp Comparer[T], anyValue bool, values ...T) (int, error) {
	if maxAdjacent < 1 {
		return 0, ErrInvalidArgument
	}
	if b.Len() < 2 || (!anyValue && len(values) == 0) {
		return 0, nil
	}
	eq := comparerOrDefault(cmp)

	flagged := func(x T) bool {
		if anyValue {
			return true
		}
		for _, v := range values {
			if eq.Equal(x, v) {
				return true
			}
		}
		return false
	}

	prev := b.array[b.head]
	run := 1
	w := b.head + 1
	for r := b.head + 1; r < b.tail; r++ {
		cur := b.array[r]
		if eq.Equal(cur, prev) && flagged(cur) {
			run++
		} else {
			run = 1
		}
		prev = cur
		if run <= maxAdjacent {
			b.array[w] = cur
			w++
		}
	}
	return b.truncate(w), nil
}

// NormalizeDuplicates collapses every run of equal elements to one.
func (b *Builder[T]) NormalizeDuplicates(cmp Comparer[T]) int {
	n, _ := b.NormalizeAdjacent(1, cmp, true)
	return n
}

// NormalizeReplace collapses each maximal run of elements matching pred into
// a single replacement. Runs touching the start or the end are dropped
// without a replacement, so the result is trimmed as well as collapsed.
// It returns the net number of elements removed.
func (b *Builder[T]) NormalizeReplace(pred func(T) bool, replacement T) int {
	w := b.head
	pending := false
	for r := b.head; r < b.tail; r++ {
		x := b.array[r]
		if pred(x) {
			pending = true
			continue
		}
		if pending && w > b.head {
			b.array[w] = replacement
			w++
		}
		pending = false
		b.array[w] = x
		w++
	}
	return b.truncate(w)
}

// TrimLeft removes the longest prefix whose elements all match pred and
// returns its length.
func (b *Builder[T]) TrimLeft(pred func(T) bool) int {
	n := 0
	for i := b.head; i < b.tail && pred(b.array[i]); i++ {
		n++
	}
	b.remove(0, n)
	return n
}

// TrimRight removes the longest suffix whose elements all match pred and
// returns its length.
func (b *Builder[T]) TrimRight(pred func(T) bool) int {
	n := 0
	for i := b.tail - 1; i >= b.head && pred(b.array[i]); i-- {
		n++
	}
	b.remove(b.Len()-n, n)
	return n
}

// Trim removes matching elements from both ends and returns how many went.
func (b *Builder[T]) Trim(pred func(T) bool) int {
	return b.TrimRight(pred) + b.TrimLeft(pred)
}
