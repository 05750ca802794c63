package builder

// Replace overwrites length elements at index with replacement, growing or
// shrinking the builder by the difference.
//
// The only fallible step, reserving extra room, runs before anything is
// written, so a failed Replace leaves the builder untouched.
func (b *Builder[T]) Replace(index, length int, replacement []T) error {
	if err := b.checkRange(index, length); err != nil {
		return err
	}

	if len(replacement) <= length {
		copy(b.array[b.head+index:], replacement)
		return b.Remove(index+len(replacement), length-len(replacement))
	}

	if _, err := b.reserveInsert(index+length, len(replacement)-length); err != nil {
		return err
	}
	copy(b.array[b.head+index:], replacement)
	return nil
}

// span is one pending replacement: length elements at index become with.
type span[T any] struct {
	index  int
	length int
	with   []T
}

// ReplaceWhere replaces every element matching pred with replacement and
// returns the number of replacements.
func (b *Builder[T]) ReplaceWhere(pred func(T) bool, replacement []T) (int, error) {
	if len(replacement) == 1 {
		n := 0
		for i := b.head; i < b.tail; i++ {
			if pred(b.array[i]) {
				b.array[i] = replacement[0]
				n++
			}
		}
		return n, nil
	}

	var spans []span[T]
	for i := b.head; i < b.tail; i++ {
		if pred(b.array[i]) {
			spans = append(spans, span[T]{index: i - b.head, length: 1, with: replacement})
		}
	}
	return b.applySpans(spans)
}

// ReplaceFunc replaces every element matching pred with selector(element).
// pred and selector run for all elements before the builder changes.
func (b *Builder[T]) ReplaceFunc(pred func(T) bool, selector func(T) []T) (int, error) {
	var spans []span[T]
	for i := b.head; i < b.tail; i++ {
		if x := b.array[i]; pred(x) {
			spans = append(spans, span[T]{index: i - b.head, length: 1, with: selector(x)})
		}
	}
	return b.applySpans(spans)
}

// ReplaceAll replaces non-overlapping occurrences of old, scanning from the
// start, with replacement. A nil cmp uses DefaultComparer.
func (b *Builder[T]) ReplaceAll(old, replacement []T, cmp Comparer[T]) (int, error) {
	if len(old) == 0 {
		return 0, ErrInvalidArgument
	}
	eq := comparerOrDefault(cmp)

	var spans []span[T]
	for i := 0; i+len(old) <= b.Len(); {
		if b.matchAt(i, old, eq) {
			spans = append(spans, span[T]{index: i, length: len(old), with: replacement})
			i += len(old)
			continue
		}
		i++
	}
	return b.applySpans(spans)
}

// applySpans applies ascending, non-overlapping spans from the last to the
// first so earlier indices stay valid. Room for the worst intermediate size
// is reserved up front; after that no step can fail.
func (b *Builder[T]) applySpans(spans []span[T]) (int, error) {
	if len(spans) == 0 {
		return 0, nil
	}

	growth, peak := 0, 0
	for i := len(spans) - 1; i >= 0; i-- {
		growth += len(spans[i].with) - spans[i].length
		peak = max(peak, growth)
	}
	if err := b.Grow(peak); err != nil {
		return 0, err
	}

	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if err := b.Replace(s.index, s.length, s.with); err != nil {
			return len(spans) - 1 - i, err
		}
	}
	return len(spans), nil
}
