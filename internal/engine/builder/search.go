package builder

// IndexFunc returns the index of the first element matching pred, or -1.
func (b *Builder[T]) IndexFunc(pred func(T) bool) int {
	for i := b.head; i < b.tail; i++ {
		if pred(b.array[i]) {
			return i - b.head
		}
	}
	return -1
}

// LastIndexFunc returns the index of the last element matching pred, or -1.
func (b *Builder[T]) LastIndexFunc(pred func(T) bool) int {
	for i := b.tail - 1; i >= b.head; i-- {
		if pred(b.array[i]) {
			return i - b.head
		}
	}
	return -1
}

// IndexOf returns the index of the first element equal to value, or -1.
func (b *Builder[T]) IndexOf(value T, cmp Comparer[T]) int {
	eq := comparerOrDefault(cmp)
	return b.IndexFunc(func(x T) bool { return eq.Equal(x, value) })
}

// Contains reports whether value is present.
func (b *Builder[T]) Contains(value T, cmp Comparer[T]) bool {
	return b.IndexOf(value, cmp) >= 0
}

// IndexOfSeq returns the index of the first occurrence of seq at or after
// from, or -1. An empty seq matches at from.
func (b *Builder[T]) IndexOfSeq(seq []T, from int, cmp Comparer[T]) int {
	if from < 0 || from > b.Len() {
		return -1
	}
	eq := comparerOrDefault(cmp)
	for i := from; i+len(seq) <= b.Len(); i++ {
		if b.matchAt(i, seq, eq) {
			return i
		}
	}
	return -1
}

// LastIndexOfSeq returns the index of the last occurrence of seq, or -1.
func (b *Builder[T]) LastIndexOfSeq(seq []T, cmp Comparer[T]) int {
	eq := comparerOrDefault(cmp)
	for i := b.Len() - len(seq); i >= 0; i-- {
		if b.matchAt(i, seq, eq) {
			return i
		}
	}
	return -1
}

// StartsWith reports whether the content begins with seq.
func (b *Builder[T]) StartsWith(seq []T, cmp Comparer[T]) bool {
	return len(seq) <= b.Len() && b.matchAt(0, seq, comparerOrDefault(cmp))
}

// EndsWith reports whether the content ends with seq.
func (b *Builder[T]) EndsWith(seq []T, cmp Comparer[T]) bool {
	return len(seq) <= b.Len() && b.matchAt(b.Len()-len(seq), seq, comparerOrDefault(cmp))
}

// Equal reports whether the content equals seq element by element.
func (b *Builder[T]) Equal(seq []T, cmp Comparer[T]) bool {
	return len(seq) == b.Len() && b.matchAt(0, seq, comparerOrDefault(cmp))
}

func (b *Builder[T]) matchAt(index int, seq []T, eq Comparer[T]) bool {
	base := b.head + index
	for j, v := range seq {
		if !eq.Equal(b.array[base+j], v) {
			return false
		}
	}
	return true
}
