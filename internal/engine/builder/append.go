package builder

import "math"

// Append adds items after the last element.
//
// items must not alias the builder's own storage (AsSpan, MutableSlice);
// use AppendView or a copy for self-appends.
func (b *Builder[T]) Append(items ...T) error {
	at, err := b.reserveAppend(len(items))
	if err != nil {
		return err
	}
	copy(b.array[at:], items)
	return nil
}

// AppendRepeat adds count copies of item.
func (b *Builder[T]) AppendRepeat(item T, count int) error {
	if count < 0 {
		return ErrInvalidArgument
	}
	at, err := b.reserveAppend(count)
	if err != nil {
		return err
	}
	fill(b.array[at:at+count], item)
	return nil
}

// AppendRepeated adds count back-to-back copies of seq.
func (b *Builder[T]) AppendRepeated(seq []T, count int) error {
	need, err := b.repeatedSize(len(seq), count)
	if err != nil {
		return err
	}
	at, err := b.reserveAppend(need)
	if err != nil {
		return err
	}
	repeat(b.array[at:at+need], seq)
	return nil
}

// AppendView adds the content of v. v may be a view of b itself.
func (b *Builder[T]) AppendView(v View[T]) error {
	return b.Append(v.source(b)...)
}

// AppendBuilder adds the content of other. other may be b.
func (b *Builder[T]) AppendBuilder(other *Builder[T]) error {
	return b.AppendView(other.View())
}

// Prepend adds items before the first element, keeping their order.
func (b *Builder[T]) Prepend(items ...T) error {
	at, err := b.reservePrepend(len(items))
	if err != nil {
		return err
	}
	copy(b.array[at:], items)
	return nil
}

// PrependRepeat adds count copies of item at the front.
func (b *Builder[T]) PrependRepeat(item T, count int) error {
	if count < 0 {
		return ErrInvalidArgument
	}
	at, err := b.reservePrepend(count)
	if err != nil {
		return err
	}
	fill(b.array[at:at+count], item)
	return nil
}

// PrependRepeated adds count back-to-back copies of seq at the front.
func (b *Builder[T]) PrependRepeated(seq []T, count int) error {
	need, err := b.repeatedSize(len(seq), count)
	if err != nil {
		return err
	}
	at, err := b.reservePrepend(need)
	if err != nil {
		return err
	}
	repeat(b.array[at:at+need], seq)
	return nil
}

// PrependView adds the content of v at the front. v may be a view of b.
func (b *Builder[T]) PrependView(v View[T]) error {
	return b.Prepend(v.source(b)...)
}

// PrependBuilder adds the content of other at the front. other may be b.
func (b *Builder[T]) PrependBuilder(other *Builder[T]) error {
	return b.PrependView(other.View())
}

// Insert places items so the first of them ends up at index.
// index may equal Len, which appends.
func (b *Builder[T]) Insert(index int, items ...T) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	at, err := b.reserveInsert(index, len(items))
	if err != nil {
		return err
	}
	copy(b.array[at:], items)
	return nil
}

// InsertRepeat places count copies of item at index.
func (b *Builder[T]) InsertRepeat(index int, item T, count int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if count < 0 {
		return ErrInvalidArgument
	}
	at, err := b.reserveInsert(index, count)
	if err != nil {
		return err
	}
	fill(b.array[at:at+count], item)
	return nil
}

// InsertRepeated places count back-to-back copies of seq at index.
func (b *Builder[T]) InsertRepeated(index int, seq []T, count int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	need, err := b.repeatedSize(len(seq), count)
	if err != nil {
		return err
	}
	at, err := b.reserveInsert(index, need)
	if err != nil {
		return err
	}
	repeat(b.array[at:at+need], seq)
	return nil
}

// InsertView places the content of v at index. v may be a view of b.
func (b *Builder[T]) InsertView(index int, v View[T]) error {
	return b.Insert(index, v.source(b)...)
}

func (b *Builder[T]) repeatedSize(n, count int) (int, error) {
	if count < 0 {
		return 0, ErrInvalidArgument
	}
	if n > 0 && count > math.MaxInt/n {
		return 0, overflowError(math.MaxInt, b.limit())
	}
	return n * count, nil
}

func fill[T any](dst []T, item T) {
	for i := range dst {
		dst[i] = item
	}
}

// repeat tiles dst with seq. len(dst) is a multiple of len(seq).
func repeat[T any](dst, seq []T) {
	if len(seq) == 0 {
		return
	}
	n := copy(dst, seq)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
}
