package builder

import "math/bits"

// roundCapacity rounds n up to a power of two, never below MinCapacity and
// saturating at the maximum capacity.
func (b *Builder[T]) roundCapacity(n int) int {
	limit := b.limit()
	if n <= MinCapacity {
		return min(MinCapacity, limit)
	}
	if n > limit {
		return limit
	}
	r := 1 << bits.Len(uint(n-1))
	if r > limit || r <= 0 {
		return limit
	}
	return r
}

// reserveAppend opens need slots after the live region and returns the
// physical offset of the first one.
//
// Existing slack after tail is used first. Failing that, the live region is
// slid toward the head side within the same array. Only when the total slack
// is too small is a new, centered array rented.
func (b *Builder[T]) reserveAppend(need int) (int, error) {
	if need == 0 {
		return b.tail, nil
	}

	free := len(b.array) - b.tail
	switch {
	case free >= need:
	case b.head+free >= need:
		offset := need - free
		copy(b.array[b.head-offset:], b.array[b.head:b.tail])
		b.head -= offset
		b.tail -= offset
		b.moved()
	default:
		return b.reallocate(need, b.Len())
	}

	at := b.tail
	b.tail += need
	return at, nil
}

// reservePrepend is the mirror of reserveAppend: it opens need slots before
// the live region and returns the new head.
func (b *Builder[T]) reservePrepend(need int) (int, error) {
	if need == 0 {
		return b.head, nil
	}

	free := len(b.array) - b.tail
	switch {
	case b.head >= need:
	case b.head+free >= need:
		offset := need - b.head
		copy(b.array[b.head+offset:], b.array[b.head:b.tail])
		b.head += offset
		b.tail += offset
		b.moved()
	default:
		return b.reallocate(need, 0)
	}

	b.head -= need
	return b.head, nil
}

// reserveInsert opens need slots at logical index and returns the physical
// offset of the gap. index must already be validated.
//
// Preference order: move the prefix into head slack, move the suffix into
// tail slack (whichever side fits and moves fewer elements), split the move
// across both slacks, and finally reallocate.
func (b *Builder[T]) reserveInsert(index, need int) (int, error) {
	length := b.Len()
	switch {
	case need == 0:
		return b.head + index, nil
	case index == length:
		return b.reserveAppend(need)
	case index == 0:
		return b.reservePrepend(need)
	}

	freeLeft := b.head
	freeRight := len(b.array) - b.tail
	canLeft := freeLeft >= need
	canRight := freeRight >= need

	switch {
	case canLeft && (!canRight || index <= length-index):
		copy(b.array[b.head-need:], b.array[b.head:b.head+index])
		b.head -= need
	case canRight:
		at := b.head + index
		copy(b.array[at+need:], b.array[at:b.tail])
		b.tail += need
	case freeLeft+freeRight >= need:
		left := freeLeft
		right := need - left
		at := b.head + index
		copy(b.array[b.head-left:], b.array[b.head:at])
		copy(b.array[at+right:], b.array[at:b.tail])
		b.head -= left
		b.tail += right
	default:
		return b.reallocate(need, index)
	}

	b.moved()
	return b.head + index, nil
}

// reallocate moves the live region into a freshly rented array with a gap of
// need slots at logical index gapAt. The new array is sized to the next power
// of two at or above the old capacity plus need, and the grown live region is
// centered in it. The old array goes back to the pool only after the copy.
func (b *Builder[T]) reallocate(need, gapAt int) (int, error) {
	length := b.Len()
	limit := b.limit()
	if need > limit-length {
		return 0, overflowError(length+need, limit)
	}

	want := limit
	if need <= limit-len(b.array) {
		want = len(b.array) + need
	}

	array := b.getPool().Rent(b.roundCapacity(want))
	if len(array) < length+need {
		b.getPool().Return(array)
		return 0, overflowError(length+need, len(array))
	}

	newHead := (len(array) - (length + need)) / 2
	copy(array[newHead:], b.array[b.head:b.head+gapAt])
	copy(array[newHead+gapAt+need:], b.array[b.head+gapAt:b.tail])

	old := b.array
	b.array = array
	b.head = newHead
	b.tail = newHead + length + need
	b.moved()
	if old != nil {
		b.getPool().Return(old)
	}

	return newHead + gapAt, nil
}

// Grow guarantees room for n more elements without another reallocation:
// afterwards FreeAppend()+FreePrepend() >= n.
func (b *Builder[T]) Grow(n int) error {
	if n < 0 {
		return ErrInvalidArgument
	}
	if b.head+len(b.array)-b.tail >= n {
		return nil
	}
	if _, err := b.reallocate(n, b.Len()); err != nil {
		return err
	}
	b.tail -= n
	return nil
}
