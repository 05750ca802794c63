package builder

import "fmt"

// Transact runs fn against b. If fn returns an error or panics, b's content
// is restored to what it was before the call and Transact returns false.
func (b *Builder[T]) Transact(fn func(*Builder[T]) error) (ok bool) {
	head, length := b.head, b.Len()
	saved := b.getPool().Rent(length)
	copy(saved, b.array[b.head:b.tail])

	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
		if !ok {
			b.restore(saved[:length], head)
		}
		b.getPool().Return(saved)
	}()

	return fn(b) == nil
}

func (b *Builder[T]) restore(saved []T, head int) {
	clear(b.array[b.head:b.tail])
	if head+len(saved) > len(b.array) {
		if b.array != nil {
			b.getPool().Return(b.array)
		}
		b.array = b.getPool().Rent(b.fitCapacity(len(saved)))
		head = (len(b.array) - len(saved)) / 2
	}
	b.head = head
	b.tail = head + copy(b.array[head:], saved)
	b.moved()
}

// TryRemoveWhere is RemoveWhere that reports a panicking pred as
// (0, false) with the content left as it was.
func (b *Builder[T]) TryRemoveWhere(pred func(T) bool) (removed int, ok bool) {
	ok = b.Transact(func(b *Builder[T]) error {
		removed = b.RemoveWhere(pred)
		return nil
	})
	if !ok {
		return 0, false
	}
	return removed, true
}

// TryReplaceWhere is ReplaceWhere that reports any failure as (0, false)
// with the content left as it was.
func (b *Builder[T]) TryReplaceWhere(pred func(T) bool, replacement []T) (replaced int, ok bool) {
	ok = b.Transact(func(b *Builder[T]) error {
		var err error
		replaced, err = b.ReplaceWhere(pred, replacement)
		return err
	})
	if !ok {
		return 0, false
	}
	return replaced, true
}

// TryNormalizeAdjacent is NormalizeAdjacent that reports any failure as
// (0, false) with the content left as it was.
func (b *Builder[T]) TryNormalizeAdjacent(maxAdjacent int, cmp Comparer[T], anyValue bool, values ...T) (removed int, ok bool) {
	ok = b.Transact(func(b *Builder[T]) error {
		var err error
		removed, err = b.NormalizeAdjacent(maxAdjacent, cmp, anyValue, values...)
		return err
	})
	if !ok {
		return 0, false
	}
	return removed, true
}

// TryNormalizeReplace is NormalizeReplace that reports a panicking pred as
// (0, false) with the content left as it was.
func (b *Builder[T]) TryNormalizeReplace(pred func(T) bool, replacement T) (removed int, ok bool) {
	ok = b.Transact(func(b *Builder[T]) error {
		removed = b.NormalizeReplace(pred, replacement)
		return nil
	})
	if !ok {
		return 0, false
	}
	return removed, true
}

// TryTrim is Trim that reports a panicking pred as (0, false) with the
// content left as it was.
func (b *Builder[T]) TryTrim(pred func(T) bool) (removed int, ok bool) {
	ok = b.Transact(func(b *Builder[T]) error {
		removed = b.Trim(pred)
		return nil
	})
	if !ok {
		return 0, false
	}
	return removed, true
}

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Catch runs fn and converts a panic into a *PanicError.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	fn()
	return nil
}
