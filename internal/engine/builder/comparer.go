package builder

import "reflect"

// Comparer decides element equality for normalize, search and replace.
type Comparer[T any] interface {
	Equal(a, b T) bool
}

// EqualFunc adapts a function to Comparer.
type EqualFunc[T any] func(a, b T) bool

// Equal calls f(a, b).
func (f EqualFunc[T]) Equal(a, b T) bool {
	return f(a, b)
}

type defaultComparer[T any] struct {
	plain bool
}

func (c defaultComparer[T]) Equal(a, b T) bool {
	if c.plain {
		return any(a) == any(b)
	}
	return reflect.DeepEqual(a, b)
}

// DefaultComparer compares with == when T is comparable and holds no
// interface values, and with reflect.DeepEqual otherwise.
func DefaultComparer[T any]() Comparer[T] {
	return defaultComparer[T]{plain: plainComparable(reflect.TypeFor[T]())}
}

// plainComparable reports whether == on t can never panic. An interface
// anywhere inside a struct or array may hold an uncomparable dynamic value.
func plainComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Array:
		return plainComparable(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !plainComparable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return t.Comparable()
	}
}

func comparerOrDefault[T any](c Comparer[T]) Comparer[T] {
	if c == nil {
		return DefaultComparer[T]()
	}
	return c
}
