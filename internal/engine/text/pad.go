package text

import "github.com/dshills/dequebuf/internal/engine/builder"

// PadLeft prepends pattern, cycled from its start, until b holds width
// runes. Nothing happens when b is already at least width long.
func PadLeft(b *builder.Builder[rune], width int, pattern string) error {
	fill, err := padding(b, width, pattern)
	if err != nil || fill == 0 {
		return err
	}
	p := []rune(pattern)
	q, r := fill/len(p), fill%len(p)
	if err := b.Grow(fill); err != nil {
		return err
	}
	_ = b.Prepend(p[:r]...)
	return b.PrependRepeated(p, q)
}

// PadRight appends pattern, cycled from its start, until b holds width runes.
func PadRight(b *builder.Builder[rune], width int, pattern string) error {
	fill, err := padding(b, width, pattern)
	if err != nil || fill == 0 {
		return err
	}
	p := []rune(pattern)
	q, r := fill/len(p), fill%len(p)
	if err := b.Grow(fill); err != nil {
		return err
	}
	_ = b.AppendRepeated(p, q)
	return b.Append(p[:r]...)
}

// PadEven pads both sides to reach width. When the deficit is odd the extra
// rune goes to the right if biasRight is set, otherwise to the left.
func PadEven(b *builder.Builder[rune], width int, pattern string, biasRight bool) error {
	fill, err := padding(b, width, pattern)
	if err != nil || fill == 0 {
		return err
	}
	left := fill / 2
	if fill%2 == 1 && !biasRight {
		left++
	}
	if err := b.Grow(fill); err != nil {
		return err
	}
	if err := PadLeft(b, b.Len()+left, pattern); err != nil {
		return err
	}
	return PadRight(b, width, pattern)
}

// Alternation carries the side that receives the extra rune of the next odd
// deficit in PadAlternating. The zero value starts on the left.
type Alternation struct {
	right bool
}

// Right reports whether the next odd deficit favors the right side.
func (a Alternation) Right() bool {
	return a.right
}

// PadAlternating pads both sides like PadEven, taking the odd-deficit bias
// from state and returning the state for the next call. The bias flips only
// when it was used.
func PadAlternating(b *builder.Builder[rune], width int, pattern string, state Alternation) (Alternation, error) {
	fill, err := padding(b, width, pattern)
	if err != nil || fill == 0 {
		return state, err
	}
	if err := PadEven(b, width, pattern, state.right); err != nil {
		return state, err
	}
	if fill%2 == 1 {
		state.right = !state.right
	}
	return state, nil
}

func padding(b *builder.Builder[rune], width int, pattern string) (int, error) {
	if width <= b.Len() {
		return 0, nil
	}
	if pattern == "" {
		return 0, ErrEmptyPattern
	}
	return width - b.Len(), nil
}
