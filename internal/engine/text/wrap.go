package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/dequebuf/internal/engine/builder"
)

// Wrap puts left before and right after the content.
func Wrap(b *builder.Builder[rune], left, right string) error {
	if err := b.Grow(utf8.RuneCountInString(left) + utf8.RuneCountInString(right)); err != nil {
		return err
	}
	if err := builder.PrependString(b, left); err != nil {
		return err
	}
	return builder.AppendString(b, right)
}

// Unwrap strips left and right when the content starts with left and ends
// with right, and reports whether it did. The two must not overlap.
func Unwrap(b *builder.Builder[rune], left, right string) bool {
	l, r := []rune(left), []rune(right)
	if b.Len() < len(l)+len(r) || !b.StartsWith(l, nil) || !b.EndsWith(r, nil) {
		return false
	}
	_ = b.RemoveRight(len(r))
	_ = b.RemoveLeft(len(l))
	return true
}

// CollapseWhitespace trims whitespace at both ends and turns every interior
// whitespace run into one space. It returns the net number of runes removed.
func CollapseWhitespace(b *builder.Builder[rune]) int {
	return b.NormalizeReplace(unicode.IsSpace, ' ')
}

// TrimSpace removes leading and trailing whitespace.
func TrimSpace(b *builder.Builder[rune]) int {
	return b.Trim(unicode.IsSpace)
}
