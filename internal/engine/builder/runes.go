package builder

// FromString creates a rune builder holding s.
func FromString(s string, opts ...Option[rune]) *Builder[rune] {
	return FromSlice([]rune(s), opts...)
}

// AppendString appends the runes of s.
func AppendString(b *Builder[rune], s string) error {
	return b.Append([]rune(s)...)
}

// PrependString prepends the runes of s.
func PrependString(b *Builder[rune], s string) error {
	return b.Prepend([]rune(s)...)
}

// InsertString inserts the runes of s at rune index.
func InsertString(b *Builder[rune], index int, s string) error {
	return b.Insert(index, []rune(s)...)
}
