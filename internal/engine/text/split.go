package text

import (
	"unicode"

	"github.com/dshills/dequebuf/internal/engine/builder"
)

// SplitOptions controls how Split shapes its entries.
type SplitOptions struct {
	// TrimEntries strips leading and trailing whitespace from each entry.
	TrimEntries bool
	// RemoveEmpty drops entries that are empty, after trimming if enabled.
	RemoveEmpty bool
	// Limit caps the number of entries when positive. The last entry holds
	// the unsplit remainder, separators included.
	Limit int
}

// Rune returns a separator predicate matching r.
func Rune(r rune) func(rune) bool {
	return func(c rune) bool { return c == r }
}

// AnyOf returns a separator predicate matching any rune of set.
func AnyOf(set string) func(rune) bool {
	return func(c rune) bool {
		for _, s := range set {
			if s == c {
				return true
			}
		}
		return false
	}
}

// Split cuts the content at every rune matching sep and returns the
// entries. The builder is not modified.
func Split(b *builder.Builder[rune], sep func(rune) bool, opts SplitOptions) []string {
	s := b.AsSpan()
	return entries(s, splitSpans(s, func(i int) int {
		if sep(s[i]) {
			return 1
		}
		return 0
	}, opts))
}

// SplitSeq cuts the content at every non-overlapping occurrence of sep.
func SplitSeq(b *builder.Builder[rune], sep string, opts SplitOptions) ([]string, error) {
	if sep == "" {
		return nil, ErrEmptyPattern
	}
	s := b.AsSpan()
	return entries(s, splitSpans(s, seqMatcher(s, []rune(sep)), opts)), nil
}

// SplitBuilders is Split returning a new builder per entry.
func SplitBuilders(b *builder.Builder[rune], sep func(rune) bool, opts SplitOptions, bopts ...builder.Option[rune]) []*builder.Builder[rune] {
	s := b.AsSpan()
	spans := splitSpans(s, func(i int) int {
		if sep(s[i]) {
			return 1
		}
		return 0
	}, opts)
	out := make([]*builder.Builder[rune], len(spans))
	for i, sp := range spans {
		out[i] = builder.FromSlice(s[sp[0]:sp[1]], bopts...)
	}
	return out
}

func seqMatcher(s, sep []rune) func(int) int {
	return func(i int) int {
		if i+len(sep) > len(s) {
			return 0
		}
		for j, r := range sep {
			if s[i+j] != r {
				return 0
			}
		}
		return len(sep)
	}
}

// splitSpans returns [from, to) pairs for each entry. sepAt reports the
// length of the separator starting at i, or 0.
func splitSpans(s []rune, sepAt func(i int) int, opts SplitOptions) [][2]int {
	var spans [][2]int
	emit := func(from, to int) {
		if opts.TrimEntries {
			for from < to && unicode.IsSpace(s[from]) {
				from++
			}
			for to > from && unicode.IsSpace(s[to-1]) {
				to--
			}
		}
		if opts.RemoveEmpty && from == to {
			return
		}
		spans = append(spans, [2]int{from, to})
	}

	start := 0
	for i := 0; i < len(s); {
		if opts.Limit > 0 && len(spans) == opts.Limit-1 {
			break
		}
		n := sepAt(i)
		if n == 0 {
			i++
			continue
		}
		emit(start, i)
		i += n
		start = i
	}
	emit(start, len(s))
	return spans
}

func entries(s []rune, spans [][2]int) []string {
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = string(s[sp[0]:sp[1]])
	}
	return out
}
