package text

import (
	"unicode/utf8"

	"github.com/dshills/dequebuf/internal/engine/builder"
)

// Matcher finds match locations as byte offsets into s. *regexp.Regexp
// satisfies it.
type Matcher interface {
	FindAllStringIndex(s string, n int) [][]int
}

// Match is one match located in rune indices.
type Match struct {
	Index int
	Text  string
}

// Len returns the match length in runes.
func (m Match) Len() int {
	return utf8.RuneCountInString(m.Text)
}

// Matches returns every match of m in the content, in order.
func Matches(b *builder.Builder[rune], m Matcher) []Match {
	s := b.String()
	locs := m.FindAllStringIndex(s, -1)
	out := make([]Match, 0, len(locs))
	runes, bytes := 0, 0
	for _, loc := range locs {
		runes += utf8.RuneCountInString(s[bytes:loc[0]])
		bytes = loc[0]
		out = append(out, Match{Index: runes, Text: s[loc[0]:loc[1]]})
	}
	return out
}

// InsertBeforeMatches inserts s in front of every match and returns the
// number of matches.
func InsertBeforeMatches(b *builder.Builder[rune], m Matcher, s string) (int, error) {
	return ReplaceMatchesFunc(b, m, func(match Match) string { return s + match.Text })
}

// InsertAfterMatches inserts s behind every match and returns the number of
// matches.
func InsertAfterMatches(b *builder.Builder[rune], m Matcher, s string) (int, error) {
	return ReplaceMatchesFunc(b, m, func(match Match) string { return match.Text + s })
}

// ReplaceMatches replaces every match with the literal repl.
func ReplaceMatches(b *builder.Builder[rune], m Matcher, repl string) (int, error) {
	return ReplaceMatchesFunc(b, m, func(Match) string { return repl })
}

// ReplaceMatchesFunc replaces every match with fn's result. Matches are
// found once, against the content before any replacement. On error the
// content is unchanged.
func ReplaceMatchesFunc(b *builder.Builder[rune], m Matcher, fn func(Match) string) (int, error) {
	matches := Matches(b, m)
	if len(matches) == 0 {
		return 0, nil
	}
	repls := make([][]rune, len(matches))
	growth := 0
	for i, match := range matches {
		repls[i] = []rune(fn(match))
		if d := len(repls[i]) - match.Len(); d > 0 {
			growth += d
		}
	}
	if err := b.Grow(growth); err != nil {
		return 0, err
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if err := b.Replace(matches[i].Index, matches[i].Len(), repls[i]); err != nil {
			return len(matches) - 1 - i, err
		}
	}
	return len(matches), nil
}
