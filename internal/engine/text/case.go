package text

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/dequebuf/internal/engine/builder"
)

// Words splits identifier-like content into words. Whitespace, '_', '-'
// and '.' separate words, as do lower-to-upper transitions, letter-digit
// transitions, and the last capital of an acronym followed by a lowercase
// letter ("HTTPServer" is "HTTP", "Server").
func Words(b *builder.Builder[rune]) []string {
	s := b.AsSpan()
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(s[start:end]))
		}
		start = -1
	}
	for i, r := range s {
		if isWordSeparator(r) {
			flush(i)
			continue
		}
		if start >= 0 && boundary(s, i) {
			flush(i)
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(s))
	return words
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-' || r == '.'
}

func boundary(s []rune, i int) bool {
	prev, r := s[i-1], s[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r), unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r):
		return i+1 < len(s) && unicode.IsLower(s[i+1])
	}
	return false
}

// ToSnake rewrites the content as lower_snake_case.
func ToSnake(b *builder.Builder[rune]) error {
	return joinWords(b, "_", cases.Lower(language.Und), cases.Lower(language.Und))
}

// ToScreamingSnake rewrites the content as UPPER_SNAKE_CASE.
func ToScreamingSnake(b *builder.Builder[rune]) error {
	return joinWords(b, "_", cases.Upper(language.Und), cases.Upper(language.Und))
}

// ToKebab rewrites the content as lower-kebab-case.
func ToKebab(b *builder.Builder[rune]) error {
	return joinWords(b, "-", cases.Lower(language.Und), cases.Lower(language.Und))
}

// ToCamel rewrites the content as lowerCamelCase.
func ToCamel(b *builder.Builder[rune]) error {
	return joinWords(b, "", cases.Lower(language.Und), cases.Title(language.Und))
}

// ToPascal rewrites the content as UpperCamelCase.
func ToPascal(b *builder.Builder[rune]) error {
	return joinWords(b, "", cases.Title(language.Und), cases.Title(language.Und))
}

// joinWords rewrites b as its words joined by sep, mapping the first word
// through first and the others through rest.
func joinWords(b *builder.Builder[rune], sep string, first, rest cases.Caser) error {
	var sb strings.Builder
	for i, w := range Words(b) {
		if i == 0 {
			sb.WriteString(first.String(w))
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(rest.String(w))
	}
	return setString(b, sb.String())
}

// ToUpper upper-cases the content using the rules of tag.
func ToUpper(b *builder.Builder[rune], tag language.Tag) error {
	c := cases.Upper(tag)
	return setString(b, c.String(b.String()))
}

// ToLower lower-cases the content using the rules of tag.
func ToLower(b *builder.Builder[rune], tag language.Tag) error {
	c := cases.Lower(tag)
	return setString(b, c.String(b.String()))
}

// ToTitle title-cases each word of the content using the rules of tag.
func ToTitle(b *builder.Builder[rune], tag language.Tag) error {
	c := cases.Title(tag)
	return setString(b, c.String(b.String()))
}

func setString(b *builder.Builder[rune], s string) error {
	return b.Replace(0, b.Len(), []rune(s))
}

var identifierCases = map[string]func(*builder.Builder[rune]) error{
	"snake":     ToSnake,
	"kebab":     ToKebab,
	"camel":     ToCamel,
	"pascal":    ToPascal,
	"screaming": ToScreamingSnake,
}

var languageCases = map[string]func(*builder.Builder[rune], language.Tag) error{
	"upper": ToUpper,
	"lower": ToLower,
	"title": ToTitle,
}

// CaseModes returns the mode names ChangeCase accepts, sorted.
func CaseModes() []string {
	modes := slices.Collect(maps.Keys(identifierCases))
	modes = slices.AppendSeq(modes, maps.Keys(languageCases))
	slices.Sort(modes)
	return modes
}

// ChangeCase applies the named case transform. Mode names are matched
// without regard to case; tag only affects upper, lower and title.
func ChangeCase(b *builder.Builder[rune], mode string, tag language.Tag) error {
	mode = strings.ToLower(mode)
	if fn, ok := identifierCases[mode]; ok {
		return fn(b)
	}
	if fn, ok := languageCases[mode]; ok {
		return fn(b, tag)
	}
	return fmt.Errorf("%w %q", ErrUnknownCase, mode)
}
