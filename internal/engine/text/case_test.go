package text

import (
	"errors"
	"slices"
	"testing"

	"golang.org/x/text/language"

	"github.com/dshills/dequebuf/internal/engine/builder"
)

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"parseHTTPRequest", []string{"parse", "HTTP", "Request"}},
		{"hello_world-foo bar.baz", []string{"hello", "world", "foo", "bar", "baz"}},
		{"version2Update", []string{"version", "2", "Update"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"  __ ", nil},
		{"", nil},
		{"already", []string{"already"}},
	}

	for _, tt := range tests {
		b := builder.FromString(tt.input)
		if got := Words(b); !slices.Equal(got, tt.want) {
			t.Errorf("Words(%q) = %q, want %q", tt.input, got, tt.want)
		}
		b.Close()
	}
}

func TestIdentifierCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fn    func(*builder.Builder[rune]) error
		want  string
	}{
		{"snake", "parseHTTPRequest", ToSnake, "parse_http_request"},
		{"snake from kebab", "max-retry-count", ToSnake, "max_retry_count"},
		{"kebab", "Hello World", ToKebab, "hello-world"},
		{"screaming", "maxRetryCount", ToScreamingSnake, "MAX_RETRY_COUNT"},
		{"camel", "parse_http_request", ToCamel, "parseHttpRequest"},
		{"camel acronym", "HTTPServer", ToCamel, "httpServer"},
		{"pascal", "hello world", ToPascal, "HelloWorld"},
		{"pascal digits", "utf 8 decoder", ToPascal, "Utf8Decoder"},
		{"empty", "", ToSnake, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.FromString(tt.input)
			defer b.Close()
			if err := tt.fn(b); err != nil {
				t.Fatalf("transform: %v", err)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguageCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fn    func(*builder.Builder[rune], language.Tag) error
		tag   language.Tag
		want  string
	}{
		{"upper", "istanbul", ToUpper, language.Und, "ISTANBUL"},
		{"upper turkish", "istanbul", ToUpper, language.Turkish, "İSTANBUL"},
		{"lower", "ÀB", ToLower, language.Und, "àb"},
		{"title", "hello wIDE world", ToTitle, language.English, "Hello Wide World"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.FromString(tt.input)
			defer b.Close()
			if err := tt.fn(b, tt.tag); err != nil {
				t.Fatalf("transform: %v", err)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChangeCase(t *testing.T) {
	tests := []struct {
		mode  string
		input string
		tag   language.Tag
		want  string
	}{
		{"snake", "parseHTTPRequest", language.Und, "parse_http_request"},
		{"Kebab", "parseHTTPRequest", language.Und, "parse-http-request"},
		{"pascal", "parse_http_request", language.Und, "ParseHttpRequest"},
		{"upper", "istanbul", language.Turkish, "İSTANBUL"},
	}
	for _, tt := range tests {
		b := builder.FromString(tt.input)
		if err := ChangeCase(b, tt.mode, tt.tag); err != nil {
			t.Fatalf("%s: %v", tt.mode, err)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("%s(%q) = %q, want %q", tt.mode, tt.input, got, tt.want)
		}
		b.Close()
	}

	b := builder.FromString("keep")
	defer b.Close()
	if err := ChangeCase(b, "sideways", language.Und); !errors.Is(err, ErrUnknownCase) {
		t.Errorf("expected ErrUnknownCase, got %v", err)
	}
	if b.String() != "keep" {
		t.Errorf("content changed to %q", b.String())
	}

	want := []string{"camel", "kebab", "lower", "pascal", "screaming", "snake", "title", "upper"}
	if got := CaseModes(); !slices.Equal(got, want) {
		t.Errorf("CaseModes() = %v", got)
	}
}
