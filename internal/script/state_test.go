package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/engine/pool"
)

// runScript runs code against a builder holding input and returns both.
func runScript(t *testing.T, code, input string, opts ...Option) (*State, *builder.Builder[rune], error) {
	t.Helper()
	s := NewState(opts...)
	t.Cleanup(func() { s.Close() })
	b := builder.FromString(input)
	t.Cleanup(func() { b.Close() })
	return s, b, s.Run(context.Background(), code, b)
}

func global(s *State, name string) lua.LValue {
	return s.L.GetGlobal(name)
}

func TestRunAppend(t *testing.T) {
	_, b, err := runScript(t, `input:append(", World")`, "Hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.String(); got != "Hello, World" {
		t.Errorf("got %q, want %q", got, "Hello, World")
	}
}

func TestSeqNewAndChaining(t *testing.T) {
	code := `
local b = seq.new("  hello   world ")
b:collapse()
input:append(b:string()):pad_left(15, ".")
`
	_, b, err := runScript(t, code, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.String(); got != "....hello world" {
		t.Errorf("got %q", got)
	}
}

func TestOneBasedIndices(t *testing.T) {
	code := `
input:insert(3, "XY")
mid = input:string()
input:remove(3, 2)
first = input:at(1)
pos = input:index_of("CD")
missing = input:index_of("Z")
size = #input
`
	s, b, err := runScript(t, code, "ABCD")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := global(s, "mid").String(); got != "ABXYCD" {
		t.Errorf("after insert = %q, want ABXYCD", got)
	}
	if got := b.String(); got != "ABCD" {
		t.Errorf("after remove = %q, want ABCD", got)
	}
	if got := global(s, "first").String(); got != "A" {
		t.Errorf("at(1) = %q", got)
	}
	if got := global(s, "pos"); got != lua.LNumber(3) {
		t.Errorf("index_of = %v, want 3", got)
	}
	if got := global(s, "missing"); got != lua.LNil {
		t.Errorf("index_of missing = %v, want nil", got)
	}
	if got := global(s, "size"); got != lua.LNumber(4) {
		t.Errorf("#input = %v, want 4", got)
	}
}

func TestRemoveWhereWithLuaPredicate(t *testing.T) {
	s, b, err := runScript(t, `n = input:remove_where(function(c) return c:match("%d") ~= nil end)`, "a1b2c3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.String(); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
	if got := global(s, "n"); got != lua.LNumber(3) {
		t.Errorf("n = %v, want 3", got)
	}
}

func TestTryRemoveWhereRestores(t *testing.T) {
	code := `
n, ok = input:try_remove_where(function(c)
	if c == "b" then error("boom") end
	return true
end)
`
	s, b, err := runScript(t, code, "abc")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := b.String(); got != "abc" {
		t.Errorf("content = %q, want abc", got)
	}
	if global(s, "ok") != lua.LFalse || global(s, "n") != lua.LNumber(0) {
		t.Errorf("n, ok = %v, %v; want 0, false", global(s, "n"), global(s, "ok"))
	}
}

func TestRemoveWherePropagatesError(t *testing.T) {
	_, _, err := runScript(t, `input:remove_where(function(c) error("boom") end)`, "abc")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want one mentioning boom", err)
	}
}

func TestBuilderErrorsRaise(t *testing.T) {
	_, b, err := runScript(t, `input:remove(5, 1)`, "abc")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error = %v, want out of range", err)
	}
	if got := b.String(); got != "abc" {
		t.Errorf("content = %q", got)
	}

	_, _, err = runScript(t, `pcall(input.remove, input, 9, 1); input:append("!")`, "abc")
	if err != nil {
		t.Errorf("pcall did not contain the error: %v", err)
	}
}

func TestTextMethods(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		input string
		want  string
	}{
		{"normalize", `input:normalize(1, "abc")`, "aaabbbccc", "abc"},
		{"normalize any", `input:normalize(2)`, "xxxyyyy", "xxyy"},
		{"dedupe", `input:dedupe()`, "aabbcc", "abc"},
		{"trim", `input:trim()`, "  x  ", "x"},
		{"wrap", `input:wrap("[", "]")`, "x", "[x]"},
		{"unwrap", `assert(input:unwrap("(", ")"))`, "(x)", "x"},
		{"pad even", `input:pad_even(5, "*", true)`, "ab", "*ab**"},
		{"reverse all", `input:reverse()`, "abc", "cba"},
		{"reverse range", `input:reverse(2, 3)`, "abcde", "adcbe"},
		{"swap", `input:swap(1, 3)`, "abc", "cba"},
		{"replace", `input:replace(2, 1, "XYZ")`, "abc", "aXYZc"},
		{"replace all", `assert(input:replace_all("ab", "-") == 2)`, "abcab", "-c-"},
		{"replace where", `input:replace_where(function(c) return c == " " end, "_")`, "a b c", "a_b_c"},
		{"regex", `assert(input:replace_regex("[0-9]+", "#") == 2)`, "a1b22", "a#b#"},
		{"snake", `input:case("snake")`, "parseHTTPRequest", "parse_http_request"},
		{"upper turkish", `input:case("upper", "tr")`, "istanbul", "İSTANBUL"},
		{"sub", `local s = input:sub(2, 3); input:clear(); input:append(s)`, "abcde", "bcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, b, err := runScript(t, tt.code, tt.input)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	code := `
parts = input:split(",", {trim = true, remove_empty = true})
count = #parts
first = parts[1]
words = #input:split("")
`
	s, _, err := runScript(t, code, "a, b,,c")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := global(s, "count"); got != lua.LNumber(3) {
		t.Errorf("count = %v, want 3", got)
	}
	if got := global(s, "first").String(); got != "a" {
		t.Errorf("first = %q, want a", got)
	}
	if got := global(s, "words"); got != lua.LNumber(2) {
		t.Errorf("whitespace split = %v, want 2", got)
	}
}

func TestSandbox(t *testing.T) {
	_, _, err := runScript(t, `assert(dofile == nil and loadfile == nil and load == nil and io == nil and os == nil)`, "")
	if err != nil {
		t.Errorf("unsafe globals present: %v", err)
	}

	_, _, err = runScript(t, `require("os")`, "")
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("require(os) error = %v", err)
	}

	_, b, err := runScript(t, `local s = require("seq"); input:append(s.new("x"):string() .. string.upper("y"))`, "")
	if err != nil {
		t.Fatalf("require(seq): %v", err)
	}
	if got := b.String(); got != "xY" {
		t.Errorf("got %q", got)
	}
}

func TestPrintGoesToOutput(t *testing.T) {
	var out bytes.Buffer
	if _, _, err := runScript(t, `print("hi", 1, input)`, "abc", WithOutput(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "hi\t1\tabc\n" {
		t.Errorf("output = %q", got)
	}
}

func TestTimeout(t *testing.T) {
	_, _, err := runScript(t, `while true do end`, "", WithTimeout(50*time.Millisecond))
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("error = %v, want ErrExecutionTimeout", err)
	}
}

func TestCanceledContext(t *testing.T) {
	s := NewState()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, `x = 1`, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestInstructionLimit(t *testing.T) {
	tests := []string{
		`for i = 1, 100 do input:append("x") end`,
		`pcall(function() for i = 1, 100 do input:append("x") end end)`,
		`input:remove_where(function(c) return false end)`,
	}
	for _, code := range tests {
		_, _, err := runScript(t, code, strings.Repeat("a", 50), WithInstructionLimit(10))
		if !errors.Is(err, ErrInstructionLimit) {
			t.Errorf("%s: error = %v, want ErrInstructionLimit", code, err)
		}
	}

	// The budget resets per run.
	s := NewState(WithInstructionLimit(10))
	defer s.Close()
	for i := 0; i < 3; i++ {
		if err := s.Run(context.Background(), `local b = seq.new("x"); b:append("y")`, nil); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}

func TestScriptBuildersReleasedAfterRun(t *testing.T) {
	p := pool.NewBucketed[rune](0)
	s := NewState(WithBuilderOptions(builder.WithPool[rune](p)))
	defer s.Close()

	code := `
kept = seq.new("hello")
kept:append(string.rep("x", 100))
local tmp = seq.new("tmp")
tmp:reverse()
`
	if err := s.Run(context.Background(), code, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	st := p.Stats()
	if st.Rented == 0 {
		t.Fatal("expected seq.new to rent arrays")
	}
	if st.Rented != st.Returned+st.Discarded {
		t.Errorf("arrays outstanding after run: %+v", st)
	}

	// A builder kept in a global survives as an empty builder.
	if err := s.Run(context.Background(), `n = kept:len()`, nil); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if n := global(s, "n"); n != lua.LNumber(0) {
		t.Errorf("kept:len() = %v, want 0", n)
	}
	if st := p.Stats(); st.Rented != st.Returned+st.Discarded {
		t.Errorf("arrays outstanding after second run: %+v", st)
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rev.lua")
	if err := os.WriteFile(path, []byte(`input:reverse()`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewState()
	defer s.Close()
	b := builder.FromString("abc")
	defer b.Close()

	if err := s.RunFile(context.Background(), path, b); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := b.String(); got != "cba" {
		t.Errorf("got %q, want cba", got)
	}

	if err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "none.lua"), b); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Run(context.Background(), `x = 1`, nil); !errors.Is(err, ErrStateClosed) {
		t.Errorf("error = %v, want ErrStateClosed", err)
	}
}
