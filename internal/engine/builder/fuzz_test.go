package builder

import (
	"testing"
	"unicode/utf8"
)

// FuzzInsertRemove checks that removing what was inserted restores the input.
func FuzzInsertRemove(f *testing.F) {
	f.Add("ABCD", 2, "XY")
	f.Add("", 0, "x")
	f.Add("hello", 5, "")
	f.Add("日本語", 1, "🎉")

	f.Fuzz(func(t *testing.T, initial string, index int, insert string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(insert) {
			return
		}

		b := FromString(initial)
		defer b.Close()

		index = int(uint(index) % uint(b.Len()+1))

		if err := InsertString(b, index, insert); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if err := b.Remove(index, utf8.RuneCountInString(insert)); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if b.String() != initial {
			t.Errorf("round trip mismatch: %q != %q", b.String(), initial)
		}
	})
}

// FuzzReplace compares Replace against string slicing.
func FuzzReplace(f *testing.F) {
	f.Add("Hello, World", 7, 5, "Go")
	f.Add("abc", 0, 3, "")
	f.Add("", 0, 0, "new")

	f.Fuzz(func(t *testing.T, initial string, index, length int, with string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(with) {
			return
		}
		runes := []rune(initial)
		if index < 0 || length < 0 || index > len(runes) || length > len(runes)-index {
			b := FromString(initial)
			if err := b.Replace(index, length, []rune(with)); err == nil {
				t.Errorf("Replace(%d, %d) on %d runes should fail", index, length, len(runes))
			}
			return
		}

		b := FromString(initial)
		defer b.Close()
		if err := b.Replace(index, length, []rune(with)); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		want := string(runes[:index]) + with + string(runes[index+length:])
		if b.String() != want {
			t.Errorf("got %q, want %q", b.String(), want)
		}
	})
}
