package builder

import (
	"errors"
	"slices"
	"testing"
)

func TestViewSharesStorage(t *testing.T) {
	b := FromString("Hello, World")
	defer b.Close()

	v, err := b.Slice(7, 5)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "World" || v.Len() != 5 {
		t.Errorf("Slice(7, 5) = %q (len %d)", v.String(), v.Len())
	}

	_ = b.Set(7, 'w')
	if r, _ := v.At(0); r != 'w' {
		t.Error("view should observe in-place writes to the shared array")
	}
}

func TestViewValidity(t *testing.T) {
	b := heapBuilder(32)
	_ = b.Append(1, 2, 3)

	v := b.View()
	_ = b.Append(4)
	if !v.Valid() {
		t.Error("appending into slack should keep views valid")
	}

	_ = b.RemoveLeft(1)
	if v.Valid() {
		t.Error("removal should invalidate views")
	}

	v = b.View()
	_ = b.Append(seq(0, 100)...)
	if v.Valid() {
		t.Error("reallocation should invalidate views")
	}

	var zero View[int]
	if !zero.Valid() || zero.Len() != 0 {
		t.Error("zero view should be valid and empty")
	}
}

func TestViewSlice(t *testing.T) {
	b := FromString("abcdef")
	defer b.Close()

	v, _ := b.Slice(1, 4) // bcde
	w, err := v.Slice(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if w.String() != "cd" {
		t.Errorf("expected 'cd', got %q", w.String())
	}
	if _, err := v.Slice(3, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := b.Slice(5, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := v.At(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestViewCloneAndBuilder(t *testing.T) {
	b := FromSlice([]int{1, 2, 3, 4})
	defer b.Close()

	v, _ := b.Slice(1, 2)
	c := v.Clone()
	nb := v.Builder()
	defer nb.Close()

	_ = b.Set(1, 99)
	if !slices.Equal(c, []int{2, 3}) {
		t.Errorf("Clone should be independent, got %v", c)
	}
	if !nb.Equal([]int{2, 3}, nil) {
		t.Errorf("Builder should be independent, got %v", nb.ToSlice())
	}

	dst := make([]int, 1)
	if n := v.CopyTo(dst); n != 1 || dst[0] != 99 {
		t.Errorf("CopyTo = %d, %v", n, dst)
	}

	var got []int
	for _, x := range v.All() {
		got = append(got, x)
	}
	if !slices.Equal(got, []int{99, 3}) {
		t.Errorf("All = %v", got)
	}
}

func TestAsSpanAndMutableSlice(t *testing.T) {
	b := FromString("abc")
	defer b.Close()

	span := b.AsSpan()
	span[0] = 'A'
	if b.String() != "Abc" {
		t.Errorf("AsSpan writes should reach the builder, got %q", b.String())
	}

	span = append(span, 'X')
	if b.String() != "Abc" {
		t.Error("appending to a span must not extend the builder")
	}

	m, err := b.MutableSlice(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	m[1] = 'C'
	if b.String() != "AbC" {
		t.Errorf("expected 'AbC', got %q", b.String())
	}
	if _, err := b.MutableSlice(2, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	_ = span
}

func TestInsertView(t *testing.T) {
	src := FromString("XY")
	defer src.Close()
	b := FromString("ABCD")
	defer b.Close()

	if err := b.InsertView(2, src.View()); err != nil {
		t.Fatal(err)
	}
	if b.String() != "ABXYCD" {
		t.Errorf("expected 'ABXYCD', got %q", b.String())
	}

	self, _ := b.Slice(0, 2)
	if err := b.InsertView(b.Len(), self); err != nil {
		t.Fatal(err)
	}
	if b.String() != "ABXYCDAB" {
		t.Errorf("expected 'ABXYCDAB', got %q", b.String())
	}

	if err := b.PrependView(src.View()); err != nil {
		t.Fatal(err)
	}
	if !b.StartsWith([]rune("XYAB"), nil) {
		t.Errorf("expected prefix 'XYAB', got %q", b.String())
	}
}
