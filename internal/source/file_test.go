package source

import "testing"

func TestLineColFor(t *testing.T) {
	f := NewFile("test.js", []byte("one\ntwo\nthree"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{0, 0}},
		{2, LineCol{0, 2}},
		{3, LineCol{0, 3}}, // the newline itself belongs to line 0
		{4, LineCol{1, 0}},
		{7, LineCol{1, 3}},
		{8, LineCol{2, 0}},
		{13, LineCol{2, 5}},
		{99, LineCol{2, 5}}, // clamped
	}
	for _, tc := range cases {
		got := f.LineColFor(tc.off)
		if got != tc.want {
			t.Errorf("LineColFor(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestOffsetForRoundTrip(t *testing.T) {
	f := NewFile("test.js", []byte("s(\"bd sd\")\nnote(\"c e g\")\n"))
	for off := uint32(0); off <= f.Len(); off++ {
		lc := f.LineColFor(off)
		if back := f.OffsetFor(lc); back != off {
			t.Fatalf("round trip at %d: got %d (lc=%v)", off, back, lc)
		}
	}
}

func TestOffsetForClampsColumn(t *testing.T) {
	f := NewFile("test.js", []byte("ab\ncd"))
	if got := f.OffsetFor(LineCol{Line: 0, Col: 99}); got != 2 {
		t.Errorf("OffsetFor clamped = %d, want 2", got)
	}
	if got := f.OffsetFor(LineCol{Line: 9, Col: 0}); got != f.Len() {
		t.Errorf("OffsetFor past last line = %d, want %d", got, f.Len())
	}
}

func TestNormalizeCRLF(t *testing.T) {
	f := NewFile("test.js", []byte("a\r\nb\r\nc"))
	if string(f.Content) != "a\nb\nc" {
		t.Fatalf("content = %q", f.Content)
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("line index = %v", f.LineIdx)
	}
}

func TestLineText(t *testing.T) {
	f := NewFile("test.js", []byte("first\nsecond\n"))
	if got := f.LineText(0); got != "first" {
		t.Errorf("LineText(0) = %q", got)
	}
	if got := f.LineText(1); got != "second" {
		t.Errorf("LineText(1) = %q", got)
	}
	if got := f.LineText(2); got != "" {
		t.Errorf("LineText(2) = %q", got)
	}
}

func TestSpanClamp(t *testing.T) {
	s := NewSpan(2, 10).Clamp(0, 6)
	if s.Start != 2 || s.End != 6 {
		t.Fatalf("clamped span = %v", s)
	}
	s = NewSpan(8, 10).Clamp(0, 6)
	if s.Start != 6 || s.End != 6 {
		t.Fatalf("clamped span = %v", s)
	}
}
