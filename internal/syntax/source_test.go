package syntax

import "testing"

func TestSourceBasic(t *testing.T) {
	src := newSource("test", []byte("abc"), 1, 1)

	if src.ch != 'a' {
		t.Errorf("initial ch = %q, want 'a'", src.ch)
	}
	if src.line != 1 || src.col != 1 {
		t.Errorf("initial pos = %d:%d, want 1:1", src.line, src.col)
	}

	src.nextch()
	if src.ch != 'b' || src.col != 2 {
		t.Errorf("got ch=%q col=%d, want 'b' col=2", src.ch, src.col)
	}

	src.nextch()
	if src.ch != 'c' || src.col != 3 {
		t.Errorf("got ch=%q col=%d, want 'c' col=3", src.ch, src.col)
	}

	src.nextch()
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
	if src.start != 3 {
		t.Errorf("start = %d at EOF, want 3", src.start)
	}
}

func TestSourceNewline(t *testing.T) {
	src := newSource("test", []byte("a\nb\r\nc"), 1, 1)

	want := []struct {
		ch        rune
		line, col uint32
	}{
		{'a', 1, 1},
		{'\n', 1, 2},
		{'b', 2, 1},
		{'\r', 2, 2},
		{'\n', 2, 3},
		{'c', 3, 1},
	}
	for i, w := range want {
		if src.ch != w.ch || src.line != w.line || src.col != w.col {
			t.Errorf("step %d: got ch=%q pos=%d:%d, want ch=%q pos=%d:%d",
				i, src.ch, src.line, src.col, w.ch, w.line, w.col)
		}
		src.nextch()
	}
}

func TestSourceUTF8(t *testing.T) {
	src := newSource("test", []byte("a中b"), 1, 1)

	src.nextch()
	if src.ch != '中' || src.col != 2 || src.start != 1 {
		t.Errorf("got ch=%q col=%d start=%d, want '中' col=2 start=1", src.ch, src.col, src.start)
	}

	// Columns count scalars, not bytes.
	src.nextch()
	if src.ch != 'b' || src.col != 3 || src.start != 4 {
		t.Errorf("got ch=%q col=%d start=%d, want 'b' col=3 start=4", src.ch, src.col, src.start)
	}
}

func TestSourceOffsetStart(t *testing.T) {
	src := newSource("f", []byte("xy"), 7, 12)
	if got := src.pos(); got != NewPos("f", 7, 12) {
		t.Errorf("pos = %v, want f:7:12", got)
	}
	if src.peek(1) != 'y' || src.peek(2) != -1 {
		t.Errorf("peek mismatch: %q %q", src.peek(1), src.peek(2))
	}
}

func TestSourceEmpty(t *testing.T) {
	src := newSource("test", nil, 1, 1)
	if src.ch != -1 {
		t.Errorf("ch = %d, want -1 (EOF)", src.ch)
	}
}

func TestCharClasses(t *testing.T) {
	for _, r := range "abcXYZ_é中" {
		if !isIdentStart(r) {
			t.Errorf("isIdentStart(%q) = false", r)
		}
	}
	for _, r := range "0123456789" {
		if isIdentStart(r) || !isIdentContinue(r) {
			t.Errorf("digit %q classification wrong", r)
		}
	}
	for _, r := range "/=-+!*%<>&|^~?" {
		if !isOperatorChar(r) {
			t.Errorf("isOperatorChar(%q) = false", r)
		}
	}
	for _, r := range ".,;:(){}[]@#`\\\"" {
		if isOperatorChar(r) {
			t.Errorf("isOperatorChar(%q) = true", r)
		}
	}
}
