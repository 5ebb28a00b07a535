package syntax

import (
	"unicode"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It walks a UTF-8 buffer one Unicode scalar at a time.
type source struct {
	// Input
	buf []byte // source buffer

	// Position tracking
	filename string // source file name
	line     uint32 // line of ch (1-based)
	col      uint32 // column of ch (1-based, in scalars)

	// Current state
	ch    rune // current character, -1 for EOF
	start int  // byte offset of ch in buf
	offs  int  // byte offset just after ch
}

// newSource creates a source positioned on the first character of buf.
// line and col give the position of buf[0], so a fragment of a larger file
// (a string interpolation) can be scanned with correct positions.
func newSource(filename string, buf []byte, line, col uint32) *source {
	s := &source{
		buf:      buf,
		filename: filename,
		line:     line,
		col:      col - 1, // incremented to col by the first nextch()
		ch:       -1,      // sentinel: before first char, no position update
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col) always refers to the position of s.ch after
// nextch() returns. A '\n' moves the following character to column 1 of the
// next line; every other character advances the column by one.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.start = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	// Invalid bytes come back as utf8.RuneError with width 1; the scanner
	// turns them into Invalid tokens and moves on.
	s.ch = r
	s.offs += width
}

// peek returns the character n scalars after ch without consuming anything.
func (s *source) peek(n int) rune {
	offs := s.offs
	for ; n > 1; n-- {
		if offs >= len(s.buf) {
			return -1
		}
		_, w := utf8.DecodeRune(s.buf[offs:])
		offs += w
	}
	if offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[offs:])
	return r
}

// prevByte returns the byte just before ch, or 0 at the start of the buffer.
func (s *source) prevByte(n int) byte {
	if s.start-n < 0 {
		return 0
	}
	return s.buf[s.start-n]
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// Character classification helpers

// isIdentStart reports whether r can begin an identifier.
func isIdentStart(r rune) bool {
	if 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' {
		return true
	}
	return r >= utf8.RuneSelf && r != utf8.RuneError && (unicode.IsLetter(r) || unicode.Is(unicode.So, r))
}

// isIdentContinue reports whether r can continue an identifier.
func isIdentContinue(r rune) bool {
	if isIdentStart(r) || isDigit(r) {
		return true
	}
	return r >= utf8.RuneSelf && r != utf8.RuneError && (unicode.IsDigit(r) || unicode.IsMark(r))
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// isOctalDigit reports whether r is an octal digit (0-7).
func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

// isBinaryDigit reports whether r is a binary digit (0 or 1).
func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

// lower returns the lowercase version of r if r is an ASCII letter.
// ('a' - 'A') is 0x20; or-ing it in folds upper case ASCII onto lower case.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isOperatorChar reports whether r can appear in a free-form operator.
// The period is excluded: it only appears in operators that start with one.
func isOperatorChar(r rune) bool {
	switch r {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	if r < utf8.RuneSelf || r == utf8.RuneError {
		return false
	}
	switch {
	case 0x00A1 <= r && r <= 0x00A7, r == 0x00A9, r == 0x00AB, r == 0x00AC, r == 0x00AE,
		r == 0x00B0, r == 0x00B1, r == 0x00B6, r == 0x00BB, r == 0x00BF, r == 0x00D7, r == 0x00F7,
		0x2016 <= r && r <= 0x2017, 0x2020 <= r && r <= 0x2027, 0x2030 <= r && r <= 0x203E,
		0x2041 <= r && r <= 0x2053, 0x2055 <= r && r <= 0x205E, 0x2190 <= r && r <= 0x23FF,
		0x2500 <= r && r <= 0x2775, 0x2794 <= r && r <= 0x2BFF, 0x2E00 <= r && r <= 0x2E7F,
		0x3001 <= r && r <= 0x3003, 0x3008 <= r && r <= 0x3020, r == 0x3030:
		return true
	}
	return false
}
