package syntax

import "fmt"

// Pos represents a position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (counted in Unicode scalars)
}

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// shift returns p moved n columns to the right on the same line.
func (p Pos) shift(n int) Pos {
	p.col += uint32(n)
	return p
}

// Before reports whether p comes strictly before q in the same file.
func (p Pos) Before(q Pos) bool {
	return p.line < q.line || p.line == q.line && p.col < q.col
}

// Range is a half-open span of source text: End is the position of the
// first character immediately after the spanned text.
type Range struct {
	Start Pos
	End   Pos
}

// NoRange is the sentinel range (0,0)-(0,0) of empty or synthesized nodes.
var NoRange = Range{}

// MakeRange returns the range from start to end.
func MakeRange(start, end Pos) Range {
	return Range{Start: start, End: end}
}

// IsValid reports whether r covers real source text.
func (r Range) IsValid() bool {
	return r.Start.IsValid()
}

// Filename returns the file the range belongs to.
func (r Range) Filename() string {
	return r.Start.filename
}

// Contains reports whether q lies inside r.
func (r Range) Contains(q Range) bool {
	return r.IsValid() && q.IsValid() &&
		!q.Start.Before(r.Start) && !r.End.Before(q.End)
}

// String renders the range as "file:l:c-l:c". An invalid range without a
// file renders as "<unknown>".
func (r Range) String() string {
	if !r.IsValid() && r.Filename() == "" {
		return "<unknown>"
	}
	span := fmt.Sprintf("%d:%d-%d:%d", r.Start.line, r.Start.col, r.End.line, r.End.col)
	if f := r.Filename(); f != "" {
		return f + ":" + span
	}
	return span
}
