// Package lexer provides lexical analysis for minilang source text.
// It transforms raw source code into a stream of tokens that can be
// consumed by the parser.
package lexer

import "strconv"

// Position is a location in the source code. It is a small value type;
// the zero value reports as invalid.
type Position struct {
	// Filename is the name of the source file. Stored in every Position
	// so that error messages are self-contained.
	Filename string

	// Line is the 1-based line number, matching how editors display lines.
	Line int

	// Column is the 1-based column number, counted in runes.
	Column int

	// Offset is the 0-based byte offset from the start of the file.
	// Offset is the source of truth for ordering; line and column are
	// derived from it.
	Offset int
}

// String formats the position as "filename:line:column", the GCC/Clang
// convention that editors and CI systems turn into clickable links.
func (p Position) String() string {
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position has a real line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other in the source.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes after other in the source.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// Span is a source range from Start to End (inclusive). Diagnostics use
// spans to highlight the full extent of a token.
type Span struct {
	Start Position
	End   Position
}

// String formats single-line spans as "file:line:col1-col2" and
// multi-line spans with both endpoints spelled out.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return s.Start.String() + "-" + strconv.Itoa(s.End.Column)
	}
	return s.Start.String() + "-" + strconv.Itoa(s.End.Line) + ":" + strconv.Itoa(s.End.Column)
}

// IsValid reports whether both endpoints are valid and correctly ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// Contains reports whether pos falls within the span (inclusive).
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && !pos.After(s.End)
}

// Length returns the number of bytes covered by the span.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}
