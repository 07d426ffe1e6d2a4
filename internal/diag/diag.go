// Package diag collects and renders positional diagnostics. The parser
// records every problem it finds here; drivers decide how to present
// them and whether the run counts as failed.
package diag

import (
	"fmt"
	"sort"

	"github.com/hassan/minilang/internal/lexer"
)

// Code classifies a diagnostic.
type Code int

const (
	// SyntaxError is any violation of the grammar, including lexical
	// errors. Syntax errors abort the enclosing statement.
	SyntaxError Code = iota

	// DuplicateDeclaration is a name declared twice in the same scope.
	DuplicateDeclaration

	// UndeclaredIdentifier is a use of a name with no visible
	// declaration.
	UndeclaredIdentifier

	// TypeMismatch covers every typing violation: bad operands,
	// narrowing assignments, non-bool conditions, wrong argument types.
	TypeMismatch

	// IncompatibleBranches means the two arms of a conditional
	// expression have no common type.
	IncompatibleBranches

	// ArityMismatch is a call with the wrong number of arguments.
	ArityMismatch

	// UnusedVariable flags a declaration that is never read. Reported
	// as a warning only.
	UnusedVariable
)

// String returns the diagnostic code's display name.
func (c Code) String() string {
	switch c {
	case SyntaxError:
		return "syntax error"
	case DuplicateDeclaration:
		return "duplicate declaration"
	case UndeclaredIdentifier:
		return "undeclared identifier"
	case TypeMismatch:
		return "type mismatch"
	case IncompatibleBranches:
		return "incompatible branches"
	case ArityMismatch:
		return "arity mismatch"
	case UnusedVariable:
		return "unused variable"
	default:
		return "unknown"
	}
}

// Severity ranks how serious a diagnostic is.
type Severity int

const (
	// SeverityError marks the program as invalid.
	SeverityError Severity = iota

	// SeverityWarning reports something suspicious but legal, like an
	// unused variable.
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single reported problem with its source position.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Pos      lexer.Position
	Message  string
}

// String formats the diagnostic as "file:line:col: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Bag accumulates diagnostics during a compilation run.
type Bag struct {
	diags    []Diagnostic
	errCount int
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
	if d.Severity == SeverityError {
		b.errCount++
	}
}

// Errorf records an error diagnostic with a formatted message.
func (b *Bag) Errorf(code Code, pos lexer.Position, format string, args ...any) {
	b.Add(Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning diagnostic with a formatted message.
func (b *Bag) Warnf(code Code, pos lexer.Position, format string, args ...any) {
	b.Add(Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
// Warnings alone leave the program valid.
func (b *Bag) HasErrors() bool {
	return b.errCount > 0
}

// Len returns the total number of diagnostics.
func (b *Bag) Len() int {
	return len(b.diags)
}

// All returns the diagnostics sorted by source position, with the
// recording order preserved among diagnostics at the same position.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Before(out[j].Pos)
	})
	return out
}

// Errors returns only the error-severity diagnostics, sorted by
// position.
func (b *Bag) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range b.All() {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}
