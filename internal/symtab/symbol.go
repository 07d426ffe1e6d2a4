// Package symtab implements symbol table management for name
// resolution and scoping. The parser drives it directly while parsing:
// declarations insert symbols into the current scope, identifier uses
// resolve through the scope chain, and each symbol receives a
// scope-relative byte offset as it is declared.
//
// Scoping is lexical. Inner scopes may shadow outer names; declaring
// the same name twice in one scope is an error the caller reports.
package symtab

import (
	"fmt"

	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/types"
)

// SymbolKind distinguishes what a name refers to.
type SymbolKind int

const (
	// SymbolVariable is a declared variable.
	SymbolVariable SymbolKind = iota

	// SymbolParameter is a function parameter. Parameters behave like
	// variables but are listed separately in dumps and messages.
	SymbolParameter

	// SymbolFunction is a function. Function symbols always live in
	// the global scope and carry a signature.
	SymbolFunction
)

// String returns a human-readable name for the symbol kind.
func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol is a named entity: a variable, parameter, or function.
type Symbol struct {
	// Name is the identifier as written in source.
	Name string

	// Kind says what the name refers to.
	Kind SymbolKind

	// Type is the symbol's type. For functions this is the return
	// type, which is also what a call expression evaluates to.
	Type types.Type

	// Offset is the symbol's byte offset within its scope. Offsets
	// start at zero per scope and advance by Type.Width() per
	// declaration.
	Offset int

	// Pos is where the symbol was declared.
	Pos lexer.Position

	// Scope is the scope the symbol was declared in. Set by Insert.
	Scope *Scope

	// Used records whether the symbol was ever resolved by a lookup.
	Used bool

	// ParamNames and ParamTypes are the function signature, in
	// declaration order. Nil for non-functions.
	ParamNames []string
	ParamTypes []types.Type
}

// Arity returns the number of parameters a function symbol takes.
func (s *Symbol) Arity() int {
	return len(s.ParamTypes)
}

// IsGlobal reports whether the symbol lives in the global scope.
func (s *Symbol) IsGlobal() bool {
	return s.Scope != nil && s.Scope.IsGlobal()
}

// Signature renders a function symbol's signature, e.g.
// "add(int, int) -> int". For non-functions it returns name: type.
func (s *Symbol) Signature() string {
	if s.Kind != SymbolFunction {
		return s.Name + ": " + s.Type.String()
	}
	sig := s.Name + "("
	for i, p := range s.ParamTypes {
		if i > 0 {
			sig += ", "
		}
		sig += p.String()
	}
	return sig + ") -> " + s.Type.String()
}

// String returns a one-line description used in scope dumps.
func (s *Symbol) String() string {
	if s.Kind == SymbolFunction {
		return fmt.Sprintf("function %s (offset %d)", s.Signature(), s.Offset)
	}
	return fmt.Sprintf("%s %s: %s (offset %d)", s.Kind, s.Name, s.Type, s.Offset)
}
