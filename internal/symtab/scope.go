package symtab

import (
	"fmt"
	"strings"
)

// ScopeKind distinguishes the three kinds of lexical scope. The kind
// matters for declaration rules: functions always live in the global
// scope, parameters in a function scope, and everything else wherever
// it is declared.
type ScopeKind int

const (
	// ScopeGlobal is the top-level scope of a program.
	ScopeGlobal ScopeKind = iota

	// ScopeFunction holds a function's parameters.
	ScopeFunction

	// ScopeBlock is a brace-delimited block scope.
	ScopeBlock
)

// String returns a human-readable name for the scope kind.
func (sk ScopeKind) String() string {
	switch sk {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Scope is a region of code where names can be declared and resolved.
// Scopes form a tree via parent pointers; inner scopes see names from
// outer scopes. Each scope carries its own offset cursor, starting at
// zero, so storage offsets are scope-relative.
type Scope struct {
	// Kind is the kind of scope.
	Kind ScopeKind

	// Name labels the scope in dumps and error messages: "global",
	// "fun add", or "block".
	Name string

	// Parent is the enclosing scope, nil for the global scope.
	Parent *Scope

	// Children are the scopes nested inside this one, in the order
	// they were opened.
	Children []*Scope

	// Depth is the nesting depth, 0 for global.
	Depth int

	// symbols maps names to symbols for O(1) lookup; order preserves
	// declaration order for deterministic dumps.
	symbols map[string]*Symbol
	order   []*Symbol

	// nextOffset is the next free byte offset in this scope.
	nextOffset int
}

// NewScope creates a scope of the given kind under parent (nil for the
// global scope) and links it into the parent's children.
func NewScope(kind ScopeKind, name string, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}

	scope := &Scope{
		Kind:    kind,
		Name:    name,
		Parent:  parent,
		Depth:   depth,
		symbols: make(map[string]*Symbol),
	}
	if parent != nil {
		parent.Children = append(parent.Children, scope)
	}
	return scope
}

// Insert adds a symbol to this scope, assigning it the scope's next
// free offset and advancing the cursor by the symbol's storage width.
// It returns an error if the name is already declared in this scope.
// Shadowing an outer scope's name is not checked here and is legal.
func (s *Scope) Insert(symbol *Symbol) error {
	if existing, ok := s.symbols[symbol.Name]; ok {
		return fmt.Errorf("'%s' already declared in %s scope at %s",
			symbol.Name, s.Name, existing.Pos)
	}

	symbol.Scope = s
	symbol.Offset = s.nextOffset
	s.nextOffset += symbol.Type.Width()

	s.symbols[symbol.Name] = symbol
	s.order = append(s.order, symbol)
	return nil
}

// Lookup finds a symbol by name in this scope or any enclosing scope,
// innermost first. Found symbols are marked used. Returns nil when the
// name is not declared anywhere in the chain.
func (s *Scope) Lookup(name string) *Symbol {
	if symbol, ok := s.symbols[name]; ok {
		symbol.Used = true
		return symbol
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// LookupLocal finds a symbol in this scope only, without touching
// enclosing scopes or the used flag.
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Size returns the total bytes of storage the scope's symbols occupy.
func (s *Scope) Size() int {
	return s.nextOffset
}

// IsGlobal reports whether this is the global scope.
func (s *Scope) IsGlobal() bool {
	return s.Kind == ScopeGlobal
}

// UnusedSymbols returns the symbols declared here that were never
// looked up, in declaration order.
func (s *Scope) UnusedSymbols() []*Symbol {
	var unused []*Symbol
	for _, symbol := range s.order {
		if !symbol.Used {
			unused = append(unused, symbol)
		}
	}
	return unused
}

// String returns a one-line summary of the scope.
func (s *Scope) String() string {
	return fmt.Sprintf("%s (depth %d, %d symbols, %d bytes)",
		s.Name, s.Depth, len(s.order), s.nextOffset)
}

// DebugString renders the scope and everything nested inside it,
// indented by depth, with symbols in declaration order.
//
// Example output:
//
//	global (depth 0, 2 symbols, 8 bytes)
//	  variable x: int (offset 0)
//	  variable y: int (offset 4)
//	  fun add (depth 1, 2 symbols, 8 bytes)
//	    parameter a: int (offset 0)
//	    parameter b: int (offset 4)
func (s *Scope) DebugString() string {
	var b strings.Builder
	s.writeIndented(&b, 0)
	return b.String()
}

func (s *Scope) writeIndented(b *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	b.WriteString(prefix)
	b.WriteString(s.String())
	b.WriteByte('\n')

	for _, symbol := range s.order {
		b.WriteString(prefix)
		b.WriteString("  ")
		b.WriteString(symbol.String())
		b.WriteByte('\n')
	}
	for _, child := range s.Children {
		child.writeIndented(b, indent+1)
	}
}
