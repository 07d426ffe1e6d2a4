package symtab

import (
	"errors"
	"strings"

	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/types"
)

// ErrGlobalScopeExit is returned when ExitScope is called on the
// global scope. The global scope is opened at construction and never
// closed.
var ErrGlobalScopeExit = errors.New("cannot exit the global scope")

// Table manages the scope tree with stack discipline: EnterScope
// pushes a child of the current scope, ExitScope pops back to its
// parent. Exited scopes stay in the tree so the whole program's
// symbols can be dumped after parsing.
type Table struct {
	global  *Scope
	current *Scope

	// all records every scope in creation order.
	all []*Scope
}

// NewTable creates a table whose current scope is a fresh global scope.
func NewTable() *Table {
	global := NewScope(ScopeGlobal, "global", nil)
	return &Table{
		global:  global,
		current: global,
		all:     []*Scope{global},
	}
}

// EnterScope opens a new scope of the given kind under the current
// scope and makes it current. The new scope's offset cursor starts at
// zero.
func (t *Table) EnterScope(kind ScopeKind, name string) *Scope {
	scope := NewScope(kind, name, t.current)
	t.current = scope
	t.all = append(t.all, scope)
	return scope
}

// ExitScope closes the current scope, restoring its parent. Exiting
// the global scope is an error.
func (t *Table) ExitScope() error {
	if t.current == t.global {
		return ErrGlobalScopeExit
	}
	t.current = t.current.Parent
	return nil
}

// Declare inserts a variable or parameter into the current scope,
// assigning its offset. Declaring a name twice in the same scope
// returns an error; shadowing an outer scope is legal.
func (t *Table) Declare(name string, typ types.Type, kind SymbolKind, pos lexer.Position) (*Symbol, error) {
	symbol := &Symbol{
		Name: name,
		Kind: kind,
		Type: typ,
		Pos:  pos,
	}
	if err := t.current.Insert(symbol); err != nil {
		return nil, err
	}
	return symbol, nil
}

// DeclareFunction inserts a function symbol into the global scope,
// regardless of which scope is current. Functions become visible only
// here, after their body has been parsed, so a function cannot call
// itself or any function defined after it.
func (t *Table) DeclareFunction(name string, paramNames []string, paramTypes []types.Type, returnType types.Type, pos lexer.Position) (*Symbol, error) {
	symbol := &Symbol{
		Name:       name,
		Kind:       SymbolFunction,
		Type:       returnType,
		Pos:        pos,
		ParamNames: paramNames,
		ParamTypes: paramTypes,
	}
	if err := t.global.Insert(symbol); err != nil {
		return nil, err
	}
	return symbol, nil
}

// Lookup resolves a name starting from the current scope and walking
// outward. Returns nil if the name is not declared.
func (t *Table) Lookup(name string) *Symbol {
	return t.current.Lookup(name)
}

// Current returns the scope declarations currently target.
func (t *Table) Current() *Scope {
	return t.current
}

// Global returns the global scope.
func (t *Table) Global() *Scope {
	return t.global
}

// Scopes returns every scope ever opened, in creation order,
// including scopes that have been exited.
func (t *Table) Scopes() []*Scope {
	return t.all
}

// Dump renders every scope with its symbols in declaration order, one
// scope per stanza, in creation order.
func (t *Table) Dump() string {
	var b strings.Builder
	for i, scope := range t.all {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(scope.String())
		b.WriteByte('\n')
		for _, symbol := range scope.Symbols() {
			b.WriteString("  ")
			b.WriteString(symbol.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
