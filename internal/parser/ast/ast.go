// Package ast defines the abstract syntax tree produced by the parser.
//
// The tree is minimal and fully typed: every expression node carries
// the type the parser derived for it, and declarations produce no
// nodes at all since their entire effect lives in the symbol table.
//
// The node set is closed. Consumers use type switches over the Stmt
// and Expr interfaces; the marker methods keep foreign types out, so a
// switch over the node kinds listed here is exhaustive.
package ast

import (
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/types"
)

// Node is the common interface of all AST nodes. Every node reports
// its starting position for diagnostics.
type Node interface {
	Pos() lexer.Position
}

// Stmt is a statement node: it performs an action and has no value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node: it produces a value of a known type.
type Expr interface {
	Node
	// Type returns the type the parser derived for this expression.
	// Expressions involved in a reported error have type Invalid.
	Type() types.Type
	exprNode()
}

// Program is the root of the tree: the program's statements in source
// order. Declarations contribute no entries.
type Program struct {
	Statements []Stmt
}

// Pos returns the position of the first statement, or the zero
// position for an empty program.
func (p *Program) Pos() lexer.Position {
	if len(p.Statements) == 0 {
		return lexer.Position{}
	}
	return p.Statements[0].Pos()
}
