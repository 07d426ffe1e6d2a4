package ast

import (
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/symtab"
	"github.com/hassan/minilang/internal/types"
)

// Statement nodes. Variable declarations have no node: declaring only
// touches the symbol table.

// Assign is an assignment statement: target = expr; or a compound form
// like target += expr;. Compound forms keep their operator so later
// passes can see the implied arithmetic.
type Assign struct {
	// Name is the target identifier as written.
	Name string

	// Target is the resolved symbol, nil when the name was undeclared.
	Target *symtab.Symbol

	// Op is the assignment operator token (=, +=, -=, *=, /=).
	Op lexer.TokenType

	// Value is the right-hand side expression.
	Value Expr

	// NamePos is the position of the target identifier.
	NamePos lexer.Position
}

func (a *Assign) Pos() lexer.Position { return a.NamePos }
func (a *Assign) stmtNode()           {}

// TargetType returns the declared type of the assignment target, or
// Invalid when the target did not resolve.
func (a *Assign) TargetType() types.Type {
	if a.Target == nil {
		return types.Invalid
	}
	return a.Target.Type
}

// FuncDef is a function definition: fun name(params) = body;.
// The parameters live in the function's scope in the symbol table; the
// node keeps only the resolved function symbol and the body.
type FuncDef struct {
	// Name is the function name.
	Name string

	// Symbol is the function's global symbol, nil when declaring it
	// failed (duplicate name).
	Symbol *symtab.Symbol

	// Body is the function body expression. Its type is the
	// function's return type.
	Body Expr

	// FunPos is the position of the "fun" keyword.
	FunPos lexer.Position
}

func (f *FuncDef) Pos() lexer.Position { return f.FunPos }
func (f *FuncDef) stmtNode()           {}

// CallStmt is a function call in statement position: name(args);.
// The call's value is discarded.
type CallStmt struct {
	Call *CallExpr
}

func (c *CallStmt) Pos() lexer.Position { return c.Call.Pos() }
func (c *CallStmt) stmtNode()           {}

// Block is a brace-delimited statement list. Each block opened a
// fresh scope during parsing; Scope points at it so drivers can dump
// the block's symbols.
type Block struct {
	// Statements are the block's statements in source order.
	Statements []Stmt

	// Scope is the scope the block introduced.
	Scope *symtab.Scope

	// LBrace is the position of the opening brace.
	LBrace lexer.Position
}

func (b *Block) Pos() lexer.Position { return b.LBrace }
func (b *Block) stmtNode()           {}
