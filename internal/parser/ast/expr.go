package ast

import (
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/symtab"
	"github.com/hassan/minilang/internal/types"
)

// Expression nodes. Every node stores the type derived during parsing.

// BinaryExpr is a binary operation: left op right. One node type
// covers arithmetic, comparison, and the logical connectives; the
// operator token distinguishes them.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr

	// Typ is the result type: the operands' common type for
	// arithmetic, bool for comparisons and connectives.
	Typ types.Type
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) Type() types.Type    { return b.Typ }
func (b *BinaryExpr) exprNode()           {}

// UnaryExpr is a unary operation. The only unary operator is numeric
// negation.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
	Typ      types.Type
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) Type() types.Type    { return u.Typ }
func (u *UnaryExpr) exprNode()           {}

// IfExpr is a conditional expression: if cond then a else b. Both
// branches are always present; the result type is the branches'
// common type.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Typ  types.Type

	// IfPos is the position of the "if" keyword.
	IfPos lexer.Position
}

func (i *IfExpr) Pos() lexer.Position { return i.IfPos }
func (i *IfExpr) Type() types.Type    { return i.Typ }
func (i *IfExpr) exprNode()           {}

// Ident is a use of a declared name.
type Ident struct {
	Name string

	// Symbol is the resolved declaration, nil when the name was
	// undeclared.
	Symbol *symtab.Symbol

	NamePos lexer.Position
}

func (i *Ident) Pos() lexer.Position { return i.NamePos }
func (i *Ident) exprNode()           {}

// Type returns the declared type of the resolved symbol, or Invalid
// for an unresolved name.
func (i *Ident) Type() types.Type {
	if i.Symbol == nil {
		return types.Invalid
	}
	return i.Symbol.Type
}

// CallExpr is a function call: name(args). Its type is the callee's
// return type.
type CallExpr struct {
	Name string

	// Fn is the resolved function symbol, nil when the name did not
	// resolve to a function.
	Fn *symtab.Symbol

	Args []Expr
	Typ  types.Type

	NamePos lexer.Position
}

func (c *CallExpr) Pos() lexer.Position { return c.NamePos }
func (c *CallExpr) Type() types.Type    { return c.Typ }
func (c *CallExpr) exprNode()           {}

// Literal is a literal value: an integer, double, character, or
// boolean. Value holds the parsed Go value: int64, float64, rune, or
// bool.
type Literal struct {
	Token lexer.Token
	Value any
	Typ   types.Type
}

func (l *Literal) Pos() lexer.Position { return l.Token.Position }
func (l *Literal) Type() types.Type    { return l.Typ }
func (l *Literal) exprNode()           {}
