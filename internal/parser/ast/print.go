package ast

import (
	"fmt"
	"strings"
)

// Print renders the tree in an indented, one-node-per-line form with
// each expression's derived type, for the CLI's --ast output and for
// tests.
func Print(p *Program) string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		printStmt(&b, stmt, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printStmt(b *strings.Builder, stmt Stmt, depth int) {
	indent(b, depth)
	switch s := stmt.(type) {
	case *Assign:
		fmt.Fprintf(b, "Assign %s %s: %s\n", s.Name, s.Op, s.TargetType())
		printExpr(b, s.Value, depth+1)
	case *FuncDef:
		sig := s.Name
		if s.Symbol != nil {
			sig = s.Symbol.Signature()
		}
		fmt.Fprintf(b, "FuncDef %s\n", sig)
		printExpr(b, s.Body, depth+1)
	case *CallStmt:
		b.WriteString("CallStmt\n")
		printExpr(b, s.Call, depth+1)
	case *Block:
		b.WriteString("Block\n")
		for _, inner := range s.Statements {
			printStmt(b, inner, depth+1)
		}
	default:
		fmt.Fprintf(b, "%T\n", s)
	}
}

func printExpr(b *strings.Builder, expr Expr, depth int) {
	indent(b, depth)
	switch e := expr.(type) {
	case *BinaryExpr:
		fmt.Fprintf(b, "Binary %s: %s\n", e.Operator.Type, e.Typ)
		printExpr(b, e.Left, depth+1)
		printExpr(b, e.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "Unary %s: %s\n", e.Operator.Type, e.Typ)
		printExpr(b, e.Operand, depth+1)
	case *IfExpr:
		fmt.Fprintf(b, "If: %s\n", e.Typ)
		printExpr(b, e.Cond, depth+1)
		printExpr(b, e.Then, depth+1)
		printExpr(b, e.Else, depth+1)
	case *Ident:
		fmt.Fprintf(b, "Ident %s: %s\n", e.Name, e.Type())
	case *CallExpr:
		fmt.Fprintf(b, "Call %s: %s\n", e.Name, e.Typ)
		for _, arg := range e.Args {
			printExpr(b, arg, depth+1)
		}
	case *Literal:
		fmt.Fprintf(b, "Literal %v: %s\n", e.Value, e.Typ)
	default:
		fmt.Fprintf(b, "%T\n", e)
	}
}
