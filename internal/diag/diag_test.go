package diag

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/hassan/minilang/internal/lexer"
)

func pos(line, col int) lexer.Position {
	return lexer.Position{Filename: "test.mini", Line: line, Column: col, Offset: (line-1)*80 + col}
}

func TestBag_Errorf(t *testing.T) {
	bag := NewBag()
	be.True(t, !bag.HasErrors())

	bag.Errorf(TypeMismatch, pos(2, 5), "cannot assign %s to %s", "double", "int")

	be.True(t, bag.HasErrors())
	be.Equal(t, bag.Len(), 1)

	d := bag.All()[0]
	be.Equal(t, d.Code, TypeMismatch)
	be.Equal(t, d.Severity, SeverityError)
	be.Equal(t, d.Message, "cannot assign double to int")
	be.Equal(t, d.String(), "test.mini:2:5: error: cannot assign double to int")
}

func TestBag_WarningsAreNotErrors(t *testing.T) {
	bag := NewBag()
	bag.Warnf(TypeMismatch, pos(1, 1), "variable 'x' declared but never used")

	be.True(t, !bag.HasErrors())
	be.Equal(t, bag.Len(), 1)
	be.Equal(t, len(bag.Errors()), 0)
}

func TestBag_AllSortsByPosition(t *testing.T) {
	bag := NewBag()
	bag.Errorf(SyntaxError, pos(3, 1), "third")
	bag.Errorf(SyntaxError, pos(1, 1), "first")
	bag.Errorf(SyntaxError, pos(2, 1), "second")

	got := bag.All()
	be.Equal(t, got[0].Message, "first")
	be.Equal(t, got[1].Message, "second")
	be.Equal(t, got[2].Message, "third")
}

func TestCode_String(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{SyntaxError, "syntax error"},
		{DuplicateDeclaration, "duplicate declaration"},
		{UndeclaredIdentifier, "undeclared identifier"},
		{TypeMismatch, "type mismatch"},
		{IncompatibleBranches, "incompatible branches"},
		{ArityMismatch, "arity mismatch"},
		{UnusedVariable, "unused variable"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.code.String(), tt.want)
	}
}

func TestRenderer_Plain(t *testing.T) {
	bag := NewBag()
	bag.Errorf(UndeclaredIdentifier, pos(4, 9), "undeclared identifier 'y'")
	bag.Warnf(TypeMismatch, pos(5, 1), "suspicious")

	out := NewRenderer(false).RenderAll(bag)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	be.Equal(t, len(lines), 2)
	be.Equal(t, lines[0], "test.mini:4:9: error: undeclared identifier 'y'")
	be.Equal(t, lines[1], "test.mini:5:1: warning: suspicious")
}

func TestRenderer_ColorKeepsMessage(t *testing.T) {
	bag := NewBag()
	bag.Errorf(SyntaxError, pos(1, 1), "expected ';'")

	out := NewRenderer(true).RenderAll(bag)
	be.True(t, strings.Contains(out, "expected ';'"))
}
