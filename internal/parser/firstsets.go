package parser

import (
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/types"
)

// typeFor maps a type keyword token to its type. Callers check
// IsTypeKeyword first; anything else is Invalid.
func typeFor(t lexer.TokenType) types.Type {
	switch t {
	case lexer.TokenInt:
		return types.Int
	case lexer.TokenLong:
		return types.Long
	case lexer.TokenDouble:
		return types.Double
	case lexer.TokenBool:
		return types.Bool
	case lexer.TokenChar:
		return types.Char
	default:
		return types.Invalid
	}
}

// canStartExpression reports whether t is in the FIRST set of the
// expression production. An argument list is empty exactly when the
// token after '(' is outside this set.
func canStartExpression(t lexer.TokenType) bool {
	return t.IsLiteral() ||
		t == lexer.TokenIdentifier ||
		t == lexer.TokenIf ||
		t == lexer.TokenMinus ||
		t == lexer.TokenLeftParen
}
