package lexer

// TokenType identifies the kind of a token. An int-based enum keeps
// comparisons cheap and lets the parser switch on token kinds directly.
type TokenType int

// Token type enumeration, grouped by category. The range checks below
// (IsKeyword, IsLiteral, ...) depend on this grouping, so new tokens
// must be added inside the right block.
const (
	// Special tokens

	// TokenEOF marks the end of the input. Using a token instead of a
	// sentinel error keeps the parser loop free of special cases, and the
	// token carries a position for "unexpected end of file" messages.
	TokenEOF TokenType = iota

	// TokenInvalid represents a lexical error. The offending text is kept
	// in Token.Lexeme so the parser can report it and keep going.
	TokenInvalid

	// Literals

	// TokenIntLit is an integer literal: a run of decimal digits.
	TokenIntLit

	// TokenDoubleLit is a floating-point literal: digits '.' digits, or
	// '.' digits with no integer part.
	TokenDoubleLit

	// TokenCharLit is a character literal holding exactly one character.
	// Token.Lexeme stores the character without its quotes.
	TokenCharLit

	// TokenTrue and TokenFalse are the boolean literals. They get their
	// own token types so the parser never compares identifier text.
	TokenTrue
	TokenFalse

	// TokenIdentifier is a variable or function name. The name itself is
	// stored in Token.Lexeme.
	TokenIdentifier

	// Keywords - type names

	TokenInt
	TokenLong
	TokenDouble
	TokenBool
	TokenChar

	// Keywords - declarations and control flow

	TokenFun
	TokenIf
	TokenThen
	TokenElse

	// Keywords - boolean connectives (ML-style spellings)

	TokenOrElse
	TokenAndAlso

	// Operators - arithmetic

	TokenPlus     // +
	TokenMinus    // -
	TokenStar     // *
	TokenSlash    // /
	TokenIntDiv   // //

	// Operators - comparison

	TokenEqual   // ==
	TokenGreater // >
	TokenLess    // <

	// Operators - assignment

	TokenAssign   // =
	TokenPlusEq   // +=
	TokenMinusEq  // -=
	TokenStarEq   // *=
	TokenSlashEq  // /=

	// Delimiters

	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenComma      // ,
	TokenSemicolon  // ;
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenInvalid:
		return "INVALID"
	case TokenIntLit:
		return "INTLIT"
	case TokenDoubleLit:
		return "DOUBLELIT"
	case TokenCharLit:
		return "CHARLIT"
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenInt:
		return "int"
	case TokenLong:
		return "long"
	case TokenDouble:
		return "double"
	case TokenBool:
		return "bool"
	case TokenChar:
		return "char"
	case TokenFun:
		return "fun"
	case TokenIf:
		return "if"
	case TokenThen:
		return "then"
	case TokenElse:
		return "else"
	case TokenOrElse:
		return "orelse"
	case TokenAndAlso:
		return "andalso"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenIntDiv:
		return "//"
	case TokenEqual:
		return "=="
	case TokenGreater:
		return ">"
	case TokenLess:
		return "<"
	case TokenAssign:
		return "="
	case TokenPlusEq:
		return "+="
	case TokenMinusEq:
		return "-="
	case TokenStarEq:
		return "*="
	case TokenSlashEq:
		return "/="
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexical unit produced by the lexer.
type Token struct {
	// Type identifies what kind of token this is.
	Type TokenType

	// Lexeme is the actual text from the source. For literals and
	// identifiers this carries the value; for operators and keywords it
	// duplicates what Type already says but keeps messages exact.
	Lexeme string

	// Position is where the token starts in the source.
	Position Position

	// Length is the token's length in bytes.
	Length int
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	end := t.Position
	end.Column += t.Length
	end.Offset += t.Length
	return Span{Start: t.Position, End: end}
}

// String returns a compact representation for debugging and token dumps.
func (t Token) String() string {
	switch t.Type {
	case TokenIdentifier, TokenIntLit, TokenDoubleLit, TokenCharLit, TokenInvalid:
		return t.Type.String() + "(" + t.Lexeme + ")"
	default:
		return t.Type.String()
	}
}

// keywords maps reserved words to their token types. Identifiers are
// looked up here after scanning; anything absent stays an identifier.
var keywords = map[string]TokenType{
	"int":     TokenInt,
	"long":    TokenLong,
	"double":  TokenDouble,
	"bool":    TokenBool,
	"char":    TokenChar,
	"fun":     TokenFun,
	"if":      TokenIf,
	"then":    TokenThen,
	"else":    TokenElse,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"orelse":  TokenOrElse,
	"andalso": TokenAndAlso,
}

// LookupKeyword returns the keyword token type for ident, or
// TokenIdentifier if ident is not a reserved word.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether the token type is a reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= TokenInt && t <= TokenAndAlso
}

// IsTypeKeyword reports whether the token type names one of the five
// primitive types. These are exactly the tokens that can begin a
// variable declaration.
func (t TokenType) IsTypeKeyword() bool {
	return t >= TokenInt && t <= TokenChar
}

// IsLiteral reports whether the token type is a literal value.
func (t TokenType) IsLiteral() bool {
	return t >= TokenIntLit && t <= TokenFalse
}

// IsAssignOp reports whether the token type is an assignment operator,
// plain or compound.
func (t TokenType) IsAssignOp() bool {
	return t >= TokenAssign && t <= TokenSlashEq
}

// IsCompoundAssign reports whether the token type is one of the
// compound assignment operators (+=, -=, *=, /=).
func (t TokenType) IsCompoundAssign() bool {
	return t >= TokenPlusEq && t <= TokenSlashEq
}

// IsComparison reports whether the token type is a comparison operator.
func (t TokenType) IsComparison() bool {
	return t == TokenEqual || t == TokenGreater || t == TokenLess
}
