package lexer

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer performs lexical analysis, converting minilang source into a
// stream of tokens. It holds the entire source in memory, which keeps
// multi-character lookahead and position tracking simple.
//
// The lexer only tokenizes. Syntax is the parser's job and typing is
// handled during parsing, never here.
type Lexer struct {
	// source is the complete source text being lexed.
	source string

	// filename is the source file name, used in every token position.
	filename string

	// start is the byte offset of the token currently being scanned;
	// the lexeme is source[start:current].
	start int

	// current is the byte offset under examination.
	current int

	// line is the current 1-based line number.
	line int

	// lineStart is the byte offset where the current line began.
	// Columns are computed on demand as current - lineStart + 1.
	lineStart int

	// pending buffers one token for Peek. When pendingSet is true,
	// NextToken drains the buffer instead of scanning.
	pending    Token
	pendingErr error
	pendingSet bool
}

// New creates a Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// NextToken scans and returns the next token. At end of input it
// returns a TokenEOF token; after that, every call returns EOF again.
// A non-nil error describes a lexical problem, and the returned token
// is TokenInvalid positioned at the offending text.
func (l *Lexer) NextToken() (Token, error) {
	if l.pendingSet {
		l.pendingSet = false
		return l.pending, l.pendingErr
	}
	return l.scanToken()
}

// Peek returns the next token without consuming it. Repeated calls
// return the same token until NextToken is called.
func (l *Lexer) Peek() (Token, error) {
	if !l.pendingSet {
		l.pending, l.pendingErr = l.scanToken()
		l.pendingSet = true
	}
	return l.pending, l.pendingErr
}

func (l *Lexer) scanToken() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return l.makeToken(TokenInvalid), err
	}

	l.start = l.current
	if l.isAtEnd() {
		return l.makeToken(TokenEOF), nil
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}
	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen), nil
	case ')':
		return l.makeToken(TokenRightParen), nil
	case '{':
		return l.makeToken(TokenLeftBrace), nil
	case '}':
		return l.makeToken(TokenRightBrace), nil
	case ',':
		return l.makeToken(TokenComma), nil
	case ';':
		return l.makeToken(TokenSemicolon), nil

	case '+':
		if l.match('=') {
			return l.makeToken(TokenPlusEq), nil
		}
		return l.makeToken(TokenPlus), nil
	case '-':
		if l.match('=') {
			return l.makeToken(TokenMinusEq), nil
		}
		return l.makeToken(TokenMinus), nil
	case '*':
		if l.match('=') {
			return l.makeToken(TokenStarEq), nil
		}
		return l.makeToken(TokenStar), nil
	case '/':
		// Longest match: "//" is integer division, not a comment.
		if l.match('/') {
			return l.makeToken(TokenIntDiv), nil
		}
		if l.match('=') {
			return l.makeToken(TokenSlashEq), nil
		}
		return l.makeToken(TokenSlash), nil

	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual), nil
		}
		return l.makeToken(TokenAssign), nil
	case '>':
		return l.makeToken(TokenGreater), nil
	case '<':
		return l.makeToken(TokenLess), nil

	case '\'', '"':
		return l.scanCharLiteral(ch)

	case '.':
		// A double literal may start with a bare decimal point (".5").
		if isDigit(l.peekChar()) {
			return l.scanFraction(), nil
		}
		return l.errorToken("unexpected character '.'")
	}

	return l.errorToken(fmt.Sprintf("unexpected character %q", ch))
}

// skipWhitespaceAndComments consumes whitespace and ML-style comments
// "(* ... *)". Comments do not nest; the first "*)" closes the comment.
// A "(" not followed by "*" is left for scanToken to tokenize.
func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch l.peekChar() {
		case ' ', '\t', '\r':
			l.current++
		case '\n':
			l.current++
			l.line++
			l.lineStart = l.current
		case '(':
			if l.peekCharAt(1) != '*' {
				return nil
			}
			l.start = l.current
			l.current += 2
			if err := l.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) skipComment() error {
	for !l.isAtEnd() {
		ch := l.advance()
		if ch == '\n' {
			l.line++
			l.lineStart = l.current
			continue
		}
		if ch == '*' && l.peekChar() == ')' {
			l.current++
			return nil
		}
	}
	return errors.New("unterminated comment")
}

func (l *Lexer) scanIdentifier() Token {
	for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
		l.advance()
	}
	lexeme := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(lexeme))
}

// scanNumber scans an integer or double literal. A decimal point is
// part of the number only when a digit follows it, so "1." lexes as the
// integer 1 followed by a stray dot.
func (l *Lexer) scanNumber() Token {
	for isDigit(l.peekChar()) {
		l.advance()
	}
	if l.peekChar() == '.' && isDigit(l.peekCharAt(1)) {
		l.advance() // consume '.'
		return l.scanFraction()
	}
	return l.makeToken(TokenIntLit)
}

// scanFraction finishes a double literal after the decimal point.
func (l *Lexer) scanFraction() Token {
	for isDigit(l.peekChar()) {
		l.advance()
	}
	return l.makeToken(TokenDoubleLit)
}

// scanCharLiteral scans a character literal delimited by quote, which
// must contain exactly one character.
func (l *Lexer) scanCharLiteral(quote byte) (Token, error) {
	if l.isAtEnd() || l.peekChar() == quote {
		if l.peekChar() == quote {
			l.current++
		}
		return l.errorToken("empty character literal")
	}

	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	if ch == '\n' {
		return l.errorToken("unterminated character literal")
	}
	l.current += size

	if l.isAtEnd() || l.peekChar() != quote {
		// Skip ahead to the closing quote so one bad literal yields
		// one error instead of a cascade.
		for !l.isAtEnd() && l.peekChar() != quote && l.peekChar() != '\n' {
			l.current++
		}
		if !l.isAtEnd() && l.peekChar() == quote {
			l.current++
			return l.errorToken("character literal must contain exactly one character")
		}
		return l.errorToken("unterminated character literal")
	}
	l.current++

	tok := l.makeToken(TokenCharLit)
	// Strip the quotes so the lexeme is the character itself.
	tok.Lexeme = l.source[l.start+1 : l.current-1]
	return tok, nil
}

// advance consumes and returns the current byte.
func (l *Lexer) advance() byte {
	ch := l.source[l.current]
	l.current++
	return ch
}

// match consumes the current byte only if it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

// peekChar returns the current byte without consuming it, or 0 at EOF.
func (l *Lexer) peekChar() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekCharAt returns the byte n positions ahead, or 0 past EOF.
func (l *Lexer) peekCharAt(n int) byte {
	if l.current+n >= len(l.source) {
		return 0
	}
	return l.source[l.current+n]
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) makeToken(tokType TokenType) Token {
	return Token{
		Type:     tokType,
		Lexeme:   l.source[l.start:l.current],
		Position: l.startPosition(),
		Length:   l.current - l.start,
	}
}

// errorToken returns an Invalid token for the scanned text. The error
// carries only the message; the token's position says where.
func (l *Lexer) errorToken(msg string) (Token, error) {
	return l.makeToken(TokenInvalid), errors.New(msg)
}

// startPosition returns the position of the token being scanned.
func (l *Lexer) startPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}
}

func isLetter(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
