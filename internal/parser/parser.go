// Package parser implements a predictive recursive descent parser
// that resolves names and derives types in the same pass. Each grammar
// production maps to one method; a single token of lookahead decides
// every production, so there is no backtracking.
//
// The parser drives the symbol table directly: declarations insert
// symbols as they are parsed, identifier uses resolve against the
// current scope chain, and every expression node comes back annotated
// with its type.
//
// Error handling follows two tracks. Syntax errors abort the current
// statement via panic/recover and skip to a synchronization point.
// Semantic errors (type and name problems) are recorded and parsing
// continues, with the offending expression typed Invalid so one
// mistake does not fan out into a cascade of follow-on reports.
package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/hassan/minilang/internal/diag"
	"github.com/hassan/minilang/internal/lexer"
	"github.com/hassan/minilang/internal/parser/ast"
	"github.com/hassan/minilang/internal/symtab"
	"github.com/hassan/minilang/internal/types"
)

// Parser converts a token stream into a typed AST and a populated
// symbol table.
type Parser struct {
	lexer *lexer.Lexer
	table *symtab.Table
	bag   *diag.Bag

	// current is the token under examination, next the one after it.
	// Two tokens of lookahead distinguish a call "f(" from an
	// assignment "f ="; everything else needs only current.
	current  lexer.Token
	next     lexer.Token
	previous lexer.Token

	// panicMode suppresses follow-on syntax errors until the next
	// synchronization point.
	panicMode bool
}

// New creates a parser reading from l and reporting into bag.
func New(l *lexer.Lexer, bag *diag.Bag) *Parser {
	p := &Parser{
		lexer: l,
		table: symtab.NewTable(),
		bag:   bag,
	}
	// Prime the two-token lookahead window.
	p.advance()
	p.advance()
	return p
}

// Table returns the symbol table built during parsing.
func (p *Parser) Table() *symtab.Table {
	return p.table
}

// ParseProgram parses a whole program. It always returns a tree; when
// errors were found the tree covers the statements that survived and
// the diagnostic bag says what went wrong.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	p.warnUnused()
	return program
}

// parseStatement parses one statement, recovering from syntax errors
// at the statement boundary. Declarations return nil: their whole
// effect is in the symbol table.
func (p *Parser) parseStatement() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			stmt = nil
		}
	}()
	return p.statement()
}

// statement dispatches on the FIRST set of each statement form.
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.current.Type.IsTypeKeyword():
		p.parseDeclaration()
		return nil
	case p.check(lexer.TokenFun):
		return p.parseFuncDef()
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlock()
	case p.check(lexer.TokenIdentifier):
		if p.next.Type == lexer.TokenLeftParen {
			return p.parseCallStatement()
		}
		return p.parseAssignment()
	default:
		p.syntaxError(fmt.Sprintf("expected statement, got %s", describe(p.current)))
		p.advance() // guarantee progress before bailing out
		panic("invalid statement")
	}
}

// parseDeclaration parses "type name (, name)* ;", inserting each name
// into the current scope. No AST node is produced.
func (p *Parser) parseDeclaration() {
	typ := typeFor(p.current.Type)
	p.advance()

	for {
		nameTok := p.current
		p.consume(lexer.TokenIdentifier, "expected variable name")
		if _, err := p.table.Declare(nameTok.Lexeme, typ, symtab.SymbolVariable, nameTok.Position); err != nil {
			p.bag.Errorf(diag.DuplicateDeclaration, nameTok.Position, "%s", err)
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after declaration")
}

// parseFuncDef parses "fun name(params) = body ;". Parameters live in
// a fresh function scope; the function symbol itself lands in the
// global scope only after the body has parsed, so a function cannot
// call itself or anything defined later.
func (p *Parser) parseFuncDef() ast.Stmt {
	funPos := p.current.Position
	p.advance() // 'fun'

	nameTok := p.current
	p.consume(lexer.TokenIdentifier, "expected function name after 'fun'")
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")

	p.table.EnterScope(symtab.ScopeFunction, "fun "+nameTok.Lexeme)
	defer p.table.ExitScope()

	var paramNames []string
	var paramTypes []types.Type
	if p.current.Type.IsTypeKeyword() {
		for {
			if !p.current.Type.IsTypeKeyword() {
				p.syntaxError(fmt.Sprintf("expected parameter type, got %s", describe(p.current)))
				panic("invalid parameter list")
			}
			typ := typeFor(p.current.Type)
			p.advance()

			paramTok := p.current
			p.consume(lexer.TokenIdentifier, "expected parameter name")
			if _, err := p.table.Declare(paramTok.Lexeme, typ, symtab.SymbolParameter, paramTok.Position); err != nil {
				p.bag.Errorf(diag.DuplicateDeclaration, paramTok.Position, "%s", err)
			}
			paramNames = append(paramNames, paramTok.Lexeme)
			paramTypes = append(paramTypes, typ)

			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")
	p.consume(lexer.TokenAssign, "expected '=' before function body")

	body := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after function body")

	fn, err := p.table.DeclareFunction(nameTok.Lexeme, paramNames, paramTypes, body.Type(), nameTok.Position)
	if err != nil {
		p.bag.Errorf(diag.DuplicateDeclaration, nameTok.Position, "%s", err)
		fn = nil
	}

	return &ast.FuncDef{
		Name:   nameTok.Lexeme,
		Symbol: fn,
		Body:   body,
		FunPos: funPos,
	}
}

// parseBlock parses "{ statement* }" in a fresh scope. The deferred
// exit keeps the scope stack balanced even when a statement inside
// panics out.
func (p *Parser) parseBlock() ast.Stmt {
	lbrace := p.current
	p.consume(lexer.TokenLeftBrace, "expected '{'")

	scope := p.table.EnterScope(symtab.ScopeBlock, "block")
	defer p.table.ExitScope()

	var stmts []ast.Stmt
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close block")

	return &ast.Block{
		Statements: stmts,
		Scope:      scope,
		LBrace:     lbrace.Position,
	}
}

// parseCallStatement parses "name(args) ;" in statement position.
func (p *Parser) parseCallStatement() ast.Stmt {
	call := p.parseCall()
	p.consume(lexer.TokenSemicolon, "expected ';' after call")
	return &ast.CallStmt{Call: call}
}

// parseAssignment parses "name op expression ;" where op is = or a
// compound assignment. Compound forms type-check as the sugared
// "name = name op expression".
func (p *Parser) parseAssignment() ast.Stmt {
	nameTok := p.current
	p.consume(lexer.TokenIdentifier, "expected identifier")

	target := p.table.Lookup(nameTok.Lexeme)
	if target == nil {
		p.bag.Errorf(diag.UndeclaredIdentifier, nameTok.Position,
			"undeclared identifier '%s'", nameTok.Lexeme)
	} else if target.Kind == symtab.SymbolFunction {
		p.bag.Errorf(diag.TypeMismatch, nameTok.Position,
			"cannot assign to function '%s'", nameTok.Lexeme)
		target = nil
	}

	opTok := p.current
	if !opTok.Type.IsAssignOp() {
		p.syntaxError(fmt.Sprintf("expected assignment operator, got %s", describe(opTok)))
		panic("invalid assignment")
	}
	p.advance()

	value := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after assignment")

	p.checkAssignment(target, opTok, value)

	return &ast.Assign{
		Name:    nameTok.Lexeme,
		Target:  target,
		Op:      opTok.Type,
		Value:   value,
		NamePos: nameTok.Position,
	}
}

// checkAssignment verifies that value may be stored in target. The
// check is skipped when the target did not resolve or the value
// already failed, so broken operands report once.
func (p *Parser) checkAssignment(target *symtab.Symbol, op lexer.Token, value ast.Expr) {
	if target == nil || !value.Type().IsValid() {
		return
	}

	rhs := value.Type()
	if op.Type.IsCompoundAssign() {
		common, ok := types.Common(target.Type, rhs)
		if !ok {
			p.bag.Errorf(diag.TypeMismatch, op.Position,
				"invalid operands to '%s': %s and %s", op.Type, target.Type, rhs)
			return
		}
		rhs = common
	}
	if !types.Assignable(target.Type, rhs) {
		p.bag.Errorf(diag.TypeMismatch, op.Position,
			"cannot assign %s to '%s' of type %s", rhs, target.Name, target.Type)
	}
}

// Expression grammar, one method per precedence layer:
//
//	Expression -> IfExpr | BoolExpr
//	BoolExpr   -> BoolTerm   ('orelse' BoolTerm)*
//	BoolTerm   -> Comparison ('andalso' Comparison)*
//	Comparison -> Arith      (('==' | '>' | '<') Arith)?
//	Arith      -> Term       (('+' | '-') Term)*
//	Term       -> Value      (('*' | '/' | '//') Value)*
//	Value      -> '-' Factor | Factor
//	Factor     -> '(' Expression ')' | Call | Identifier | Literal
//
// Comparison is deliberately non-associative: "a < b < c" is a syntax
// error, not a chained comparison.

func (p *Parser) parseExpression() ast.Expr {
	if p.check(lexer.TokenIf) {
		return p.parseIfExpr()
	}
	return p.parseBoolExpr()
}

// parseIfExpr parses "if cond then a else b". Both branches are
// mandatory; the result type is the branches' common type.
func (p *Parser) parseIfExpr() ast.Expr {
	ifTok := p.current
	p.advance() // 'if'

	cond := p.parseBoolExpr()
	if cond.Type().IsValid() && cond.Type() != types.Bool {
		p.bag.Errorf(diag.TypeMismatch, ifTok.Position,
			"condition must be bool, got %s", cond.Type())
	}

	p.consume(lexer.TokenThen, "expected 'then' after condition")
	thenExpr := p.parseExpression()
	p.consume(lexer.TokenElse, "expected 'else' after then-branch")
	elseExpr := p.parseExpression()

	typ := types.Invalid
	if thenExpr.Type().IsValid() && elseExpr.Type().IsValid() {
		var ok bool
		typ, ok = types.Common(thenExpr.Type(), elseExpr.Type())
		if !ok {
			p.bag.Errorf(diag.IncompatibleBranches, ifTok.Position,
				"branches have incompatible types %s and %s",
				thenExpr.Type(), elseExpr.Type())
			typ = types.Invalid
		}
	}

	return &ast.IfExpr{
		Cond:  cond,
		Then:  thenExpr,
		Else:  elseExpr,
		Typ:   typ,
		IfPos: ifTok.Position,
	}
}

func (p *Parser) parseBoolExpr() ast.Expr {
	left := p.parseBoolTerm()
	for p.check(lexer.TokenOrElse) {
		opTok := p.current
		p.advance()
		right := p.parseBoolTerm()
		left = p.logicalNode(left, opTok, right)
	}
	return left
}

func (p *Parser) parseBoolTerm() ast.Expr {
	left := p.parseComparison()
	for p.check(lexer.TokenAndAlso) {
		opTok := p.current
		p.advance()
		right := p.parseComparison()
		left = p.logicalNode(left, opTok, right)
	}
	return left
}

func (p *Parser) logicalNode(left ast.Expr, op lexer.Token, right ast.Expr) ast.Expr {
	typ := types.Invalid
	if left.Type().IsValid() && right.Type().IsValid() {
		if types.BoolOperands(left.Type(), right.Type()) {
			typ = types.Bool
		} else {
			p.bag.Errorf(diag.TypeMismatch, op.Position,
				"'%s' requires bool operands, got %s and %s",
				op.Type, left.Type(), right.Type())
		}
	}
	return &ast.BinaryExpr{Left: left, Operator: op, Right: right, Typ: typ}
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseArith()
	if !p.current.Type.IsComparison() {
		return left
	}

	opTok := p.current
	p.advance()
	right := p.parseArith()

	typ := types.Invalid
	if left.Type().IsValid() && right.Type().IsValid() {
		if types.Comparable(left.Type(), right.Type()) {
			typ = types.Bool
		} else {
			p.bag.Errorf(diag.TypeMismatch, opTok.Position,
				"cannot compare %s and %s", left.Type(), right.Type())
		}
	}
	return &ast.BinaryExpr{Left: left, Operator: opTok, Right: right, Typ: typ}
}

func (p *Parser) parseArith() ast.Expr {
	left := p.parseTerm()
	for p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) {
		opTok := p.current
		p.advance()
		right := p.parseTerm()
		left = p.arithNode(left, opTok, right)
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseValue()
	for p.check(lexer.TokenStar) || p.check(lexer.TokenSlash) || p.check(lexer.TokenIntDiv) {
		opTok := p.current
		p.advance()
		right := p.parseValue()
		left = p.arithNode(left, opTok, right)
	}
	return left
}

// arithNode types a binary arithmetic node. The result is the
// operands' common type; floor division additionally rejects double
// operands.
func (p *Parser) arithNode(left ast.Expr, op lexer.Token, right ast.Expr) ast.Expr {
	typ := types.Invalid
	if left.Type().IsValid() && right.Type().IsValid() {
		switch {
		case op.Type == lexer.TokenIntDiv && !types.FloorDivOperands(left.Type(), right.Type()):
			p.bag.Errorf(diag.TypeMismatch, op.Position,
				"'//' requires non-double operands, got %s and %s",
				left.Type(), right.Type())
		default:
			common, ok := types.Common(left.Type(), right.Type())
			if !ok {
				p.bag.Errorf(diag.TypeMismatch, op.Position,
					"invalid operands to '%s': %s and %s",
					op.Type, left.Type(), right.Type())
			} else {
				typ = common
			}
		}
	}
	return &ast.BinaryExpr{Left: left, Operator: op, Right: right, Typ: typ}
}

func (p *Parser) parseValue() ast.Expr {
	if !p.check(lexer.TokenMinus) {
		return p.parseFactor()
	}

	opTok := p.current
	p.advance()
	operand := p.parseFactor()

	typ := types.Invalid
	if operand.Type().IsValid() {
		if operand.Type().IsNumeric() {
			typ = operand.Type()
		} else {
			p.bag.Errorf(diag.TypeMismatch, opTok.Position,
				"unary '-' requires a numeric operand, got %s", operand.Type())
		}
	}
	return &ast.UnaryExpr{Operator: opTok, Operand: operand, Typ: typ}
}

func (p *Parser) parseFactor() ast.Expr {
	switch p.current.Type {
	case lexer.TokenLeftParen:
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return expr

	case lexer.TokenIdentifier:
		if p.next.Type == lexer.TokenLeftParen {
			return p.parseCall()
		}
		nameTok := p.current
		p.advance()
		sym := p.table.Lookup(nameTok.Lexeme)
		if sym == nil {
			p.bag.Errorf(diag.UndeclaredIdentifier, nameTok.Position,
				"undeclared identifier '%s'", nameTok.Lexeme)
		}
		return &ast.Ident{Name: nameTok.Lexeme, Symbol: sym, NamePos: nameTok.Position}

	case lexer.TokenIntLit:
		return p.parseIntLiteral()
	case lexer.TokenDoubleLit:
		return p.parseDoubleLiteral()
	case lexer.TokenCharLit:
		tok := p.current
		p.advance()
		ch, _ := utf8.DecodeRuneInString(tok.Lexeme)
		return &ast.Literal{Token: tok, Value: ch, Typ: types.Char}
	case lexer.TokenTrue, lexer.TokenFalse:
		tok := p.current
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Type == lexer.TokenTrue, Typ: types.Bool}

	default:
		p.syntaxError(fmt.Sprintf("expected expression, got %s", describe(p.current)))
		panic("invalid expression")
	}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	tok := p.current
	p.advance()
	value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.syntaxError(fmt.Sprintf("integer literal %s out of range", tok.Lexeme))
		panic("invalid integer literal")
	}
	return &ast.Literal{Token: tok, Value: value, Typ: types.Int}
}

func (p *Parser) parseDoubleLiteral() ast.Expr {
	tok := p.current
	p.advance()
	value, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.syntaxError(fmt.Sprintf("malformed double literal %s", tok.Lexeme))
		panic("invalid double literal")
	}
	return &ast.Literal{Token: tok, Value: value, Typ: types.Double}
}

// parseCall parses "name(args)" and checks the call against the
// callee's signature: kind, arity, then argument-by-argument
// assignability with widening.
func (p *Parser) parseCall() *ast.CallExpr {
	nameTok := p.current
	p.consume(lexer.TokenIdentifier, "expected function name")
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")

	var args []ast.Expr
	if canStartExpression(p.current.Type) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")

	fn := p.table.Lookup(nameTok.Lexeme)
	typ := types.Invalid
	switch {
	case fn == nil:
		p.bag.Errorf(diag.UndeclaredIdentifier, nameTok.Position,
			"undeclared identifier '%s'", nameTok.Lexeme)
	case fn.Kind != symtab.SymbolFunction:
		p.bag.Errorf(diag.TypeMismatch, nameTok.Position,
			"'%s' is not a function", nameTok.Lexeme)
		fn = nil
	case len(args) != fn.Arity():
		p.bag.Errorf(diag.ArityMismatch, nameTok.Position,
			"'%s' expects %d arguments, got %d", fn.Name, fn.Arity(), len(args))
	default:
		for i, arg := range args {
			if !arg.Type().IsValid() {
				continue
			}
			if !types.Assignable(fn.ParamTypes[i], arg.Type()) {
				p.bag.Errorf(diag.TypeMismatch, arg.Pos(),
					"argument %d to '%s': cannot pass %s as %s",
					i+1, fn.Name, arg.Type(), fn.ParamTypes[i])
			}
		}
		typ = fn.Type
	}

	return &ast.CallExpr{
		Name:    nameTok.Lexeme,
		Fn:      fn,
		Args:    args,
		Typ:     typ,
		NamePos: nameTok.Position,
	}
}

// warnUnused reports variables and parameters that were declared but
// never read. Warnings leave the program valid.
func (p *Parser) warnUnused() {
	for _, scope := range p.table.Scopes() {
		for _, sym := range scope.UnusedSymbols() {
			if sym.Kind == symtab.SymbolFunction {
				continue
			}
			p.bag.Warnf(diag.UnusedVariable, sym.Pos,
				"%s '%s' declared but never used", sym.Kind, sym.Name)
		}
	}
}

// Parser infrastructure.

// advance shifts the lookahead window by one token. Lexical errors are
// reported here and the offending text skipped, so the grammar methods
// only ever see well-formed tokens.
func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.next
	for {
		tok, err := p.lexer.NextToken()
		if err == nil {
			p.next = tok
			return
		}
		p.bag.Errorf(diag.SyntaxError, tok.Position, "%s", err)
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// match consumes the current token if it has the given type.
func (p *Parser) match(tokenType lexer.TokenType) bool {
	if !p.check(tokenType) {
		return false
	}
	p.advance()
	return true
}

// consume requires the current token to have the given type, returning
// it. Anything else reports a syntax error and aborts the statement.
func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		tok := p.current
		p.advance()
		return tok
	}
	p.syntaxError(fmt.Sprintf("%s, got %s", message, describe(p.current)))
	panic(message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// syntaxError records a syntax error at the current token unless the
// parser is already recovering from one.
func (p *Parser) syntaxError(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.bag.Errorf(diag.SyntaxError, p.current.Position, "%s", message)
}

// synchronize skips tokens until a likely statement boundary: just
// past a semicolon, or in front of a token that can start a statement
// or close a block.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon {
			return
		}
		switch {
		case p.current.Type.IsTypeKeyword():
			return
		case p.current.Type == lexer.TokenFun,
			p.current.Type == lexer.TokenLeftBrace,
			p.current.Type == lexer.TokenRightBrace:
			return
		}
		p.advance()
	}
}

// describe renders a token for error messages: the lexeme in quotes
// when it adds information, the token type's name otherwise.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of file"
	case lexer.TokenIdentifier, lexer.TokenIntLit, lexer.TokenDoubleLit, lexer.TokenCharLit:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
