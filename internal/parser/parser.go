// Package parser implements a recursive-descent, Pratt-style parser that
// turns a token stream from internal/lexer into an internal/ast tree.
//
// The prefixParseFns/infixParseFns dispatch table and the curToken/peekToken
// cursor follow internal/parser/expressions_core.go from funvibe/funxy;
// this parser drops that package's token-stream abstraction
// (internal/pipeline.TokenStream) and recursion-depth guard plumbing in
// favor of a plain []token.Token slice, since SPWN source files are small
// compared to funvibe/funxy's own target language.
package parser

import (
	"fmt"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/token"
)

// Precedence levels, loosest to tightest. `as`/`is` sit between the bitwise
// operators and comparison per spec; `**` is right-associative and binds
// tighter than `*`/`/`/`%`.
const (
	LOWEST int = iota
	TERNARY
	OR
	AND
	BITOR
	BITXOR
	BITAND
	ASIS
	EQUALS
	LESSGREATER
	SHIFT
	RANGE
	SUM
	PRODUCT
	POWER
	PREFIX
	CALL
)

var precedences = map[token.TokenType]int{
	token.IF:           TERNARY,
	token.OR:           OR,
	token.AND:          AND,
	token.PIPE:         BITOR,
	token.CARET:        BITXOR,
	token.AMPERSAND:    BITAND,
	token.AS:           ASIS,
	token.IS:           ASIS,
	token.EQ:           EQUALS,
	token.NOT_EQ:       EQUALS,
	token.LT:           LESSGREATER,
	token.GT:           LESSGREATER,
	token.LTE:          LESSGREATER,
	token.GTE:          LESSGREATER,
	token.LSHIFT:       SHIFT,
	token.RSHIFT:       SHIFT,
	token.DOT_DOT:      RANGE,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.PERCENT:      PRODUCT,
	token.POWER:        POWER,
	token.INCR:         CALL,
	token.DECR:         CALL,
	token.LPAREN:       CALL,
	token.LBRACKET:     CALL,
	token.DOT:          CALL,
	token.DOUBLE_COLON: CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a flat token slice into an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	file   string
	Errors []*diagnostic.Diagnostic

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New constructs a Parser over an already-lexed token slice (as produced by
// lexer.All). file is used to stamp diagnostics with a source name.
func New(tokens []token.Token, file string) *Parser {
	p := &Parser{tokens: tokens, file: file}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{}
	p.infixParseFns = map[token.TokenType]infixParseFn{}
	p.registerExpressionParseFns()

	// Prime curToken/peekToken.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tt token.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt token.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF, Lexeme: ""}
	}
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n - 1
	if idx < 0 || idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) curTokenIs(tt token.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekTokenIs(tt token.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) expectPeek(tt token.TokenType) bool {
	if p.peekTokenIs(tt) {
		p.nextToken()
		return true
	}
	p.peekError(tt)
	return false
}

func (p *Parser) peekError(tt token.TokenType) {
	p.errorf(p.peekToken, "expected next token to be %s, got %s instead", tt, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(tt token.TokenType) {
	p.errorf(p.curToken, "no prefix parse function for %s found", tt)
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.Errors = append(p.Errors, diagnostic.NewSyntaxError(tok.Span(p.file), fmt.Sprintf(format, args...)))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// skipNewlines advances past any run of NEWLINE tokens starting at curToken.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) peekSkipNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program.
func ParseProgram(tokens []token.Token, file string) (*ast.Program, []*diagnostic.Diagnostic) {
	p := New(tokens, file)
	prog := &ast.Program{File: file}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		p.skipNewlines()
	}

	return prog, p.Errors
}

// parseExpression is the Pratt-loop core: parse a prefix expression, then
// repeatedly fold in infix/postfix operators while the next operator binds
// tighter than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}
