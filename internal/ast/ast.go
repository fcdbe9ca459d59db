// Package ast defines the syntax tree produced by internal/parser.
//
// The Node/Statement/Expression split and the nil-guarded GetToken()
// accessor follow internal/ast/ast_core.go from funvibe/funxy; node
// Accept/Visitor double dispatch is dropped (see DESIGN.md) in favor of
// type switches in internal/evaluator.
package ast

import "github.com/spwn-lang/spwn/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
	// IsArrow reports whether this statement was prefixed with `->`.
	IsArrow() bool
}

// Expression is a Node that appears in an expression position.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parsed source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token { return token.Token{} }

// StmtBase carries the fields common to every statement: its leading
// token (for span reporting) and whether it was arrow-executed (spec.md
// §4.6 "Arrow statements").
type StmtBase struct {
	Token token.Token
	Arrow bool
}

func (b StmtBase) TokenLiteral() string { return b.Token.Lexeme }
func (b StmtBase) GetToken() token.Token { return b.Token }
func (b StmtBase) statementNode()        {}
func (b StmtBase) IsArrow() bool         { return b.Arrow }

// ExprBase carries the fields common to every expression: its leading token.
type ExprBase struct {
	Token token.Token
}

func (b ExprBase) TokenLiteral() string  { return b.Token.Lexeme }
func (b ExprBase) GetToken() token.Token { return b.Token }
func (b ExprBase) expressionNode()       {}
