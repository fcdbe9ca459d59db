package parser

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/token"
)

var assignOps = map[token.TokenType]string{
	token.ASSIGN:          "=",
	token.PLUS_ASSIGN:     "+=",
	token.MINUS_ASSIGN:    "-=",
	token.ASTERISK_ASSIGN: "*=",
	token.SLASH_ASSIGN:    "/=",
	token.PERCENT_ASSIGN:  "%=",
	token.POWER_ASSIGN:    "**=",
	token.AND_ASSIGN:      "&=",
	token.OR_ASSIGN:       "|=",
	token.XOR_ASSIGN:      "^=",
	token.LSHIFT_ASSIGN:   "<<=",
	token.RSHIFT_ASSIGN:   ">>=",
}

// parseStatement dispatches on curToken to the right statement parser. A
// leading `->` marks the statement arrow-executed (spec.md §4.6); it is
// stripped here and the flag threaded onto the parsed statement's base.
func (p *Parser) parseStatement() ast.Statement {
	arrow := false
	if p.curTokenIs(token.ARROW) {
		arrow = true
		p.nextToken()
	}

	var stmt ast.Statement
	switch p.curToken.Type {
	case token.LET:
		stmt = p.parseLetStatement()
	case token.IF:
		stmt = p.parseIfStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.FOR:
		stmt = p.parseForStatement()
	case token.TRY:
		stmt = p.parseTryStatement()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.BREAK:
		stmt = &ast.BreakStatement{StmtBase: ast.StmtBase{Token: p.curToken}}
	case token.CONTINUE:
		stmt = &ast.ContinueStatement{StmtBase: ast.StmtBase{Token: p.curToken}}
	case token.THROW:
		stmt = p.parseThrowStatement()
	case token.TYPE:
		stmt = p.parseTypeDefStatement()
	case token.IMPL:
		stmt = p.parseImplStatement()
	case token.EXTRACT:
		stmt = p.parseExtractStatement()
	case token.LBRACE:
		stmt = p.parseBlockStatement()
	default:
		stmt = p.parseExpressionOrAssignStatement()
	}

	if stmt == nil {
		return nil
	}
	setArrow(stmt, arrow)
	return stmt
}

// setArrow threads the arrow flag onto whichever concrete statement type
// was produced, since StmtBase is embedded by value in each.
func setArrow(stmt ast.Statement, arrow bool) {
	if !arrow {
		return
	}
	switch s := stmt.(type) {
	case *ast.LetStatement:
		s.Arrow = true
	case *ast.AssignStatement:
		s.Arrow = true
	case *ast.IfStatement:
		s.Arrow = true
	case *ast.WhileStatement:
		s.Arrow = true
	case *ast.ForStatement:
		s.Arrow = true
	case *ast.TryStatement:
		s.Arrow = true
	case *ast.ReturnStatement:
		s.Arrow = true
	case *ast.BreakStatement:
		s.Arrow = true
	case *ast.ContinueStatement:
		s.Arrow = true
	case *ast.ThrowStatement:
		s.Arrow = true
	case *ast.TypeDefStatement:
		s.Arrow = true
	case *ast.ImplStatement:
		s.Arrow = true
	case *ast.ExtractStatement:
		s.Arrow = true
	case *ast.BlockStatement:
		s.Arrow = true
	case *ast.ExpressionStatement:
		s.Arrow = true
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Lexeme

	let := &ast.LetStatement{StmtBase: ast.StmtBase{Token: tok}, Name: name}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		let.Pattern = p.parsePattern()
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	let.Value = p.parseExpression(LOWEST)
	return let
}

// parseExpressionOrAssignStatement parses a bare expression statement, or
// an assignment if the parsed expression is immediately followed by one of
// the assignment operators.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if op, ok := assignOps[p.peekToken.Type]; ok {
		p.nextToken()
		p.nextToken()
		val := p.parseExpression(LOWEST)
		return &ast.AssignStatement{
			StmtBase: ast.StmtBase{Token: tok},
			Target:   ast.AssignTarget{Expr: expr},
			Op:       op,
			Value:    val,
		}
	}

	return &ast.ExpressionStatement{StmtBase: ast.StmtBase{Token: tok}, Expr: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.IfStatement{StmtBase: ast.StmtBase{Token: tok}}

	for {
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		body := p.parseBlockBody()
		stmt.Branches = append(stmt.Branches, ast.IfBranch{Cond: cond, Body: body})

		if p.peekTokenIs(token.ELSE) {
			p.nextToken()
			if p.peekTokenIs(token.IF) {
				p.nextToken()
				continue
			}
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			stmt.Else = p.parseBlockBody()
		}
		break
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockBody()
	return &ast.WhileStatement{StmtBase: ast.StmtBase{Token: tok}, Cond: cond, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	varName := p.curToken.Lexeme
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	iterable := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockBody()
	return &ast.ForStatement{StmtBase: ast.StmtBase{Token: tok}, VarName: varName, Iterable: iterable, Body: body}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockBody()
	stmt := &ast.TryStatement{StmtBase: ast.StmtBase{Token: tok}, Body: body}

	for p.peekTokenIs(token.CATCH) {
		p.nextToken()
		clause := ast.CatchClause{}
		if !p.peekTokenIs(token.LBRACE) {
			p.nextToken()
			clause.Pattern = p.parsePattern()
			if p.peekTokenIs(token.IDENT) {
				p.nextToken()
				clause.ErrVar = p.curToken.Lexeme
			}
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		clause.Body = p.parseBlockBody()
		stmt.Catches = append(stmt.Catches, clause)
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	ret := &ast.ReturnStatement{StmtBase: ast.StmtBase{Token: tok}}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return ret
	}
	p.nextToken()
	ret.Value = p.parseExpression(LOWEST)
	return ret
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(LOWEST)
	return &ast.ThrowStatement{StmtBase: ast.StmtBase{Token: tok}, Value: val}
}

func (p *Parser) parseBlockStatement() ast.Statement {
	tok := p.curToken
	body := p.parseBlockBody()
	return &ast.BlockStatement{StmtBase: ast.StmtBase{Token: tok}, Body: body}
}

func (p *Parser) parseTypeDefStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.TYPE_INDICATOR) {
		return nil
	}
	name, _ := p.curToken.Literal.(string)
	return &ast.TypeDefStatement{StmtBase: ast.StmtBase{Token: tok}, Name: name}
}

func (p *Parser) parseImplStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	typ := p.parseExpression(CALL)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	stmt := &ast.ImplStatement{StmtBase: ast.StmtBase{Token: tok}, Type: typ}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		member := ast.ImplMember{}
		if p.curTokenIs(token.PRIVATE) {
			member.Private = true
			p.nextToken()
		}
		member.Name = p.parseMemberKey()
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		member.Value = p.parseExpression(LOWEST)
		stmt.Members = append(stmt.Members, member)

		p.peekSkipNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		p.nextToken()
		p.skipNewlines()
	}
	return stmt
}

// parseMemberKey parses an impl-block member name: a plain identifier, or
// one of the operator-overload keys (`unary_-`, `+`, `==`, ...).
func (p *Parser) parseMemberKey() string {
	if p.curTokenIs(token.UNARY) {
		p.nextToken()
		name := "unary_" + p.curToken.Lexeme
		return name
	}
	name := p.curToken.Lexeme
	return name
}

func (p *Parser) parseExtractStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(LOWEST)
	return &ast.ExtractStatement{StmtBase: ast.StmtBase{Token: tok}, Value: val}
}
