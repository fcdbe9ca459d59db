package parser

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/token"
)

func (p *Parser) registerExpressionParseFns() {
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.BOOL_TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.BOOL_FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.GROUP_ID, p.parseIDLiteral)
	p.registerPrefix(token.COLOR_ID, p.parseIDLiteral)
	p.registerPrefix(token.BLOCK_ID, p.parseIDLiteral)
	p.registerPrefix(token.ITEM_ID, p.parseIDLiteral)
	p.registerPrefix(token.ARBITRARY_GROUP, p.parseArbitraryIDLiteral)
	p.registerPrefix(token.ARBITRARY_COLOR, p.parseArbitraryIDLiteral)
	p.registerPrefix(token.ARBITRARY_BLOCK, p.parseArbitraryIDLiteral)
	p.registerPrefix(token.ARBITRARY_ITEM, p.parseArbitraryIDLiteral)
	p.registerPrefix(token.TYPE_INDICATOR, p.parseTypeIndicator)
	p.registerPrefix(token.EPSILON, p.parseEpsilonLiteral)
	p.registerPrefix(token.DOLLAR, p.parseBuiltinsExpr)
	p.registerPrefix(token.SELF, p.parseSelfExpr)
	p.registerPrefix(token.MINUS, p.parseUnaryExpr)
	p.registerPrefix(token.BANG, p.parseUnaryExpr)
	p.registerPrefix(token.TILDE, p.parseUnaryExpr)
	p.registerPrefix(token.INCR, p.parseUnaryExpr)
	p.registerPrefix(token.DECR, p.parseUnaryExpr)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrMacro)
	p.registerPrefix(token.LBRACKET, p.parseArrayOrComprehension)
	p.registerPrefix(token.LBRACE, p.parseDictLiteral)
	p.registerPrefix(token.OBJ, p.parseObjectLiteral)
	p.registerPrefix(token.TRIGGER, p.parseObjectLiteral)
	p.registerPrefix(token.MATCH, p.parseMatchExpr)
	p.registerPrefix(token.IMPORT, p.parseImportExpr)

	p.registerInfix(token.PLUS, p.parseBinaryExpr)
	p.registerInfix(token.MINUS, p.parseBinaryExpr)
	p.registerInfix(token.ASTERISK, p.parseBinaryExpr)
	p.registerInfix(token.SLASH, p.parseBinaryExpr)
	p.registerInfix(token.PERCENT, p.parseBinaryExpr)
	p.registerInfix(token.POWER, p.parseRightAssocBinaryExpr)
	p.registerInfix(token.EQ, p.parseBinaryExpr)
	p.registerInfix(token.NOT_EQ, p.parseBinaryExpr)
	p.registerInfix(token.LT, p.parseBinaryExpr)
	p.registerInfix(token.GT, p.parseBinaryExpr)
	p.registerInfix(token.LTE, p.parseBinaryExpr)
	p.registerInfix(token.GTE, p.parseBinaryExpr)
	p.registerInfix(token.LSHIFT, p.parseBinaryExpr)
	p.registerInfix(token.RSHIFT, p.parseBinaryExpr)
	p.registerInfix(token.AND, p.parseBinaryExpr)
	p.registerInfix(token.OR, p.parseBinaryExpr)
	p.registerInfix(token.AMPERSAND, p.parseBinaryExpr)
	p.registerInfix(token.PIPE, p.parseBinaryExpr)
	p.registerInfix(token.CARET, p.parseBinaryExpr)
	p.registerInfix(token.DOT_DOT, p.parseRangeExpr)
	p.registerInfix(token.AS, p.parseAsExpr)
	p.registerInfix(token.IS, p.parseIsExpr)
	p.registerInfix(token.IF, p.parseTernaryExpr)
	p.registerInfix(token.INCR, p.parsePostfixExpr)
	p.registerInfix(token.DECR, p.parsePostfixExpr)
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSliceExpr)
	p.registerInfix(token.DOT, p.parseMemberExpr)
	p.registerInfix(token.DOUBLE_COLON, p.parseAssociatedOrConstructorExpr)
}

func (p *Parser) parseIdentifier() ast.Expression {
	if p.curToken.Lexeme == "_" {
		return &ast.UnderscoreExpr{ExprBase: ast.ExprBase{Token: p.curToken}}
	}
	return &ast.Identifier{ExprBase: ast.ExprBase{Token: p.curToken}, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(int64)
	return &ast.IntLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(float64)
	return &ast.FloatLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Value: v}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Value: p.curToken.Type == token.BOOL_TRUE}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Value: v}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{ExprBase: ast.ExprBase{Token: p.curToken}}
}

func (p *Parser) parseEpsilonLiteral() ast.Expression {
	return &ast.EpsilonExpr{ExprBase: ast.ExprBase{Token: p.curToken}}
}

func (p *Parser) parseBuiltinsExpr() ast.Expression {
	return &ast.BuiltinsExpr{ExprBase: ast.ExprBase{Token: p.curToken}}
}

func (p *Parser) parseSelfExpr() ast.Expression {
	return &ast.SelfExpr{ExprBase: ast.ExprBase{Token: p.curToken}}
}

func idClassOf(tt token.TokenType) ast.IDClass {
	switch tt {
	case token.GROUP_ID, token.ARBITRARY_GROUP:
		return ast.ClassGroup
	case token.COLOR_ID, token.ARBITRARY_COLOR:
		return ast.ClassColor
	case token.BLOCK_ID, token.ARBITRARY_BLOCK:
		return ast.ClassBlock
	default:
		return ast.ClassItem
	}
}

func (p *Parser) parseIDLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(int64)
	return &ast.IDLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Class: idClassOf(p.curToken.Type), Value: uint16(v)}
}

func (p *Parser) parseArbitraryIDLiteral() ast.Expression {
	return &ast.ArbitraryIDLiteral{ExprBase: ast.ExprBase{Token: p.curToken}, Class: idClassOf(p.curToken.Type)}
}

func (p *Parser) parseTypeIndicator() ast.Expression {
	name, _ := p.curToken.Literal.(string)
	return &ast.TypeIndicatorExpr{ExprBase: ast.ExprBase{Token: p.curToken}, Name: name}
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	tok := p.curToken
	op := tok.Type
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{ExprBase: ast.ExprBase{Token: tok}, Op: op, Operand: operand}
}

func (p *Parser) parsePostfixExpr(left ast.Expression) ast.Expression {
	return &ast.UnaryExpr{ExprBase: ast.ExprBase{Token: p.curToken}, Op: p.curToken.Type, Operand: left, Postfix: true}
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	precedence := p.curPrecedence()
	p.nextToken()
	p.skipNewlines()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpr{ExprBase: ast.ExprBase{Token: tok}, Op: op, Left: left, Right: right}
}

// parseRightAssocBinaryExpr handles `**`, which binds right-to-left:
// 2 ** 3 ** 2 parses as 2 ** (3 ** 2).
func (p *Parser) parseRightAssocBinaryExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	precedence := p.curPrecedence()
	p.nextToken()
	p.skipNewlines()
	right := p.parseExpression(precedence - 1)
	return &ast.BinaryExpr{ExprBase: ast.ExprBase{Token: tok}, Op: op, Left: left, Right: right}
}

func (p *Parser) parseRangeExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	end := p.parseExpression(RANGE)
	r := &ast.RangeExpr{ExprBase: ast.ExprBase{Token: tok}, Start: left, End: end}
	if p.peekTokenIs(token.DOT_DOT) {
		p.nextToken()
		p.nextToken()
		r.Step = r.End
		r.End = p.parseExpression(RANGE)
	}
	return r
}

func (p *Parser) parseAsExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	typ := p.parseExpression(ASIS)
	return &ast.AsExpr{ExprBase: ast.ExprBase{Token: tok}, Value: left, Type: typ}
}

func (p *Parser) parseIsExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	pat := p.parsePattern()
	return &ast.IsExpr{ExprBase: ast.ExprBase{Token: tok}, Value: left, Pattern: pat}
}

// parseTernaryExpr parses the postfix conditional `then if cond else else_`
// and its pattern-testing form `then if is Pat else else_` (spec.md §4.2).
func (p *Parser) parseTernaryExpr(then ast.Expression) ast.Expression {
	tok := p.curToken // `if`
	p.nextToken()

	t := &ast.TernaryExpr{ExprBase: ast.ExprBase{Token: tok}, Then: then}
	if p.curTokenIs(token.IS) {
		p.nextToken()
		t.PatternCond = p.parsePattern()
		t.Subject = then
	} else {
		t.Cond = p.parseExpression(LOWEST)
	}

	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	t.Else = p.parseExpression(TERNARY)
	return t
}

func (p *Parser) parseMatchExpr() ast.Expression {
	tok := p.curToken
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	m := &ast.MatchExpr{ExprBase: ast.ExprBase{Token: tok}, Subject: subject}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		c := ast.MatchCase{}
		if p.curTokenIs(token.DEFAULT) {
			c.IsDefault = true
		} else {
			c.Pattern = p.parsePattern()
		}
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		c.Body = p.parseExpression(LOWEST)
		m.Cases = append(m.Cases, c)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
		p.skipNewlines()
	}
	return m
}

func (p *Parser) parseImportExpr() ast.Expression {
	tok := p.curToken
	bang := false
	if p.peekTokenIs(token.BANG) {
		p.nextToken()
		bang = true
	}
	if bang {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		return &ast.ImportExpr{ExprBase: ast.ExprBase{Token: tok}, Path: p.curToken.Lexeme, IsLib: true}
	}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path, _ := p.curToken.Literal.(string)
	return &ast.ImportExpr{ExprBase: ast.ExprBase{Token: tok}, Path: path}
}

// parseGroupedOrMacro disambiguates `(expr)` from a macro literal
// `(args) { body }` / `(args) -> RetPat { body }` by first attempting a
// macro argument list and falling back to a parenthesized expression.
func (p *Parser) parseGroupedOrMacro() ast.Expression {
	if looksLikeMacroArgs := p.tryParseMacroArgs(); looksLikeMacroArgs != nil {
		return looksLikeMacroArgs
	}

	tok := p.curToken
	p.nextToken()
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	p.peekSkipNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	_ = tok
	return exp
}

// tryParseMacroArgs speculatively parses `(` ArgDef,* `)` followed by `{` or
// `->`; on failure it rewinds the parser to its entry position and returns
// nil so the caller can retry as a grouped expression.
func (p *Parser) tryParseMacroArgs() ast.Expression {
	startPos, startCur, startPeek := p.pos, p.curToken, p.peekToken
	rewind := func() {
		p.pos, p.curToken, p.peekToken = startPos, startCur, startPeek
	}

	tok := p.curToken
	p.nextToken() // consume '('
	p.skipNewlines()

	var args []ast.ArgDef
	for !p.curTokenIs(token.RPAREN) {
		arg, ok := p.parseArgDef()
		if !ok {
			rewind()
			return nil
		}
		args = append(args, arg)
		p.peekSkipNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		rewind()
		return nil
	}

	m := &ast.MacroLiteral{ExprBase: ast.ExprBase{Token: tok}, Args: args}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		m.RetPattern = p.parsePattern()
	}

	if !p.expectPeek(token.LBRACE) {
		rewind()
		return nil
	}
	m.Body = p.parseBlockBody()
	return m
}

func (p *Parser) parseArgDef() (ast.ArgDef, bool) {
	arg := ast.ArgDef{}
	if p.curTokenIs(token.AMPERSAND) {
		arg.ByRef = true
		p.nextToken()
	}
	if p.curTokenIs(token.ELLIPSIS) {
		arg.Variadic = true
		p.nextToken()
	}
	if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.SELF) {
		return arg, false
	}
	arg.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		arg.Pattern = p.parsePattern()
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		arg.Default = p.parseExpression(LOWEST)
	}
	return arg, true
}

func (p *Parser) parseBlockBody() []ast.Statement {
	var stmts []ast.Statement
	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		p.skipNewlines()
	}
	return stmts
}

func (p *Parser) parseArrayOrComprehension() ast.Expression {
	tok := p.curToken
	p.nextToken()
	p.skipNewlines()

	if p.curTokenIs(token.RBRACKET) {
		return &ast.ArrayLiteral{ExprBase: ast.ExprBase{Token: tok}}
	}

	first := p.parseArrayElement()
	p.peekSkipNewlines()

	if p.peekTokenIs(token.FOR) {
		p.nextToken() // 'for'
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			p.errorf(p.curToken, "expected loop variable name in list comprehension")
			return nil
		}
		varName := p.curToken.Lexeme
		if !p.expectPeek(token.IN) {
			return nil
		}
		p.nextToken()
		iterable := p.parseExpression(LOWEST)
		lc := &ast.ListComprehension{ExprBase: ast.ExprBase{Token: tok}, Result: first.Value, VarName: varName, Iterable: iterable}
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			lc.Cond = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return lc
	}

	arr := &ast.ArrayLiteral{ExprBase: ast.ExprBase{Token: tok}, Elements: []ast.ArrayElement{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.RBRACKET) {
			break
		}
		arr.Elements = append(arr.Elements, p.parseArrayElement())
		p.peekSkipNewlines()
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return arr
}

// parseArrayElement parses one array-literal entry, handling the `..expr`
// spread and `*expr` collect prefixes from spec.md §4.5.
func (p *Parser) parseArrayElement() ast.ArrayElement {
	elem := ast.ArrayElement{}
	if p.curTokenIs(token.DOT_DOT) {
		elem.Spread = true
		p.nextToken()
	} else if p.curTokenIs(token.ASTERISK) {
		elem.Collect = true
		p.nextToken()
	}
	elem.Value = p.parseExpression(LOWEST)
	return elem
}

func (p *Parser) parseDictLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	p.skipNewlines()

	d := &ast.DictLiteral{ExprBase: ast.ExprBase{Token: tok}}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		pair := p.parseDictPair()
		d.Pairs = append(d.Pairs, pair)
		p.peekSkipNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return d
}

func (p *Parser) parseDictPair() ast.DictPair {
	pair := ast.DictPair{}
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
		pair.Name = p.curToken.Lexeme
		p.nextToken()
	} else if p.curTokenIs(token.IDENT) && (p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.RBRACE)) {
		// Shorthand `{ x }` == `{ x: x }`.
		pair.Name = p.curToken.Lexeme
		pair.Value = &ast.Identifier{ExprBase: ast.ExprBase{Token: p.curToken}, Value: p.curToken.Lexeme}
		return pair
	} else {
		pair.KeyExpr = p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return pair
		}
	}
	p.nextToken()
	pair.Value = p.parseExpression(LOWEST)
	return pair
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.curToken
	mode := ast.ModeObject
	if tok.Type == token.TRIGGER {
		mode = ast.ModeTrigger
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	p.skipNewlines()

	o := &ast.ObjectLiteral{ExprBase: ast.ExprBase{Token: tok}, Mode: mode}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		val := p.parseExpression(LOWEST)
		o.Pairs = append(o.Pairs, ast.ObjectPair{Key: key, Value: val})

		p.peekSkipNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.curTokenIs(token.RBRACE) && !p.expectPeek(token.RBRACE) {
		return nil
	}
	return o
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	tok := p.curToken
	call := &ast.CallExpr{ExprBase: ast.ExprBase{Token: tok}, Callee: callee}
	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RPAREN) {
		arg := ast.Argument{}
		if p.curTokenIs(token.DOT_DOT) {
			arg.Spread = true
			p.nextToken()
		} else if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			arg.Name = p.curToken.Lexeme
			p.nextToken()
			p.nextToken()
		}
		arg.Value = p.parseExpression(LOWEST)
		call.Args = append(call.Args, arg)

		p.peekSkipNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

// parseIndexOrSliceExpr parses `target[i]` and the n-dimensional slice form
// `target[s1, s2, ...]` where each dimension may omit start/stop/step.
func (p *Parser) parseIndexOrSliceExpr(target ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()

	dim, isSlice := p.parseSliceDim()
	dims := []ast.SliceDim{dim}
	for p.peekTokenIs(token.COMMA) {
		isSlice = true
		p.nextToken()
		p.nextToken()
		d, _ := p.parseSliceDim()
		dims = append(dims, d)
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	if !isSlice && len(dims) == 1 {
		return &ast.IndexExpr{ExprBase: ast.ExprBase{Token: tok}, Target: target, Index: dims[0].Start}
	}
	return &ast.SliceExpr{ExprBase: ast.ExprBase{Token: tok}, Target: target, Dims: dims}
}

// parseSliceDim parses one `[start]:[stop]:[step]` dimension; reports
// isSlice=true if any colon was seen.
func (p *Parser) parseSliceDim() (ast.SliceDim, bool) {
	dim := ast.SliceDim{}
	isSlice := false

	if !p.curTokenIs(token.COLON) && !p.curTokenIs(token.COMMA) && !p.curTokenIs(token.RBRACKET) {
		dim.Start = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.COLON) {
		isSlice = true
		p.nextToken()
		p.nextToken()
		if !p.curTokenIs(token.COLON) && !p.curTokenIs(token.COMMA) && !p.curTokenIs(token.RBRACKET) {
			dim.Stop = p.parseExpression(LOWEST)
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			dim.Step = p.parseExpression(LOWEST)
		}
	}
	return dim, isSlice
}

func (p *Parser) parseMemberExpr(target ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.MemberExpr{ExprBase: ast.ExprBase{Token: tok}, Target: target, Name: p.curToken.Lexeme}
}

// parseAssociatedOrConstructorExpr parses `target::name` and the
// constructor-call sugar `target::{ fields }`.
func (p *Parser) parseAssociatedOrConstructorExpr(target ast.Expression) ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken() // now at LBRACE
		p.nextToken()
		p.skipNewlines()
		c := &ast.ConstructorExpr{ExprBase: ast.ExprBase{Token: tok}, Type: target}
		for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			c.Fields = append(c.Fields, p.parseDictPair())
			p.peekSkipNewlines()
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				p.skipNewlines()
				continue
			}
			break
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return c
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.AssociatedExpr{ExprBase: ast.ExprBase{Token: tok}, Target: target, Name: p.curToken.Lexeme}
}
