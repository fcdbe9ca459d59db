package parser

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/token"
)

// Pattern precedence, loosest to tightest: `|` binds loosest, `&` next,
// then a bare atom (type name, literal, compare, array/dict shape,
// parenthesized sub-pattern, or `!`-negation).
const (
	patLowest int = iota
	patEither
	patBoth
)

// parsePattern parses the pattern grammar used by `: Pattern` annotations,
// `is` expressions, and match arms.
func (p *Parser) parsePattern() ast.Pattern {
	return p.parsePatternPrecedence(patLowest)
}

func (p *Parser) parsePatternPrecedence(precedence int) ast.Pattern {
	left := p.parsePatternAtom()
	if left == nil {
		return nil
	}

	for {
		if precedence < patEither && p.peekTokenIs(token.PIPE) {
			tok := p.peekToken
			p.nextToken()
			p.nextToken()
			right := p.parsePatternPrecedence(patEither)
			left = &ast.PatternEither{PatternBase: ast.PatternBase{Token: tok}, Left: left, Right: right}
			continue
		}
		if precedence < patBoth && p.peekTokenIs(token.AMPERSAND) {
			tok := p.peekToken
			p.nextToken()
			p.nextToken()
			right := p.parsePatternPrecedence(patBoth)
			left = &ast.PatternBoth{PatternBase: ast.PatternBase{Token: tok}, Left: left, Right: right}
			continue
		}
		break
	}
	return left
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	switch p.curToken.Type {
	case token.BANG:
		tok := p.curToken
		p.nextToken()
		inner := p.parsePatternAtom()
		return &ast.PatternNot{PatternBase: ast.PatternBase{Token: tok}, Inner: inner}

	case token.TYPE_INDICATOR:
		name, _ := p.curToken.Literal.(string)
		return &ast.PatternType{PatternBase: ast.PatternBase{Token: p.curToken}, Name: name}

	case token.IDENT:
		if p.curToken.Lexeme == "_" {
			return &ast.PatternAny{PatternBase: ast.PatternBase{Token: p.curToken}}
		}
		return &ast.PatternType{PatternBase: ast.PatternBase{Token: p.curToken}, Name: p.curToken.Lexeme}

	case token.LBRACKET:
		tok := p.curToken
		p.nextToken()
		var elems []ast.Pattern
		for !p.curTokenIs(token.RBRACKET) {
			elems = append(elems, p.parsePattern())
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.PatternArray{PatternBase: ast.PatternBase{Token: tok}, Elems: elems}

	case token.LBRACE:
		tok := p.curToken
		p.nextToken()
		p.skipNewlines()
		d := &ast.PatternDict{PatternBase: ast.PatternBase{Token: tok}}
		for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
			if !p.curTokenIs(token.IDENT) {
				p.errorf(p.curToken, "expected field name in dict pattern")
				return nil
			}
			name := p.curToken.Lexeme
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			sub := p.parsePattern()
			d.Entries = append(d.Entries, ast.PatternDictEntry{Key: name, Pattern: sub})
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

	case token.LPAREN:
		tok := p.curToken
		p.nextToken()
		var argPats []ast.Pattern
		for !p.curTokenIs(token.RPAREN) {
			argPats = append(argPats, p.parsePattern())
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		if p.peekTokenIs(token.ARROW) {
			p.nextToken()
			p.nextToken()
			ret := p.parsePattern()
			return &ast.PatternMacro{PatternBase: ast.PatternBase{Token: tok}, ArgPatterns: argPats, RetPattern: ret}
		}
		if len(argPats) == 1 {
			return argPats[0]
		}
		return &ast.PatternMacro{PatternBase: ast.PatternBase{Token: tok}, ArgPatterns: argPats}

	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE, token.IN:
		op := compareOpOf(p.curToken.Type)
		tok := p.curToken
		p.nextToken()
		operand := p.parseExpression(LESSGREATER)
		return &ast.PatternCompare{PatternBase: ast.PatternBase{Token: tok}, Op: op, Operand: operand}

	case token.INT, token.FLOAT, token.STRING, token.BOOL_TRUE, token.BOOL_FALSE, token.NULL,
		token.GROUP_ID, token.COLOR_ID, token.BLOCK_ID, token.ITEM_ID:
		tok := p.curToken
		val := p.parseExpression(LOWEST)
		return &ast.PatternLiteral{PatternBase: ast.PatternBase{Token: tok}, Value: val}

	default:
		p.errorf(p.curToken, "expected a pattern, got %s", p.curToken.Type)
		return nil
	}
}

func compareOpOf(tt token.TokenType) ast.CompareOp {
	switch tt {
	case token.EQ:
		return ast.CmpEq
	case token.NOT_EQ:
		return ast.CmpNeq
	case token.LT:
		return ast.CmpLt
	case token.LTE:
		return ast.CmpLte
	case token.GT:
		return ast.CmpGt
	case token.GTE:
		return ast.CmpGte
	default:
		return ast.CmpIn
	}
}
