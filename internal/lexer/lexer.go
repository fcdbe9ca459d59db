// Package lexer tokenizes SPWN source text.
//
// The scanner shape (readChar/peekChar/peekChar2, line/column tracking via
// readChar) follows internal/lexer/lexer.go from funvibe/funxy; the token
// set itself (multi-base numeric literals, id literals, type indicators)
// is SPWN's own per spec.md §4.1.
package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spwn-lang/spwn/internal/token"
)

// Phi is the golden ratio, used to decode base-φ numeric literals.
const Phi = 1.6180339887498948482045868343656381177203091798057628621354486227

// LexError describes a lexical error with its source span.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int

	Errors []*LexError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	pos2 := l.readPosition + w
	if pos2 >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos2:])
	return r
}

func (l *Lexer) errorf(line, col int, format string, args ...interface{}) {
	l.Errors = append(l.Errors, &LexError{Message: fmt.Sprintf(format, args...), Line: line, Column: col})
}

func newToken(tt token.TokenType, ch rune, line, col int) token.Token {
	lit := string(ch)
	return token.Token{Type: tt, Lexeme: lit, Literal: lit, Line: line, Column: col}
}

// All tokenizes the whole input, returning every token through EOF.
func All(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	return toks
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: l.line, Column: l.column}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.FAT_ARROW, Lexeme: "=>", Literal: "=>", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = token.Token{Type: token.INCR, Lexeme: "++", Literal: "++", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.PLUS_ASSIGN, Lexeme: "+=", Literal: "+=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.PLUS, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: l.line, Column: l.column}
		} else if l.peekChar() == '-' {
			l.readChar()
			tok = token.Token{Type: token.DECR, Lexeme: "--", Literal: "--", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.MINUS_ASSIGN, Lexeme: "-=", Literal: "-=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.POWER_ASSIGN, Lexeme: "**=", Literal: "**=", Line: l.line, Column: l.column}
			} else {
				tok = token.Token{Type: token.POWER, Lexeme: "**", Literal: "**", Line: l.line, Column: l.column}
			}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.ASTERISK_ASSIGN, Lexeme: "*=", Literal: "*=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
		}
	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.SLASH_ASSIGN, Lexeme: "/=", Literal: "/=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.SLASH, l.ch, l.line, l.column)
		}
	case '%':
		if l.peekChar() == '{' {
			l.readChar()
			tok = token.Token{Type: token.PERCENT_LBRACE, Lexeme: "%{", Literal: "%{", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.PERCENT_ASSIGN, Lexeme: "%=", Literal: "%=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.PERCENT, l.ch, l.line, l.column)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.BANG, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: l.line, Column: l.column}
		} else if l.peekChar() == '<' {
			l.readChar()
			tok = token.Token{Type: token.LSHIFT, Lexeme: "<<", Literal: "<<", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: l.line, Column: l.column}
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.RSHIFT, Lexeme: ">>", Literal: ">>", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok = token.Token{Type: token.ELLIPSIS, Lexeme: "...", Literal: "...", Line: l.line, Column: l.column}
			} else {
				tok = token.Token{Type: token.DOT_DOT, Lexeme: "..", Literal: "..", Line: l.line, Column: l.column}
			}
		} else {
			tok = newToken(token.DOT, l.ch, l.line, l.column)
		}
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = token.Token{Type: token.DOUBLE_COLON, Lexeme: "::", Literal: "::", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.COLON, l.ch, l.line, l.column)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = token.Token{Type: token.AND, Lexeme: "&&", Literal: "&&", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.AND_ASSIGN, Lexeme: "&=", Literal: "&=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.AMPERSAND, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = token.Token{Type: token.OR, Lexeme: "||", Literal: "||", Line: l.line, Column: l.column}
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.OR_ASSIGN, Lexeme: "|=", Literal: "|=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.PIPE, l.ch, l.line, l.column)
		}
	case '^':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.XOR_ASSIGN, Lexeme: "^=", Literal: "^=", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.CARET, l.ch, l.line, l.column)
		}
	case '~':
		tok = newToken(token.TILDE, l.ch, l.line, l.column)
	case '$':
		tok = newToken(token.DOLLAR, l.ch, l.line, l.column)
	case '?':
		if l.peekChar() == 'g' || l.peekChar() == 'c' || l.peekChar() == 'b' || l.peekChar() == 'i' {
			return l.readArbitraryID()
		}
		tok = newToken(token.QUESTION, l.ch, l.line, l.column)
	case '@':
		return l.readTypeIndicator()
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
	case '"':
		startLine, startCol := l.line, l.column
		content := l.readString()
		tok = token.Token{Type: token.STRING, Lexeme: fmt.Sprintf("%q", content), Literal: content, Line: startLine, Column: startCol}
	case 'ε':
		tok = token.Token{Type: token.EPSILON, Lexeme: "ε", Literal: "ε", Line: l.line, Column: l.column}
	case 0:
		tok = token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			startLine, startCol := l.line, l.column
			lexeme := l.readIdentifier()
			tok.Lexeme = lexeme
			tok.Literal = lexeme
			tok.Type = token.LookupIdent(lexeme)
			tok.Line = startLine
			tok.Column = startCol
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// readArbitraryID reads ?g, ?c, ?b, ?i.
func (l *Lexer) readArbitraryID() token.Token {
	startLine, startCol := l.line, l.column
	l.readChar() // consume '?'
	class := l.ch
	l.readChar() // consume the class letter
	var tt token.TokenType
	switch class {
	case 'g':
		tt = token.ARBITRARY_GROUP
	case 'c':
		tt = token.ARBITRARY_COLOR
	case 'b':
		tt = token.ARBITRARY_BLOCK
	case 'i':
		tt = token.ARBITRARY_ITEM
	}
	lexeme := "?" + string(class)
	return token.Token{Type: tt, Lexeme: lexeme, Literal: lexeme, Line: startLine, Column: startCol}
}

// readTypeIndicator reads @name.
func (l *Lexer) readTypeIndicator() token.Token {
	startLine, startCol := l.line, l.column
	l.readChar() // consume '@'
	if !isLetter(l.ch) {
		l.errorf(startLine, startCol, "invalid type indicator: expected identifier after '@'")
		tok := newToken(token.ILLEGAL, l.ch, l.line, l.column)
		l.readChar()
		return tok
	}
	name := l.readIdentifier()
	return token.Token{Type: token.TYPE_INDICATOR, Lexeme: "@" + name, Literal: name, Line: startLine, Column: startCol}
}

func (l *Lexer) readString() string {
	var sb strings.Builder
	startLine, startCol := l.line, l.column
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '0':
				sb.WriteByte(0)
			case 0:
				l.errorf(startLine, startCol, "unterminated string literal")
				return sb.String()
			default:
				sb.WriteRune(l.ch)
			}
			continue
		}
		sb.WriteRune(l.ch)
	}
	if l.ch == 0 {
		l.errorf(startLine, startCol, "unterminated string literal")
	}
	return sb.String()
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads plain numbers, id literals (5g/5c/5b/5i), and multi-base
// integer literals (0b, 0o, 0x, 0s=base6, 0χ=base12, 0φ=golden ratio base).
func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	base := 10

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			l.readChar()
			l.readChar()
			base = 16
		case 'b', 'B':
			l.readChar()
			l.readChar()
			base = 2
		case 'o', 'O':
			l.readChar()
			l.readChar()
			base = 8
		case 's', 'S':
			l.readChar()
			l.readChar()
			base = 6
		case 'χ':
			l.readChar()
			l.readChar()
			base = 12
		case 'φ':
			l.readChar()
			l.readChar()
			return l.readPhiNumber(startLine, startCol)
		}
	}

	for isBaseDigit(l.ch, base) {
		l.readChar()
	}

	isFloat := false
	if base == 10 && l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// ID-class suffix: 5g, 5c, 5b, 5i (only meaningful for base-10 integers).
	if base == 10 && !isFloat {
		switch l.ch {
		case 'g', 'c', 'b', 'i':
			numText := l.input[position:l.position]
			class := l.ch
			l.readChar()
			n, err := strconv.ParseUint(numText, 10, 16)
			if err != nil || n == 0 || n > 999 {
				return token.Token{Type: token.ILLEGAL, Lexeme: numText + string(class), Literal: "id out of range 1..999", Line: startLine, Column: startCol}
			}
			var tt token.TokenType
			switch class {
			case 'g':
				tt = token.GROUP_ID
			case 'c':
				tt = token.COLOR_ID
			case 'b':
				tt = token.BLOCK_ID
			case 'i':
				tt = token.ITEM_ID
			}
			return token.Token{Type: tt, Lexeme: numText + string(class), Literal: int64(n), Line: startLine, Column: startCol}
		}
	}

	lexeme := l.input[position:l.position]
	if isFloat {
		val, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	digits := lexeme
	switch base {
	case 16:
		digits = lexeme[2:]
	case 2, 8:
		digits = lexeme[2:]
	case 6:
		digits = lexeme[2:]
	case 12:
		digits = lexeme[len("0χ"):]
	}
	if digits == "" {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: fmt.Sprintf("invalid base-%d literal: no digits", base), Line: startLine, Column: startCol}
	}
	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: fmt.Sprintf("invalid base-%d literal", base), Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

// readPhiNumber decodes a base-φ literal: a sequence of 0/1 digits, most
// significant first, around an implicit radix point at the end (integer
// literals only), following the non-standard positional system where digit
// i (0-indexed from the right) contributes digit_i * φ^i.
func (l *Lexer) readPhiNumber(startLine, startCol int) token.Token {
	position := l.position
	for l.ch == '0' || l.ch == '1' {
		l.readChar()
	}
	digits := l.input[position:l.position]
	lexeme := "0φ" + digits
	if digits == "" {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "invalid base-phi literal: no digits", Line: startLine, Column: startCol}
	}
	var val float64
	n := len(digits)
	for i, d := range digits {
		if d != '0' && d != '1' {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "invalid base-phi literal: digits must be 0 or 1", Line: startLine, Column: startCol}
		}
		if d == '1' {
			power := n - 1 - i
			val += math.Pow(Phi, float64(power))
		}
	}
	return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func isBaseDigit(ch rune, base int) bool {
	switch base {
	case 16:
		return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
	case 12:
		return isDigit(ch) || ch == 'a' || ch == 'b' || ch == 'A' || ch == 'B'
	default:
		if !isDigit(ch) {
			return false
		}
		return int(ch-'0') < base
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && ch != 'ε' && ch != 'φ' && ch != 'χ' && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar()
				l.readChar()
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar()
				l.readChar()
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar()
						l.readChar()
						break
					}
					l.readChar()
				}
				if l.ch == 0 {
					l.errorf(l.line, l.column, "unterminated block comment")
				}
				continue
			}
		}
		break
	}
}
