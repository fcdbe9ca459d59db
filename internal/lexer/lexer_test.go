package lexer_test

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/lexer"
	"github.com/spwn-lang/spwn/internal/token"
)

func TestNextToken(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{"assign", "a = 5", []token.TokenType{token.IDENT, token.ASSIGN, token.INT, token.EOF}},
		{"arrow_stmt", "-> a = 1", []token.TokenType{token.ARROW, token.IDENT, token.ASSIGN, token.INT, token.EOF}},
		{"group_literal", "10g", []token.TokenType{token.GROUP_ID, token.EOF}},
		{"arbitrary_color", "?c", []token.TokenType{token.ARBITRARY_COLOR, token.EOF}},
		{"type_indicator", "@number", []token.TokenType{token.TYPE_INDICATOR, token.EOF}},
		{"multi_char_ops", "a == b != c <= d >= e", []token.TokenType{
			token.IDENT, token.EQ, token.IDENT, token.NOT_EQ, token.IDENT,
			token.LTE, token.IDENT, token.GTE, token.IDENT, token.EOF,
		}},
		{"range_and_spread", "a..b ...c", []token.TokenType{
			token.IDENT, token.DOT_DOT, token.IDENT, token.ELLIPSIS, token.IDENT, token.EOF,
		}},
		{"hex_literal", "0xFF", []token.TokenType{token.INT, token.EOF}},
		{"binary_literal", "0b101", []token.TokenType{token.INT, token.EOF}},
		{"senary_literal", "0s12", []token.TokenType{token.INT, token.EOF}},
		{"float", "3.14", []token.TokenType{token.FLOAT, token.EOF}},
		{"string", `"hello"`, []token.TokenType{token.STRING, token.EOF}},
		{"keywords", "if else while for in match return", []token.TokenType{
			token.IF, token.ELSE, token.WHILE, token.FOR, token.IN, token.MATCH, token.RETURN, token.EOF,
		}},
		{"double_colon", "Foo::bar", []token.TokenType{token.IDENT, token.DOUBLE_COLON, token.IDENT, token.EOF}},
		{"line_comment", "a = 1 // trailing\nb = 2", []token.TokenType{
			token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.IDENT, token.ASSIGN, token.INT, token.EOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := lexer.All(tc.input)
			if len(toks) != len(tc.want) {
				t.Fatalf("%s: got %d tokens, want %d (%v)", tc.name, len(toks), len(tc.want), toks)
			}
			for i, tt := range tc.want {
				if toks[i].Type != tt {
					t.Errorf("%s: token %d: got %v, want %v", tc.name, i, toks[i].Type, tt)
				}
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := lexer.All("10g")
	if toks[0].Literal.(int64) != 10 {
		t.Errorf("got %v, want 10", toks[0].Literal)
	}

	toks = lexer.All("0xFF")
	if toks[0].Literal.(int64) != 255 {
		t.Errorf("got %v, want 255", toks[0].Literal)
	}

	toks = lexer.All("0b101")
	if toks[0].Literal.(int64) != 5 {
		t.Errorf("got %v, want 5", toks[0].Literal)
	}
}

func TestOutOfRangeIDIsIllegal(t *testing.T) {
	toks := lexer.All("1000g")
	if toks[0].Type != token.ILLEGAL {
		t.Errorf("expected ILLEGAL for out-of-range id, got %v", toks[0].Type)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := lexer.New(`"abc`)
	_ = l.NextToken()
	if len(l.Errors) == 0 {
		t.Errorf("expected an unterminated-string error")
	}
}
