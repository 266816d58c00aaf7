package calc

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"2.", []lexToken{{text: "2.", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1e", []lexToken{{pos: 1}}, 1},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}}, 0},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}}, 1},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}}, 0},
		{".", []lexToken{{pos: 1}}, 1},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}}, 0},
		{".1e1", []lexToken{{text: ".1e1", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1*0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1e5*2", []lexToken{{text: "1e5", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 4}, {text: "2", kind: tokenNum, pos: 5}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		{"1a", []lexToken{{pos: 1}}, 1},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 1}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 1}}, 0},
		{"sin(", []lexToken{{text: "sin", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 4}}, 0},
		{"math.pi", []lexToken{{text: "math", kind: tokenIdent, pos: 1}, {pos: 5}, {text: "i", kind: tokenIdent, pos: 7}}, 1},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"%", []lexToken{{text: "%", kind: tokenOp, pos: 1}}, 0},
		{"**", []lexToken{{text: "**", kind: tokenOp, pos: 1}}, 0},
		{"^", []lexToken{{text: "**", kind: tokenOp, pos: 1}}, 0},
		{"***", []lexToken{{text: "**", kind: tokenOp, pos: 1}, {text: "*", kind: tokenOp, pos: 3}}, 0},
		{"2^3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "**", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}}, 0},
		{"2**3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "**", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 4}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		// calls
		{"f(1,2)", []lexToken{
			{text: "f", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenOpen, pos: 2},
			{text: "1", kind: tokenNum, pos: 3},
			{text: ",", kind: tokenSep, pos: 4},
			{text: "2", kind: tokenNum, pos: 5},
			{text: ")", kind: tokenClose, pos: 6},
		}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"0$", []lexToken{{pos: 1}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
		{"'x'", []lexToken{{pos: 1}, {text: "x", kind: tokenIdent, pos: 2}, {pos: 3}}, 2},
		{"[1]", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		var got []lexToken
		errs := 0
		for {
			tok, err := scan.next()
			if err != nil {
				var le *LexError
				if !errors.As(err, &le) {
					t.Fatalf("scanning %q: non-lexer error %v", c.src, err)
				}
				errs++
			}
			if tok.kind == tokenEOF {
				break
			}
			got = append(got, tok)
		}
		if !slices.Equal(got, c.tokens) {
			t.Errorf("scanning %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, got)
		}
		if errs != c.errs {
			t.Errorf("scanning %q: want %d errors, got %d", c.src, c.errs, errs)
		}
	}
}

func TestLexErrorPos(t *testing.T) {
	cases := []struct {
		src  string
		col  int
		text string
	}{
		{"$", 1, "$"},
		{"1 $ 2", 3, "$"},
		{"12a", 3, "12a"},
		{"open('x')", 6, "'"},
	}
	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for {
			tok, err := scan.next()
			if err != nil {
				le, ok := err.(*LexError)
				if !ok {
					t.Fatalf("scanning %q: %#v is not *LexError", c.src, err)
				}
				if le.Pos() != c.col {
					t.Errorf("scanning %q: want error at %d, got %d", c.src, c.col, le.Pos())
				}
				if le.Text != c.text {
					t.Errorf("scanning %q: want error text %q, got %q", c.src, c.text, le.Text)
				}
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("scanning %q: %v is not ErrSyntax", c.src, err)
				}
				break
			}
			if tok.kind == tokenEOF {
				t.Errorf("scanning %q: no error", c.src)
				break
			}
		}
	}
}
