package lexer

import (
	"errors"
	"strings"
	"testing"

	"cool-frontend/utils"
)

func lexAll(t *testing.T, src string) ([]Token, *utils.ErrorLog) {
	t.Helper()
	errs := utils.NewErrorLog(nil)
	l := NewLexer(strings.NewReader(src), errs, nil)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, errs
		}
		if len(toks) > 1000 {
			t.Fatal("lexer did not reach EOF")
		}
	}
}

func TestNextToken(t *testing.T) {
	src := `class Main inherits IO {
	x : Int <- 42;
	f(a : Bool) : Object { if not a then isvoid x else ~x fi };
};`
	want := []struct {
		typ     TokenType
		literal string
	}{
		{CLASS, "class"}, {TYPEID, "Main"}, {INHERITS, "inherits"}, {TYPEID, "IO"}, {LBRACE, "{"},
		{OBJECTID, "x"}, {COLON, ":"}, {TYPEID, "Int"}, {ASSIGN, "<-"}, {INT_CONST, "42"}, {SEMI, ";"},
		{OBJECTID, "f"}, {LPAREN, "("}, {OBJECTID, "a"}, {COLON, ":"}, {TYPEID, "Bool"}, {RPAREN, ")"},
		{COLON, ":"}, {TYPEID, "Object"}, {LBRACE, "{"}, {IF, "if"}, {NOT, "not"}, {OBJECTID, "a"},
		{THEN, "then"}, {ISVOID, "isvoid"}, {OBJECTID, "x"}, {ELSE, "else"}, {NEG, "~"}, {OBJECTID, "x"},
		{FI, "fi"}, {RBRACE, "}"}, {SEMI, ";"}, {RBRACE, "}"}, {SEMI, ";"}, {EOF, ""},
	}

	toks, errs := lexAll(t, src)
	if errs.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", errs.Diagnostics())
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Literal != w.literal {
			t.Errorf("token %d = %s %q, want %s %q", i, toks[i].Type, toks[i].Literal, w.typ, w.literal)
		}
	}
}

func TestPositions(t *testing.T) {
	toks, _ := lexAll(t, "class\n  Foo")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("class at %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 3 {
		t.Errorf("Foo at %d:%d, want 2:3", toks[1].Line, toks[1].Column)
	}
}

func TestKeywordCase(t *testing.T) {
	tests := []struct {
		word string
		want TokenType
	}{
		{"CLASS", CLASS},
		{"While", WHILE},
		{"isVoid", ISVOID},
		{"true", BOOL_CONST},
		{"fALSE", BOOL_CONST},
		{"True", TYPEID},
		{"self", OBJECTID},
		{"SELF_TYPE", TYPEID},
	}
	for _, tt := range tests {
		toks, _ := lexAll(t, tt.word)
		if toks[0].Type != tt.want {
			t.Errorf("%q lexed as %s, want %s", tt.word, toks[0].Type, tt.want)
		}
	}
}

func TestOperators(t *testing.T) {
	toks, _ := lexAll(t, "<- <= < => = + - * / . @")
	want := []TokenType{ASSIGN, LE, LT, DARROW, EQ, PLUS, MINUS, TIMES, DIVIDE, DOT, AT, EOF}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d = %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestStrings(t *testing.T) {
	toks, errs := lexAll(t, `"a\tb\"c" "line\
next"`)
	if errs.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", errs.Diagnostics())
	}
	if toks[0].Literal != "a\tb\"c" {
		t.Errorf("first string = %q", toks[0].Literal)
	}
	if toks[1].Literal != "line\nnext" {
		t.Errorf("second string = %q", toks[1].Literal)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated", "\"abc\nx", "Unterminated string constant"},
		{"eof", `"abc`, "EOF in string constant"},
		{"too long", `"` + strings.Repeat("a", MaxStringLength+1) + `"`, "String constant too long"},
		{"bad char", "#", "Unexpected character: #"},
		{"huge int", "99999999999999999999999", "Number out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := lexAll(t, tt.src)
			if toks[0].Type != ERROR || toks[0].Literal != tt.msg {
				t.Errorf("first token = %s %q, want ERROR %q", toks[0].Type, toks[0].Literal, tt.msg)
			}
			diags := errs.Diagnostics()
			if len(diags) != 1 || diags[0].Stage != "Lexer" || diags[0].Message != tt.msg {
				t.Errorf("diagnostics = %v", diags)
			}
		})
	}
}

func TestRemoveComments(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"dash line", "a -- note\nb", "a \nb"},
		{"slash line", "a // note\nb", "a \nb"},
		{"nested block", "a (* x (* y *) z *) b", "a  b"},
		{"block keeps newlines", "a (* x\ny *) b", "a \n b"},
		{"c block", "a /* x\n */b", "a \nb"},
		{"string untouched", `s <- "-- not (* a comment";`, `s <- "-- not (* a comment";`},
		{"escaped quote", `"a\"--b" -- c`, `"a\"--b" `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemoveComments(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("RemoveComments(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}

	if _, err := RemoveComments(strings.NewReader("a (* b (* c *)")); !errors.Is(err, ErrUnterminatedComment) {
		t.Errorf("err = %v, want ErrUnterminatedComment", err)
	}
}
