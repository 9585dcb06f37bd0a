package lexer_test

import (
	"testing"

	"github.com/dbohdan/memdb/lexer"
	"github.com/dbohdan/memdb/token"
)

func tokenize(t *testing.T, input string) []token.Item {
	t.Helper()
	items, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", input, err)
	}
	return items
}

func TestBasicTokens(t *testing.T) {
	items := tokenize(t, `create table t ( a : int { unique, auto, key } )`)
	want := []token.Token{
		token.CREATE, token.TABLE, token.IDENT, token.LPAR,
		token.IDENT, token.COLON, token.INT32, token.LBRC,
		token.UNIQUE, token.COMMA, token.AUTO, token.COMMA, token.KEY, token.RBRC,
		token.RPAR, token.EOF,
	}
	if len(items) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(items), len(want), items)
	}
	for i, it := range items {
		if it.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, it.Type, want[i])
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	items := tokenize(t, `<= >= != && || ^^`)
	want := []token.Token{token.LE, token.GE, token.NE, token.AND, token.OR, token.XOR, token.EOF}
	for i, it := range items {
		if it.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, it.Type, want[i])
		}
	}
}

func TestBareAmpAndCaretAreIllegal(t *testing.T) {
	if _, err := lexer.Tokenize(`a & b`); err == nil {
		t.Error("expected an error for bare &")
	}
	if _, err := lexer.Tokenize(`a ^ b`); err == nil {
		t.Error("expected an error for bare ^")
	}
}

func TestBarePipeIsToken(t *testing.T) {
	items := tokenize(t, `|`)
	if items[0].Type != token.PIPE {
		t.Errorf("got %s, want PIPE", items[0].Type)
	}
}

func TestIntegerLiterals(t *testing.T) {
	items := tokenize(t, `0 42 0x1A 0XFF`)
	want := []token.Token{token.INT_LIT, token.INT_LIT, token.BYTES_LIT, token.BYTES_LIT, token.EOF}
	for i, it := range items {
		if it.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, it.Type, want[i])
		}
	}
}

func TestLeadingZeroIsIllegal(t *testing.T) {
	if _, err := lexer.Tokenize(`007`); err == nil {
		t.Error("expected an error for a leading-zero integer literal")
	}
}

func TestStringLiteralVerbatim(t *testing.T) {
	items := tokenize(t, `"hello \"world\""`)
	if items[0].Type != token.STR_LIT {
		t.Fatalf("got %s, want STR_LIT", items[0].Type)
	}
	want := `hello \"world\"`
	if items[0].Value != want {
		t.Errorf("got %q, want %q (verbatim, no escape decoding)", items[0].Value, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	if _, err := lexer.Tokenize(`"unterminated`); err == nil {
		t.Error("expected an error for an unterminated string literal")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	items := tokenize(t, "a\nb  c")
	if items[0].Pos.Line != 1 || items[0].Pos.Column != 1 {
		t.Errorf("token 0: got %v, want line 1 col 1", items[0].Pos)
	}
	if items[1].Pos.Line != 2 || items[1].Pos.Column != 1 {
		t.Errorf("token 1: got %v, want line 2 col 1", items[1].Pos)
	}
	if items[2].Pos.Line != 2 || items[2].Pos.Column != 4 {
		t.Errorf("token 2: got %v, want line 2 col 4", items[2].Pos)
	}
}

func TestPooledLexerReset(t *testing.T) {
	l := lexer.Get("a b")
	defer lexer.Put(l)
	first, err := l.Next()
	if err != nil || first.Type != token.IDENT {
		t.Fatalf("unexpected first token: %v, %v", first, err)
	}
	l.Reset("c")
	it, err := l.Next()
	if err != nil || it.Value != "c" {
		t.Fatalf("Reset did not rewind the lexer: %v, %v", it, err)
	}
}
