package lexer

import (
	"testing"

	"github.com/corelang/corelang/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := collect("val x = if (y) 1 else 2")
	want := []token.Type{token.VAL, token.IDENT, token.EQUALS, token.IF, token.LPAREN,
		token.IDENT, token.RPAREN, token.INT, token.ELSE, token.INT, token.EOF}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOperatorSpellingIsOneToken(t *testing.T) {
	toks := collect("a <+> b")
	if toks[1].Type != token.IDENT || toks[1].Name != "<+>" {
		t.Fatalf("expected IDENT(<+>), got %s(%q)", toks[1].Type, toks[1].Name)
	}
}

func TestRightAssociativeColonSpelling(t *testing.T) {
	toks := collect("a :: b")
	if toks[1].Name != "::" {
		t.Fatalf("expected '::' operator, got %q", toks[1].Name)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := collect(`"a\nb"`)
	if toks[0].Type != token.STRING || toks[0].Name != "a\nb" {
		t.Fatalf("got %s(%q)", toks[0].Type, toks[0].Name)
	}
}

func TestTripleQuotedRawString(t *testing.T) {
	toks := collect(`"""a\nb"""`)
	if toks[0].Type != token.STRING || toks[0].Name != `a\nb` {
		t.Fatalf("got %s(%q)", toks[0].Type, toks[0].Name)
	}
}

func TestBackquotedIdentifier(t *testing.T) {
	toks := collect("`class`")
	if toks[0].Type != token.BACKQUOTED_IDENT || !toks[0].Backquoted || toks[0].Name != "class" {
		t.Fatalf("got %#v", toks[0])
	}
}

func TestNewlineOutsideParensSeparatesStatements(t *testing.T) {
	toks := collect("val x = 1\nval y = 2")
	found := false
	for _, tok := range toks {
		if tok.Type == token.NEWLINE {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a NEWLINE token, got %v", types(toks))
	}
}

func TestNewlineInsideParensIsSuppressed(t *testing.T) {
	toks := collect("f(1,\n2)")
	for _, tok := range toks {
		if tok.Type == token.NEWLINE || tok.Type == token.NEWLINES {
			t.Fatalf("unexpected statement separator inside parens: %v", types(toks))
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Type
	}{
		{"42", token.INT},
		{"42L", token.LONG},
		{"3.14", token.DOUBLE},
		{"3.14f", token.FLOAT},
		{"0xFF", token.INT},
	}
	for _, c := range cases {
		toks := collect(c.input)
		if toks[0].Type != c.kind {
			t.Errorf("%q: got %s, want %s", c.input, toks[0].Type, c.kind)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := New("abc def")
	first := l.NextToken()
	snap := l.Snapshot()
	second := l.NextToken()
	l.Restore(snap)
	replay := l.NextToken()
	if second.Name != replay.Name || first.Name == second.Name {
		t.Fatalf("snapshot/restore mismatch: first=%q second=%q replay=%q", first.Name, second.Name, replay.Name)
	}
}
