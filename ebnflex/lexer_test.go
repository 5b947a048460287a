package ebnflex

import (
	"io"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

const testGrammar = `
List   = item { comma item } .
item   = word | number .
word   = letter { letter } .
number = digit { digit } .
letter = "a" … "z" .
digit  = "0" … "9" .
comma  = "," | "," " " .
`

func mustGrammar(t *testing.T) ebnf.Grammar {
	t.Helper()
	g, err := ParseGrammar("test.ebnf", strings.NewReader(testGrammar), "List")
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func TestLexerTokens(t *testing.T) {
	g := mustGrammar(t)
	kinds := []string{"word", "number", "comma"}

	tests := []struct {
		input    string
		expected []string
	}{
		{"", []string{KindEOF}},
		{"abc", []string{"word", KindEOF}},
		{"7", []string{"number", KindEOF}},
		{"abc,12", []string{"word", "comma", "number", KindEOF}},
		{"abc, 12", []string{"word", "comma", "number", KindEOF}},
		{"ab1", []string{"word", "number", KindEOF}},
		{"ab?", []string{"word", KindError, KindEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(g, kinds, []byte(tt.input), "").Tokenize()
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			var got []string
			for _, tok := range tokens {
				got = append(got, tok.Kind)
			}
			if strings.Join(got, " ") != strings.Join(tt.expected, " ") {
				t.Errorf("kinds = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLexerLongestMatch(t *testing.T) {
	g := mustGrammar(t)
	lexer := NewLexer(g, []string{"comma"}, []byte(", "), "")

	tok, err := lexer.NextToken()
	if err != nil {
		t.Fatalf("NextToken: %v", err)
	}
	if tok.Literal != ", " {
		t.Errorf("Literal = %q, want %q", tok.Literal, ", ")
	}
	if _, err := lexer.NextToken(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestLexerTiesPreferFirstKind(t *testing.T) {
	g := mustGrammar(t)

	tok, _ := NewLexer(g, []string{"item", "word"}, []byte("abc"), "").NextToken()
	if tok.Kind != "item" {
		t.Errorf("Kind = %q, want %q", tok.Kind, "item")
	}
	tok, _ = NewLexer(g, []string{"word", "item"}, []byte("abc"), "").NextToken()
	if tok.Kind != "word" {
		t.Errorf("Kind = %q, want %q", tok.Kind, "word")
	}
}

func TestLexerPositions(t *testing.T) {
	g, err := ParseGrammar("nl.ebnf", strings.NewReader(`
		Lines = word { nl word } .
		word = "a" … "z" { "a" … "z" } .
		nl = "\n" .
	`), "Lines")
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}

	tokens, err := NewLexer(g, []string{"word", "nl"}, []byte("ab\ncd"), "in.txt").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(tokens) != 4 {
		t.Fatalf("got %d tokens, want 4", len(tokens))
	}

	last := tokens[2]
	if last.Literal != "cd" {
		t.Fatalf("Literal = %q, want %q", last.Literal, "cd")
	}
	want := Position{Filename: "in.txt", Offset: 3, Line: 2, Column: 1}
	if last.Position != want {
		t.Errorf("Position = %+v, want %+v", last.Position, want)
	}
	if got := last.Position.String(); got != "in.txt:2:1" {
		t.Errorf("String() = %q, want %q", got, "in.txt:2:1")
	}
}

func TestParseGrammarVerifies(t *testing.T) {
	_, err := ParseGrammar("bad.ebnf", strings.NewReader(`
		Start = missing .
	`), "Start")
	if err == nil {
		t.Fatal("expected verification error for undefined production")
	}
	if !strings.Contains(err.Error(), "verify grammar") {
		t.Errorf("err = %v, want verify grammar error", err)
	}
}

func TestParseGrammarSyntaxOnly(t *testing.T) {
	if _, err := ParseGrammar("ok.ebnf", strings.NewReader(`Start = missing .`), ""); err != nil {
		t.Errorf("syntax-only parse failed: %v", err)
	}
}
