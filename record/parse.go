package record

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"github.com/dhamidi/cubes/ebnflex"
	"golang.org/x/exp/ebnf"
)

// GrammarSource is the EBNF grammar of record files.
//
//go:embed record.ebnf
var GrammarSource string

// StartProduction is the production a whole input must match.
const StartProduction = "Input"

// Token kinds, named after the lexical productions of record.ebnf.
const (
	tokGame      = "game"
	tokColor     = "color"
	tokNumber    = "number"
	tokColon     = "colon"
	tokSemicolon = "semicolon"
	tokComma     = "comma"
	tokSpace     = "space"
	tokNewline   = "newline"
)

var tokenKinds = []string{
	tokGame,
	tokColor,
	tokNumber,
	tokColon,
	tokSemicolon,
	tokComma,
	tokSpace,
	tokNewline,
}

var loadGrammar = sync.OnceValues(func() (ebnf.Grammar, error) {
	return ebnflex.ParseGrammar("record.ebnf", bytes.NewReader([]byte(GrammarSource)), StartProduction)
})

// Grammar returns the parsed and verified record grammar.
func Grammar() (ebnf.Grammar, error) {
	return loadGrammar()
}

// ParseError reports input that does not match the record grammar.
type ParseError struct {
	Pos       ebnflex.Position
	Expected  string
	Found     string // offending token text; empty at end of input
	Remainder string // rest of the offending line, starting at Pos
	Err       error
}

func (e *ParseError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = strconv.Quote(e.Found)
	}
	msg := fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, found)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Option func(*parser)

// WithFile names the input in error positions.
func WithFile(path string) Option {
	return func(p *parser) {
		p.file = path
	}
}

type parser struct {
	file   string
	input  []byte
	tokens []ebnflex.Token
	pos    int
}

// Parse parses every record in text. The whole input must match the
// grammar; the first mismatch aborts the parse with a *ParseError.
func Parse(text string, opts ...Option) ([]Record, error) {
	p := &parser{input: []byte(text)}
	for _, opt := range opts {
		opt(p)
	}

	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	p.tokens, err = ebnflex.NewLexer(g, tokenKinds, p.input, p.file).Tokenize()
	if err != nil {
		return nil, err
	}

	return p.parseInput()
}

func (p *parser) peek() ebnflex.Token {
	if p.pos >= len(p.tokens) {
		return ebnflex.Token{Kind: ebnflex.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() ebnflex.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind, what string) (ebnflex.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errorAt(tok, what, nil)
	}
	return p.advance(), nil
}

func (p *parser) errorAt(tok ebnflex.Token, expected string, err error) *ParseError {
	start := tok.Position.Offset
	end := start
	for end < len(p.input) && p.input[end] != '\n' && p.input[end] != '\r' {
		end++
	}
	return &ParseError{
		Pos:       tok.Position,
		Expected:  expected,
		Found:     tok.Literal,
		Remainder: string(p.input[start:end]),
		Err:       err,
	}
}

func (p *parser) parseInput() ([]Record, error) {
	var records []Record
	for {
		r, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, r)

		if p.peek().Kind != tokNewline {
			break
		}
		p.advance()
	}

	if tok := p.peek(); tok.Kind != ebnflex.KindEOF {
		return nil, p.errorAt(tok, `"; ", ", ", line break or end of input`, nil)
	}
	return records, nil
}

func (p *parser) parseRecord() (Record, error) {
	if _, err := p.expect(tokGame, `"Game"`); err != nil {
		return Record{}, err
	}
	if _, err := p.expect(tokSpace, `" "`); err != nil {
		return Record{}, err
	}
	id, err := p.parseNumber("game identifier")
	if err != nil {
		return Record{}, err
	}
	if _, err := p.expect(tokColon, `":"`); err != nil {
		return Record{}, err
	}
	if _, err := p.expect(tokSpace, `" "`); err != nil {
		return Record{}, err
	}

	var draws []Draw
	for {
		d, err := p.parseDraw()
		if err != nil {
			return Record{}, err
		}
		draws = append(draws, d)

		if p.peek().Kind != tokSemicolon {
			break
		}
		p.advance()
		if _, err := p.expect(tokSpace, `" "`); err != nil {
			return Record{}, err
		}
	}

	return Record{ID: id, Draws: draws}, nil
}

func (p *parser) parseDraw() (Draw, error) {
	var counts []ColorCount
	for {
		cc, err := p.parseColorCount()
		if err != nil {
			return Draw{}, err
		}
		counts = append(counts, cc)

		if p.peek().Kind != tokComma {
			break
		}
		p.advance()
		if _, err := p.expect(tokSpace, `" "`); err != nil {
			return Draw{}, err
		}
	}
	return NewDraw(counts...), nil
}

func (p *parser) parseColorCount() (ColorCount, error) {
	n, err := p.parseNumber("cube count")
	if err != nil {
		return ColorCount{}, err
	}
	if _, err := p.expect(tokSpace, `" "`); err != nil {
		return ColorCount{}, err
	}
	tok, err := p.expect(tokColor, "color (red, green or blue)")
	if err != nil {
		return ColorCount{}, err
	}
	c, ok := ParseColor(tok.Literal)
	if !ok {
		return ColorCount{}, p.errorAt(tok, "color (red, green or blue)", nil)
	}
	return ColorCount{Color: c, Count: n}, nil
}

func (p *parser) parseNumber(what string) (int, error) {
	tok, err := p.expect(tokNumber, what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return 0, p.errorAt(tok, what, err)
	}
	return n, nil
}
