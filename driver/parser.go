package driver

import (
	"context"
	"io"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
)

type ParserOption func(p *Parser) error

// FillOptions passes options to (*Chart).Fill.
func FillOptions(opts ...FillOption) ParserOption {
	return func(p *Parser) error {
		p.fillOpts = append(p.fillOpts, opts...)
		return nil
	}
}

// Parser runs the whole pipeline: it builds the chart of a word, fills it, and leaves the result to be queried.
// A Parser can be used for any number of words.
type Parser struct {
	gram     *grammar.Grammar
	fillOpts []FillOption
}

// NewParser returns a parser of gram. When gram is not in Chomsky normal form, NewParser returns an error
// wrapping grammar.ErrNotCNF; no word can be parsed with such a grammar.
func NewParser(gram *grammar.Grammar, opts ...ParserOption) (*Parser, error) {
	if err := grammar.ValidateCNF(gram); err != nil {
		return nil, err
	}

	p := &Parser{
		gram: gram,
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Parser) Grammar() *grammar.Grammar {
	return p.gram
}

// Parse returns the filled chart of word. A word the grammar doesn't generate is not an error; use
// (*Chart).Accepted to know the result. Parse returns ErrEmptyWord for the empty word.
func (p *Parser) Parse(ctx context.Context, word []symbol.Symbol) (*Chart, error) {
	c, err := Initialize(p.gram, word)
	if err != nil {
		return nil, err
	}
	err = c.Fill(ctx, p.fillOpts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ParseTokens reads a word from ts and parses it.
func (p *Parser) ParseTokens(ctx context.Context, ts TokenStream) (*Chart, error) {
	word, err := ReadWord(ts)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, word)
}

// ParseText splits src into a word with one terminal per character and parses it.
func (p *Parser) ParseText(ctx context.Context, src io.Reader, opts ...RuneOption) (*Chart, error) {
	ts, err := NewRuneTokenStream(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseTokens(ctx, ts)
}
