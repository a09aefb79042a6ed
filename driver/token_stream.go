package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// Token is a terminal read from a source text. Row and Col are 0-origin; Col is counted in code points.
type Token struct {
	Terminal symbol.Symbol
	Lexeme   string
	Row      int
	Col      int

	// When this field is true, it means the token is the EOF token.
	EOF bool

	// When this field is true, the lexeme matches no terminal of the grammar. Terminal then holds the lexeme
	// itself, which no rule derives.
	Invalid bool
}

type TokenStream interface {
	Next() (*Token, error)
}

// ReadWord reads tokens until EOF and returns their terminals.
func ReadWord(ts TokenStream) ([]symbol.Symbol, error) {
	var word []symbol.Symbol
	for {
		tok, err := ts.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return word, nil
		}
		word = append(word, tok.Terminal)
	}
}

type runeConfig struct {
	skipSpaces bool
}

type RuneOption func(config *runeConfig)

// SkipSpaces makes a rune token stream drop white space characters.
func SkipSpaces() RuneOption {
	return func(config *runeConfig) {
		config.skipSpaces = true
	}
}

type runeTokenStream struct {
	r      *bufio.Reader
	config *runeConfig
	row    int
	col    int
}

// NewRuneTokenStream returns a token stream yielding every character of src as a terminal named after it.
func NewRuneTokenStream(src io.Reader, opts ...RuneOption) (TokenStream, error) {
	config := &runeConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &runeTokenStream{
		r:      bufio.NewReader(src),
		config: config,
	}, nil
}

func (s *runeTokenStream) Next() (*Token, error) {
	for {
		c, _, err := s.r.ReadRune()
		if err == io.EOF {
			return &Token{
				Row: s.row,
				Col: s.col,
				EOF: true,
			}, nil
		}
		if err != nil {
			return nil, err
		}

		row, col := s.row, s.col
		if c == '\n' {
			s.row++
			s.col = 0
		} else {
			s.col++
		}
		if s.config.skipSpaces && unicode.IsSpace(c) {
			continue
		}

		return &Token{
			Terminal: symbol.Symbol(string(c)),
			Lexeme:   string(c),
			Row:      row,
			Col:      col,
		}, nil
	}
}

const lexKindWhiteSpace = "white_space"

// LexicalSpec is a lexical specification whose kinds are the terminals of a grammar. It recognizes the longest
// terminal name at each position and skips white spaces.
type LexicalSpec struct {
	spec           *mlspec.CompiledLexSpec
	kindToTerminal []symbol.Symbol
	skip           []bool
}

// CompileLexicalSpec compiles the lexical specification of the terminals of g.
func CompileLexicalSpec(g *grammar.Grammar) (*LexicalSpec, error) {
	terms := g.Terminals()
	entries := make([]*mlspec.LexEntry, 0, len(terms)+1)
	kind2Term := map[mlspec.LexKindName]symbol.Symbol{}
	for i, term := range terms {
		kind := mlspec.LexKindName(fmt.Sprintf("t%v", i+1))
		entries = append(entries, &mlspec.LexEntry{
			Kind:    kind,
			Pattern: mlspec.LexPattern(mlspec.EscapePattern(term.Name())),
		})
		kind2Term[kind] = term
	}
	entries = append(entries, &mlspec.LexEntry{
		Kind:    lexKindWhiteSpace,
		Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`,
	})

	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    "terminals",
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v: %v", kind2Term[cErrs[0].Kind], cErrs[0].Cause)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n%v: %v", kind2Term[cerr.Kind], cerr.Cause)
			}
			return nil, fmt.Errorf("cannot compile the terminals of the grammar: %v", b.String())
		}
		return nil, err
	}

	kindToTerminal := make([]symbol.Symbol, len(clspec.KindNames))
	skip := make([]bool, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}
		if k == lexKindWhiteSpace {
			skip[i] = true
			continue
		}
		term, ok := kind2Term[k]
		if !ok {
			return nil, fmt.Errorf("a lexical kind '%v' was not found in the grammar", k)
		}
		kindToTerminal[i] = term
	}

	return &LexicalSpec{
		spec:           clspec,
		kindToTerminal: kindToTerminal,
		skip:           skip,
	}, nil
}

type lexTokenStream struct {
	lex  *mldriver.Lexer
	spec *LexicalSpec
}

// NewLexTokenStream returns a token stream splitting src into the terminals of a grammar.
func NewLexTokenStream(ls *LexicalSpec, src io.Reader) (TokenStream, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(ls.spec), src)
	if err != nil {
		return nil, err
	}

	return &lexTokenStream{
		lex:  lex,
		spec: ls,
	}, nil
}

func (s *lexTokenStream) Next() (*Token, error) {
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.EOF:
			return &Token{
				Row: tok.Row,
				Col: tok.Col,
				EOF: true,
			}, nil
		case tok.Invalid:
			return &Token{
				Terminal: symbol.Symbol(tok.Lexeme),
				Lexeme:   string(tok.Lexeme),
				Row:      tok.Row,
				Col:      tok.Col,
				Invalid:  true,
			}, nil
		case s.spec.skip[tok.KindID]:
			continue
		}

		return &Token{
			Terminal: s.spec.kindToTerminal[tok.KindID],
			Lexeme:   string(tok.Lexeme),
			Row:      tok.Row,
			Col:      tok.Col,
		}, nil
	}
}
