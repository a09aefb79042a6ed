package parser

import (
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/nihei9/cyk/error"
	spec "github.com/nihei9/cyk/spec/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID              = tokenKind("id")
	tokenKindQuoted          = tokenKind("quoted")
	tokenKindColon           = tokenKind(":")
	tokenKindOr              = tokenKind("|")
	tokenKindSemicolon       = tokenKind(";")
	tokenKindDirectiveMarker = tokenKind("#")
	tokenKindEOF             = tokenKind("eof")
	tokenKindInvalid         = tokenKind("invalid")
)

type token struct {
	kind tokenKind
	text string
	pos  spec.Position
}

func newSymbolToken(kind tokenKind, pos spec.Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newIDToken(text string, pos spec.Position) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		pos:  pos,
	}
}

func newQuotedToken(text string, pos spec.Position) *token {
	return &token{
		kind: tokenKindQuoted,
		text: text,
		pos:  pos,
	}
}

func newEOFToken() *token {
	return &token{
		kind: tokenKindEOF,
	}
}

func newInvalidToken(text string, pos spec.Position) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
	}
}

const (
	kindWhiteSpace      = "white_space"
	kindNewline         = "newline"
	kindLineComment     = "line_comment"
	kindIdentifier      = "identifier"
	kindQuoted          = "quoted"
	kindUnclosedQuoted  = "unclosed_quoted"
	kindColon           = "colon"
	kindOr              = "or"
	kindSemicolon       = "semicolon"
	kindDirectiveMarker = "directive_marker"
)

func newLexSpec() *mlspec.LexSpec {
	entry := func(kind, pattern string) *mlspec.LexEntry {
		return &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(pattern),
		}
	}
	return &mlspec.LexSpec{
		Name: "grammar_description",
		Entries: []*mlspec.LexEntry{
			entry(kindWhiteSpace, `[\u{0009}\u{0020}]+`),
			entry(kindNewline, `\u{000A}|\u{000D}\u{000A}|\u{000D}`),
			entry(kindLineComment, `//[^\u{000A}\u{000D}]*`),
			entry(kindIdentifier, `[A-Za-z_][0-9A-Za-z_']*`),
			entry(kindQuoted, `'[^'\u{000A}\u{000D}]*'`),
			entry(kindUnclosedQuoted, `'[^'\u{000A}\u{000D}]*`),
			entry(kindColon, mlspec.EscapePattern(":")),
			entry(kindOr, mlspec.EscapePattern("|")),
			entry(kindSemicolon, mlspec.EscapePattern(";")),
			entry(kindDirectiveMarker, mlspec.EscapePattern("#")),
		},
	}
}

var (
	compiledLexSpec     *mlspec.CompiledLexSpec
	compiledLexSpecErr  error
	compiledLexSpecOnce sync.Once
)

// loadLexSpec compiles the lexical specification of the description language on first use.
func loadLexSpec() (*mlspec.CompiledLexSpec, error) {
	compiledLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(newLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
				}
				compiledLexSpecErr = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
				return
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := loadLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	var kind string
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(), nil
		}
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), spec.NewPosition(tok.Row+1, tok.Col+1)), nil
		}
		kind = l.s.KindNames[tok.KindID].String()
		switch kind {
		case kindWhiteSpace, kindNewline, kindLineComment:
			continue
		}

		break
	}

	pos := spec.NewPosition(tok.Row+1, tok.Col+1)
	switch kind {
	case kindIdentifier:
		return newIDToken(string(tok.Lexeme), pos), nil
	case kindQuoted:
		// Remove the quotes.
		text := string(tok.Lexeme[1 : len(tok.Lexeme)-1])
		if text == "" {
			return nil, &verr.SpecError{
				Cause: synErrEmptyLiteral,
				Row:   pos.Row,
				Col:   pos.Col,
			}
		}
		return newQuotedToken(text, pos), nil
	case kindUnclosedQuoted:
		return nil, &verr.SpecError{
			Cause: synErrUnclosedLiteral,
			Row:   pos.Row,
			Col:   pos.Col,
		}
	case kindColon:
		return newSymbolToken(tokenKindColon, pos), nil
	case kindOr:
		return newSymbolToken(tokenKindOr, pos), nil
	case kindSemicolon:
		return newSymbolToken(tokenKindSemicolon, pos), nil
	case kindDirectiveMarker:
		return newSymbolToken(tokenKindDirectiveMarker, pos), nil
	default:
		return newInvalidToken(string(tok.Lexeme), pos), nil
	}
}
