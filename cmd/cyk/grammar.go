package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/nihei9/cyk/driver"
	verr "github.com/nihei9/cyk/error"
	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/spec/grammar/parser"
	"github.com/pkg/errors"
)

const (
	lexerRune    = "rune"
	lexerGrammar = "grammar"
)

func readGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open the grammar file %s", path)
	}
	defer f.Close()

	ast, err := parser.Parse(f)
	if err != nil {
		return nil, withSourceName(err, path)
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		return nil, withSourceName(err, path)
	}
	return g, nil
}

func withSourceName(err error, path string) error {
	specErrs, ok := err.(verr.SpecErrors)
	if !ok {
		return err
	}
	for _, e := range specErrs {
		e.FilePath = path
		e.SourceName = path
	}
	return specErrs
}

// newTokenStream returns a token stream of the lexer named kind.
func newTokenStream(g *grammar.Grammar, kind string, src io.Reader) (driver.TokenStream, error) {
	switch kind {
	case lexerRune:
		return driver.NewRuneTokenStream(src, driver.SkipSpaces())
	case lexerGrammar:
		ls, err := driver.CompileLexicalSpec(g)
		if err != nil {
			return nil, err
		}
		return driver.NewLexTokenStream(ls, src)
	}
	return nil, fmt.Errorf("unknown lexer: %v (available: %v, %v)", kind, lexerRune, lexerGrammar)
}

func newLexicalSpec(g *grammar.Grammar, kind string) (*driver.LexicalSpec, error) {
	switch kind {
	case lexerRune:
		return nil, nil
	case lexerGrammar:
		return driver.CompileLexicalSpec(g)
	}
	return nil, fmt.Errorf("unknown lexer: %v (available: %v, %v)", kind, lexerRune, lexerGrammar)
}

// reportPanic turns a panic into an error and prints a stack trace. A command calls it in a deferred function.
func reportPanic(v interface{}, retErr *error) {
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}
