package driver

import (
	"context"
	"strings"
	"testing"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
	"github.com/nihei9/cyk/spec/grammar/parser"
)

const (
	srcG1 = `
#name g1;

S : A B | a ;
A : S B | b ;
B : b ;
`
	srcG2 = `
#name g2;

S : A S | b ;
A : a ;
`
	srcG3 = `
#name g3;

S : S A | a ;
A : B S | C S ;
B : b ;
C : c ;
`
)

func buildGrammar(t *testing.T, src string) *grammar.Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse a grammar: %v", err)
	}
	b := grammar.GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return g
}

// wordOf splits s into one symbol per character.
func wordOf(s string) []symbol.Symbol {
	var w []symbol.Symbol
	for _, c := range s {
		w = append(w, symbol.Symbol(string(c)))
	}
	return w
}

func parseWord(t *testing.T, g *grammar.Grammar, word string, opts ...FillOption) *Chart {
	t.Helper()

	c, err := Initialize(g, wordOf(word))
	if err != nil {
		t.Fatalf("failed to initialize a chart: %v", err)
	}
	err = c.Fill(context.Background(), opts...)
	if err != nil {
		t.Fatalf("failed to fill a chart: %v", err)
	}
	return c
}

func treeKeys(trees []*Tree) map[string]struct{} {
	keys := map[string]struct{}{}
	for _, t := range trees {
		keys[t.Key()] = struct{}{}
	}
	return keys
}
