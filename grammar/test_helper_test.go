package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/cyk/grammar/symbol"
	"github.com/nihei9/cyk/spec/grammar/parser"
)

func buildGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse a grammar: %v", err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return g
}

type testRuleGenerator func(lhs string, rhs ...string) *Rule

func newTestRuleGenerator(t *testing.T) testRuleGenerator {
	return func(lhs string, rhs ...string) *Rule {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, symbol.Symbol(text))
		}
		rule, err := NewRule(symbol.Symbol(lhs), rhsSym...)
		if err != nil {
			t.Fatalf("failed to create a rule: %v", err)
		}

		return rule
	}
}
