package driver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/cyk/grammar"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		caption  string
		gramSrc  string
		src      string
		lex      bool
		accepted bool
		trees    []string
	}{
		{
			caption:  "g1 accepts bb",
			gramSrc:  srcG1,
			src:      "bb",
			accepted: true,
			trees:    []string{"(S (A b) (B b))"},
		},
		{
			caption: "g1 rejects abab",
			gramSrc: srcG1,
			src:     "abab",
		},
		{
			caption:  "g2 accepts aaab",
			gramSrc:  srcG2,
			src:      "aaab",
			accepted: true,
			trees:    []string{"(S (A a) (S (A a) (S (A a) (S b))))"},
		},
		{
			caption:  "terminals longer than a character need the grammar lexer",
			gramSrc:  `E : E R | 'id' ; R : P E ; P : '+' ;`,
			src:      "id + id",
			lex:      true,
			accepted: true,
			trees:    []string{"(E (E id) (R (P '+') (E id)))"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := buildGrammar(t, tt.gramSrc)
			p, err := NewParser(g, FillOptions(Workers(2)))
			if err != nil {
				t.Fatal(err)
			}

			var c *Chart
			if tt.lex {
				ls, err := CompileLexicalSpec(g)
				if err != nil {
					t.Fatal(err)
				}
				ts, err := NewLexTokenStream(ls, strings.NewReader(tt.src))
				if err != nil {
					t.Fatal(err)
				}
				c, err = p.ParseTokens(context.Background(), ts)
				if err != nil {
					t.Fatal(err)
				}
			} else {
				c, err = p.ParseText(context.Background(), strings.NewReader(tt.src))
				if err != nil {
					t.Fatal(err)
				}
			}

			if c.Accepted() != tt.accepted {
				t.Fatalf("unexpected result; want: %v, got: %v", tt.accepted, c.Accepted())
			}
			trees := c.AcceptingTrees()
			if len(trees) != len(tt.trees) {
				t.Fatalf("unexpected number of trees; want: %v, got: %v", len(tt.trees), len(trees))
			}
			for i, tree := range trees {
				if tree.Format() != tt.trees[i] {
					t.Fatalf("unexpected tree; want: %v, got: %v", tt.trees[i], tree.Format())
				}
			}
		})
	}
}

func TestNewParser_Error(t *testing.T) {
	g := buildGrammar(t, `S : A b ; A : a ;`)
	_, err := NewParser(g)
	if !errors.Is(err, grammar.ErrNotCNF) {
		t.Fatalf("unexpected error; want: %v, got: %v", grammar.ErrNotCNF, err)
	}

	g = buildGrammar(t, srcG1)
	p, err := NewParser(g, FillOptions(Workers(-1)))
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.ParseText(context.Background(), strings.NewReader("bb"))
	if err == nil {
		t.Fatalf("an invalid fill option must be reported when parsing")
	}

	p, err = NewParser(g)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.ParseText(context.Background(), strings.NewReader(""))
	if !errors.Is(err, ErrEmptyWord) {
		t.Fatalf("unexpected error; want: %v, got: %v", ErrEmptyWord, err)
	}
}
