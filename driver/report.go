package driver

import (
	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
	spec "github.com/nihei9/cyk/spec/grammar"
)

// NewChartReport returns a serializable description of a chart. It lists the cells in the order of
// (*Chart).Spans and the accepting trees of the top cell.
func NewChartReport(c *Chart) *spec.ChartReport {
	cells := make([]*spec.CellReport, 0, len(c.Spans()))
	for _, s := range c.Spans() {
		cl := c.cell(s.Start, s.End)
		cells = append(cells, &spec.CellReport{
			Start:  s.Start,
			End:    s.End,
			Labels: symbolTexts(cl.labels),
			Trees:  len(cl.trees),
		})
	}

	accTrees := c.AcceptingTrees()
	trees := make([]*spec.TreeReport, len(accTrees))
	for i, t := range accTrees {
		trees[i] = NewTreeReport(t)
	}

	return &spec.ChartReport{
		Grammar:  NewGrammarReport(c.gram),
		Word:     symbolTexts(c.word),
		Accepted: c.Accepted(),
		Cells:    cells,
		Trees:    trees,
	}
}

func NewTreeReport(t *Tree) *spec.TreeReport {
	if t.IsLeaf() {
		return &spec.TreeReport{
			Label:    t.label.Name(),
			Terminal: t.terminal.Name(),
		}
	}
	return &spec.TreeReport{
		Label: t.label.Name(),
		Children: []*spec.TreeReport{
			NewTreeReport(t.left),
			NewTreeReport(t.right),
		},
	}
}

func NewGrammarReport(g *grammar.Grammar) *spec.GrammarReport {
	violations := map[grammar.RuleNum]struct{}{}
	for _, r := range grammar.CNFViolations(g) {
		violations[r.Num()] = struct{}{}
	}

	rules := g.Rules()
	rs := make([]*spec.RuleReport, len(rules))
	for i, r := range rules {
		_, violated := violations[r.Num()]
		rs[i] = &spec.RuleReport{
			Number: r.Num().Int(),
			LHS:    r.LHS().Name(),
			RHS:    symbolTexts(r.RHS()),
			CNF:    !violated,
		}
	}

	return &spec.GrammarReport{
		Name:         g.Name(),
		Axiom:        g.Axiom().Name(),
		Terminals:    symbolTexts(g.Terminals()),
		NonTerminals: symbolTexts(g.NonTerminals()),
		Rules:        rs,
		CNF:          len(violations) == 0,
	}
}

func symbolTexts(syms []symbol.Symbol) []string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = sym.Name()
	}
	return texts
}
