package driver

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
	"github.com/olekukonko/tablewriter"
)

// PrintTree writes a tree with ruled lines.
//
//	S
//	├─ A
//	│  └─ b
//	└─ B
//	   └─ b
func PrintTree(w io.Writer, t *Tree) {
	printTree(w, t, "", "")
}

func printTree(w io.Writer, t *Tree, ruledLine string, childRuledLinePrefix string) {
	if t == nil {
		return
	}

	fmt.Fprintf(w, "%v%v\n", ruledLine, t.label)

	if t.IsLeaf() {
		fmt.Fprintf(w, "%v└─ %v\n", childRuledLinePrefix, t.terminal)
		return
	}

	printTree(w, t.left, childRuledLinePrefix+"├─ ", childRuledLinePrefix+"│  ")
	printTree(w, t.right, childRuledLinePrefix+"└─ ", childRuledLinePrefix+"   ")
}

// PrintCells writes the labels of every cell, one span per line.
//
//	(0, 1): A, B
//	(0, 2): S
//	(1, 2): A, B
func PrintCells(w io.Writer, c *Chart) {
	for _, s := range c.Spans() {
		fmt.Fprintf(w, "(%v, %v): %v\n", s.Start, s.End, joinSymbols(c.LabelsAt(s.Start, s.End), ", "))
	}
}

// PrintChart writes the chart as a table. The row i and the column j show the labels of the span [i, j).
func PrintChart(w io.Writer, c *Chart) {
	n := c.Len()

	table := tablewriter.NewWriter(w)
	header := make([]string, n+1)
	header[0] = "i \\ j"
	for j := 1; j <= n; j++ {
		header[j] = fmt.Sprintf("%v (%v)", j, c.word[j-1])
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	for i := 0; i < n; i++ {
		row := make([]string, n+1)
		row[0] = strconv.Itoa(i)
		for j := 1; j <= n; j++ {
			if j <= i {
				continue
			}
			labels := c.LabelsAt(i, j)
			if len(labels) == 0 {
				row[j] = "-"
				continue
			}
			row[j] = joinSymbols(labels, ",")
		}
		table.Append(row)
	}

	table.Render()
}

// PrintGrammar writes the rules of a grammar as a table.
func PrintGrammar(w io.Writer, g *grammar.Grammar) {
	if g.Name() != "" {
		fmt.Fprintf(w, "name: %v\n", g.Name())
	}
	fmt.Fprintf(w, "axiom: %v\n", g.Axiom())
	fmt.Fprintf(w, "non-terminals: %v\n", joinSymbols(g.NonTerminals(), ", "))
	fmt.Fprintf(w, "terminals: %v\n", joinSymbols(g.Terminals(), ", "))

	violations := map[grammar.RuleNum]struct{}{}
	for _, r := range grammar.CNFViolations(g) {
		violations[r.Num()] = struct{}{}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "LHS", "RHS", "CNF"})
	table.SetAutoFormatHeaders(false)
	for _, r := range g.Rules() {
		cnf := "yes"
		if _, ok := violations[r.Num()]; ok {
			cnf = "no"
		}
		table.Append([]string{
			strconv.Itoa(r.Num().Int()),
			r.LHS().Name(),
			joinSymbols(r.RHS(), " "),
			cnf,
		})
	}
	table.Render()
}

func joinSymbols(syms []symbol.Symbol, sep string) string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = sym.Name()
	}
	return strings.Join(texts, sep)
}
