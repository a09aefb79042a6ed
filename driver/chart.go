package driver

import (
	"errors"

	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
)

// ErrEmptyWord means a word has no symbol. A grammar in Chomsky normal form never generates the empty word, and
// the chart of the empty word has no cell.
var ErrEmptyWord = errors.New("the empty word cannot be parsed")

// Span is the half-open interval [Start, End) of word positions.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// cell is a set of trees deduplicated by structural equality. Trees are kept in insertion order.
type cell struct {
	trees   []*Tree
	keys    map[string]struct{}
	labels  []symbol.Symbol
	byLabel map[symbol.Symbol][]*Tree
}

func newCell() *cell {
	return &cell{
		keys:    map[string]struct{}{},
		byLabel: map[symbol.Symbol][]*Tree{},
	}
}

// add inserts t unless an equal tree exists. It returns true when the cell grows.
func (c *cell) add(t *Tree) bool {
	if _, ok := c.keys[t.key]; ok {
		return false
	}
	c.keys[t.key] = struct{}{}
	c.trees = append(c.trees, t)
	if _, ok := c.byLabel[t.label]; !ok {
		c.labels = append(c.labels, t.label)
	}
	c.byLabel[t.label] = append(c.byLabel[t.label], t)
	return true
}

func (c *cell) hasLabel(label symbol.Symbol) bool {
	_, ok := c.byLabel[label]
	return ok
}

// Chart is the triangular parse table of a word. The cell of a span [i, j) holds a tree labeled A iff A derives
// the sub-word word[i:j]. Cells only grow while the chart is being filled and are read-only afterwards.
type Chart struct {
	gram *grammar.Grammar
	word []symbol.Symbol

	// cells[i][j-i-1] is the cell of the span [i, j).
	cells [][]*cell

	// filled is the longest span length whose cells are complete.
	filled int
}

// Initialize allocates the chart of word and fills the cells of length 1 with the rules of the form `A -> a`. A
// symbol matching no such rule leaves its cell empty; that is not an error. Initialize returns an error wrapping
// grammar.ErrNotCNF without allocating anything when gram is not in Chomsky normal form, and ErrEmptyWord for
// the empty word.
func Initialize(gram *grammar.Grammar, word []symbol.Symbol) (*Chart, error) {
	if err := grammar.ValidateCNF(gram); err != nil {
		return nil, err
	}
	if len(word) == 0 {
		return nil, ErrEmptyWord
	}

	n := len(word)
	w := make([]symbol.Symbol, n)
	copy(w, word)
	cells := make([][]*cell, n)
	for i := 0; i < n; i++ {
		cells[i] = make([]*cell, n-i)
		for j := range cells[i] {
			cells[i][j] = newCell()
		}
	}
	c := &Chart{
		gram:   gram,
		word:   w,
		cells:  cells,
		filled: 1,
	}

	for i, a := range w {
		for _, rule := range gram.TerminalRules(a) {
			c.cell(i, i+1).add(NewLeaf(rule.LHS(), a))
		}
	}

	return c, nil
}

func (c *Chart) cell(i, j int) *cell {
	return c.cells[i][j-i-1]
}

func (c *Chart) validSpan(i, j int) bool {
	return i >= 0 && i < j && j <= len(c.word)
}

func (c *Chart) Grammar() *grammar.Grammar {
	return c.gram
}

// Word returns a copy of the word.
func (c *Chart) Word() []symbol.Symbol {
	w := make([]symbol.Symbol, len(c.word))
	copy(w, c.word)
	return w
}

// Len returns the length of the word.
func (c *Chart) Len() int {
	return len(c.word)
}

// Filled reports whether every cell is complete.
func (c *Chart) Filled() bool {
	return c.filled >= len(c.word)
}

// Spans returns all spans ordered by start and then by end.
func (c *Chart) Spans() []Span {
	var spans []Span
	for i := 0; i < len(c.word); i++ {
		for j := i + 1; j <= len(c.word); j++ {
			spans = append(spans, Span{
				Start: i,
				End:   j,
			})
		}
	}
	return spans
}

// TreesAt returns the trees of the span [i, j). It returns nil for an invalid span.
func (c *Chart) TreesAt(i, j int) []*Tree {
	if !c.validSpan(i, j) {
		return nil
	}
	trees := c.cell(i, j).trees
	ts := make([]*Tree, len(trees))
	copy(ts, trees)
	return ts
}

// LabelsAt returns the distinct labels of the trees of the span [i, j) in insertion order.
func (c *Chart) LabelsAt(i, j int) []symbol.Symbol {
	if !c.validSpan(i, j) {
		return nil
	}
	labels := c.cell(i, j).labels
	ls := make([]symbol.Symbol, len(labels))
	copy(ls, labels)
	return ls
}

// HasLabelAt reports whether the span [i, j) has a tree labeled label.
func (c *Chart) HasLabelAt(i, j int, label symbol.Symbol) bool {
	if !c.validSpan(i, j) {
		return false
	}
	return c.cell(i, j).hasLabel(label)
}

// TreeCount returns the number of trees in the whole chart.
func (c *Chart) TreeCount() int {
	n := 0
	for _, row := range c.cells {
		for _, cl := range row {
			n += len(cl.trees)
		}
	}
	return n
}
