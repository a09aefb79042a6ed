package driver

// Accepted reports whether the top cell, the span of the whole word, has a tree labeled with the axiom.
func (c *Chart) Accepted() bool {
	return c.cell(0, len(c.word)).hasLabel(c.gram.Axiom())
}

// Trees returns all trees of the top cell regardless of their labels.
func (c *Chart) Trees() []*Tree {
	return c.TreesAt(0, len(c.word))
}

// AcceptingTrees returns the trees of the top cell labeled with the axiom.
func (c *Chart) AcceptingTrees() []*Tree {
	trees := c.cell(0, len(c.word)).byLabel[c.gram.Axiom()]
	ts := make([]*Tree, len(trees))
	copy(ts, trees)
	return ts
}
