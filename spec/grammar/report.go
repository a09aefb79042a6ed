package grammar

// ChartReport is a serializable snapshot of a filled chart.
type ChartReport struct {
	Grammar  *GrammarReport `json:"grammar"`
	Word     []string       `json:"word"`
	Accepted bool           `json:"accepted"`
	Cells    []*CellReport  `json:"cells"`

	// Trees are the trees of the top cell labeled with the axiom.
	Trees []*TreeReport `json:"trees"`
}

type GrammarReport struct {
	Name         string        `json:"name"`
	Axiom        string        `json:"axiom"`
	Terminals    []string      `json:"terminals"`
	NonTerminals []string      `json:"non_terminals"`
	Rules        []*RuleReport `json:"rules"`
	CNF          bool          `json:"cnf"`
}

type RuleReport struct {
	Number int      `json:"number"`
	LHS    string   `json:"lhs"`
	RHS    []string `json:"rhs"`
	CNF    bool     `json:"cnf"`
}

// CellReport describes the cell of the span [Start, End).
type CellReport struct {
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Labels []string `json:"labels"`
	Trees  int      `json:"trees"`
}

// TreeReport is a derivation tree. A leaf has Terminal set and no children.
type TreeReport struct {
	Label    string        `json:"label"`
	Terminal string        `json:"terminal,omitempty"`
	Children []*TreeReport `json:"children,omitempty"`
}
