package grammar

// Position is a 1-origin location in a grammar description.
type Position struct {
	Row int
	Col int
}

func NewPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []*ParameterNode
	Pos        Position
}

type ParameterNode struct {
	ID  string
	Pos Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

// ElementNode is a symbol occurring in an alternative. Quoted is true when the symbol was written as a quoted
// literal such as '+'.
type ElementNode struct {
	ID     string
	Quoted bool
	Pos    Position
}
