package driver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nihei9/cyk/grammar/symbol"
)

// Tree is a derivation tree. A leaf tree represents a rule `A -> a` and holds the terminal a; a binary tree
// represents a rule `A -> B C` and holds the trees of B and C. A tree is immutable and exclusively owns its
// sub-trees.
type Tree struct {
	label    symbol.Symbol
	terminal symbol.Symbol
	left     *Tree
	right    *Tree

	// key identifies the structure of the tree. Two trees are equal iff their keys are equal.
	key string
}

// NewLeaf returns a tree labeled label deriving the terminal.
func NewLeaf(label, terminal symbol.Symbol) *Tree {
	return &Tree{
		label:    label,
		terminal: terminal,
		key:      "L" + encodeName(label) + encodeName(terminal),
	}
}

// NewBinary returns a tree labeled label whose branches are copies of left and right.
func NewBinary(label symbol.Symbol, left, right *Tree) *Tree {
	l := left.clone()
	r := right.clone()
	return &Tree{
		label: label,
		left:  l,
		right: r,
		key:   "B" + encodeName(label) + "(" + l.key + ")(" + r.key + ")",
	}
}

func encodeName(sym symbol.Symbol) string {
	return strconv.Itoa(len(sym)) + ":" + sym.Name()
}

func (t *Tree) clone() *Tree {
	c := *t
	if t.left != nil {
		c.left = t.left.clone()
		c.right = t.right.clone()
	}
	return &c
}

func (t *Tree) Label() symbol.Symbol {
	return t.label
}

func (t *Tree) IsLeaf() bool {
	return t.left == nil
}

// Terminal returns the terminal of a leaf tree. It returns symbol.SymbolNil for a binary tree.
func (t *Tree) Terminal() symbol.Symbol {
	return t.terminal
}

// Left returns the first branch of a binary tree. It returns nil for a leaf tree.
func (t *Tree) Left() *Tree {
	return t.left
}

// Right returns the second branch of a binary tree. It returns nil for a leaf tree.
func (t *Tree) Right() *Tree {
	return t.right
}

// Branches returns the two branches of a binary tree, or nil for a leaf tree.
func (t *Tree) Branches() []*Tree {
	if t.IsLeaf() {
		return nil
	}
	return []*Tree{t.left, t.right}
}

// Equals reports whether t and u have the same labels, terminals, and shapes.
func (t *Tree) Equals(u *Tree) bool {
	if t == nil || u == nil {
		return t == u
	}
	return t.key == u.key
}

// Key returns a string identifying the structure of the tree. It is suitable for a map key.
func (t *Tree) Key() string {
	return t.key
}

// Yield returns the terminals of the leaves from left to right.
func (t *Tree) Yield() []symbol.Symbol {
	var syms []symbol.Symbol
	var walk func(t *Tree)
	walk = func(t *Tree) {
		if t.IsLeaf() {
			syms = append(syms, t.terminal)
			return
		}
		walk(t.left)
		walk(t.right)
	}
	walk(t)
	return syms
}

// String returns the tree in bracket notation such as `[ S, [ A, b ], [ B, b ] ]`.
func (t *Tree) String() string {
	if t.IsLeaf() {
		return fmt.Sprintf("[ %v, %v ]", t.label, t.terminal)
	}
	return fmt.Sprintf("[ %v, %v, %v ]", t.label, t.left, t.right)
}

// Format returns the tree as an S-expression such as `(S (A b) (B b))`.
func (t *Tree) Format() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t *Tree) format(b *strings.Builder) {
	b.WriteString("(")
	b.WriteString(formatSymbol(t.label))
	if t.IsLeaf() {
		b.WriteString(" ")
		b.WriteString(formatSymbol(t.terminal))
	} else {
		b.WriteString(" ")
		t.left.format(b)
		b.WriteString(" ")
		t.right.format(b)
	}
	b.WriteString(")")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// formatSymbol quotes a name that cannot be read back as a bare identifier. A quote or a backslash in a quoted
// name is escaped with a backslash.
func formatSymbol(sym symbol.Symbol) string {
	name := sym.Name()
	if isPlainName(name) {
		return name
	}
	return "'" + quoteEscaper.Replace(name) + "'"
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		case i > 0 && ((c >= '0' && c <= '9') || c == '\''):
		default:
			return false
		}
	}
	return true
}
