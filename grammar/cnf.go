package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotCNF means a grammar is not in Chomsky normal form. A chart cannot be built for such a grammar.
var ErrNotCNF = errors.New("the grammar is not in Chomsky normal form")

// NotCNFError lists the rules that violate Chomsky normal form.
type NotCNFError struct {
	GrammarName string
	Violations  []*Rule
}

func (e *NotCNFError) Error() string {
	var b strings.Builder
	if e.GrammarName != "" {
		fmt.Fprintf(&b, "%v: ", e.GrammarName)
	}
	fmt.Fprintf(&b, "%v", ErrNotCNF)
	if len(e.Violations) > 0 {
		fmt.Fprintf(&b, "; invalid rules: %v", e.Violations[0])
		for _, r := range e.Violations[1:] {
			fmt.Fprintf(&b, ", %v", r)
		}
	}
	return b.String()
}

func (e *NotCNFError) Unwrap() error {
	return ErrNotCNF
}

// CheckCNF reports whether every rule of g has the form `A -> a` (a is a terminal) or `A -> B C` (B and C are
// non-terminals).
func CheckCNF(g *Grammar) bool {
	for _, rule := range g.ruleSet.rules {
		if !isCNFRule(g, rule) {
			return false
		}
	}
	return true
}

// CNFViolations returns the rules of g that have neither of the shapes CheckCNF accepts, in definition order.
func CNFViolations(g *Grammar) []*Rule {
	var rules []*Rule
	for _, rule := range g.ruleSet.rules {
		if !isCNFRule(g, rule) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// ValidateCNF returns a *NotCNFError when g is not in Chomsky normal form.
func ValidateCNF(g *Grammar) error {
	violations := CNFViolations(g)
	if len(violations) == 0 {
		return nil
	}
	return &NotCNFError{
		GrammarName: g.name,
		Violations:  violations,
	}
}

func isCNFRule(g *Grammar, rule *Rule) bool {
	return isTerminalRule(g, rule) || isBinaryRule(g, rule)
}
