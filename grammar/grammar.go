package grammar

import (
	"fmt"

	verr "github.com/nihei9/cyk/error"
	"github.com/nihei9/cyk/grammar/symbol"
	spec "github.com/nihei9/cyk/spec/grammar"
)

// Grammar is a context-free grammar. A symbol is a non-terminal if and only if it is the LHS of some rule; every
// other known symbol is a terminal. A Grammar is immutable once built.
type Grammar struct {
	name         string
	axiom        symbol.Symbol
	symbolTable  *symbol.SymbolTable
	ruleSet      *ruleSet
	nonTerminals map[symbol.Symbol]struct{}

	// term2Rules maps a terminal `a` to the rules `A -> a`.
	term2Rules map[symbol.Symbol][]*Rule

	// pair2Rules maps a pair of non-terminals `(B, C)` to the rules `A -> B C`.
	pair2Rules map[symbol.Symbol]map[symbol.Symbol][]*Rule
}

// NewGrammar builds a grammar from an alphabet, an axiom, and rules. The symbols occurring in the rules are added
// to the alphabet when missing. The axiom must be the LHS of some rule. A rule equal to an earlier one is skipped.
func NewGrammar(name string, syms []symbol.Symbol, axiom symbol.Symbol, rules []*Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, semErrNoRule
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	for _, sym := range syms {
		if _, err := w.Register(sym.Name()); err != nil {
			return nil, err
		}
	}

	rs := newRuleSet()
	nonTerms := map[symbol.Symbol]struct{}{}
	for _, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("a rule must be non-nil")
		}
		if _, ok := rs.append(rule); !ok {
			continue
		}
		nonTerms[rule.lhs] = struct{}{}
		if _, err := w.Register(rule.lhs.Name()); err != nil {
			return nil, err
		}
		for _, sym := range rule.rhs {
			if _, err := w.Register(sym.Name()); err != nil {
				return nil, err
			}
		}
	}

	if _, ok := nonTerms[axiom]; !ok {
		return nil, fmt.Errorf("%w: %v", semErrAxiomNotNonTerminal, axiom)
	}

	g := &Grammar{
		name:         name,
		axiom:        axiom,
		symbolTable:  symTab,
		ruleSet:      rs,
		nonTerminals: nonTerms,
		term2Rules:   map[symbol.Symbol][]*Rule{},
		pair2Rules:   map[symbol.Symbol]map[symbol.Symbol][]*Rule{},
	}
	for _, rule := range rs.rules {
		switch {
		case isTerminalRule(g, rule):
			a := rule.rhs[0]
			g.term2Rules[a] = append(g.term2Rules[a], rule)
		case isBinaryRule(g, rule):
			b, c := rule.rhs[0], rule.rhs[1]
			if _, ok := g.pair2Rules[b]; !ok {
				g.pair2Rules[b] = map[symbol.Symbol][]*Rule{}
			}
			g.pair2Rules[b][c] = append(g.pair2Rules[b][c], rule)
		}
	}

	return g, nil
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) Axiom() symbol.Symbol {
	return g.axiom
}

// Rules returns the rules in definition order.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, len(g.ruleSet.rules))
	copy(rules, g.ruleSet.rules)
	return rules
}

// RulesByLHS returns the rules whose LHS is lhs.
func (g *Grammar) RulesByLHS(lhs symbol.Symbol) []*Rule {
	rules, _ := g.ruleSet.findByLHS(lhs)
	return rules
}

// Symbols returns all symbols known to the grammar in registration order.
func (g *Grammar) Symbols() []symbol.Symbol {
	return g.symbolTable.Reader().Symbols()
}

// NonTerminals returns the non-terminals in registration order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	var syms []symbol.Symbol
	for _, sym := range g.Symbols() {
		if g.IsNonTerminal(sym) {
			syms = append(syms, sym)
		}
	}
	return syms
}

// Terminals returns the terminals in registration order.
func (g *Grammar) Terminals() []symbol.Symbol {
	var syms []symbol.Symbol
	for _, sym := range g.Symbols() {
		if !g.IsNonTerminal(sym) {
			syms = append(syms, sym)
		}
	}
	return syms
}

func (g *Grammar) IsNonTerminal(sym symbol.Symbol) bool {
	_, ok := g.nonTerminals[sym]
	return ok
}

// IsTerminal reports whether sym is a known symbol that is not a non-terminal.
func (g *Grammar) IsTerminal(sym symbol.Symbol) bool {
	return g.symbolTable.Reader().Contains(sym) && !g.IsNonTerminal(sym)
}

// CreateFreshSymbol returns a symbol whose name is derived from base by appending primes and differs from the
// name of every symbol known to the grammar. The grammar itself is left unchanged.
func (g *Grammar) CreateFreshSymbol(base string) symbol.Symbol {
	return symbol.Symbol(g.symbolTable.Reader().FreshName(base))
}

// TerminalRules returns the rules of the form `A -> a` for a terminal a.
func (g *Grammar) TerminalRules(a symbol.Symbol) []*Rule {
	return g.term2Rules[a]
}

// BinaryRules returns the rules of the form `A -> B C` for non-terminals B and C.
func (g *Grammar) BinaryRules(b, c symbol.Symbol) []*Rule {
	cs, ok := g.pair2Rules[b]
	if !ok {
		return nil
	}
	return cs[c]
}

// HasBinaryRulesStartingWith reports whether some rule has the form `A -> B X`.
func (g *Grammar) HasBinaryRulesStartingWith(b symbol.Symbol) bool {
	_, ok := g.pair2Rules[b]
	return ok
}

func isTerminalRule(g *Grammar, rule *Rule) bool {
	return len(rule.rhs) == 1 && !g.IsNonTerminal(rule.rhs[0])
}

func isBinaryRule(g *Grammar, rule *Rule) bool {
	return len(rule.rhs) == 2 && g.IsNonTerminal(rule.rhs[0]) && g.IsNonTerminal(rule.rhs[1])
}

const (
	dirNameName  = "name"
	dirNameAxiom = "axiom"
)

// GrammarBuilder builds a grammar from the AST of a grammar description.
type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			{
				Cause: semErrNoRule,
			},
		}
	}

	var gramName string
	var axiom symbol.Symbol
	var axiomDir *spec.DirectiveNode
	{
		seen := map[string]struct{}{}
		for _, dir := range b.AST.Directives {
			if _, ok := seen[dir.Name]; ok {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateDir,
					Detail: dir.Name,
					Row:    dir.Pos.Row,
					Col:    dir.Pos.Col,
				})
				continue
			}
			seen[dir.Name] = struct{}{}

			switch dir.Name {
			case dirNameName, dirNameAxiom:
				if len(dir.Parameters) != 1 || dir.Parameters[0].ID == "" {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrDirInvalidParam,
						Detail: fmt.Sprintf("'%v' takes just one ID parameter", dir.Name),
						Row:    dir.Pos.Row,
						Col:    dir.Pos.Col,
					})
					continue
				}
				if dir.Name == dirNameName {
					gramName = dir.Parameters[0].ID
				} else {
					axiom = symbol.Symbol(dir.Parameters[0].ID)
					axiomDir = dir
				}
			default:
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDirInvalidName,
					Detail: dir.Name,
					Row:    dir.Pos.Row,
					Col:    dir.Pos.Col,
				})
			}
		}
	}

	var syms []symbol.Symbol
	var rules []*Rule
	{
		lhsSyms := map[symbol.Symbol]struct{}{}
		rs := newRuleSet()
		for _, prod := range b.AST.Productions {
			lhs := symbol.Symbol(prod.LHS)
			lhsSyms[lhs] = struct{}{}
			syms = append(syms, lhs)
			for _, alt := range prod.RHS {
				if len(alt.Elements) == 0 {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrEmptyAlternative,
						Detail: prod.LHS,
						Row:    alt.Pos.Row,
						Col:    alt.Pos.Col,
					})
					continue
				}

				rhs := make([]symbol.Symbol, len(alt.Elements))
				for i, elem := range alt.Elements {
					rhs[i] = symbol.Symbol(elem.ID)
					syms = append(syms, rhs[i])
				}
				rule, err := NewRule(lhs, rhs...)
				if err != nil {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  err,
						Detail: prod.LHS,
						Row:    alt.Pos.Row,
						Col:    alt.Pos.Col,
					})
					continue
				}
				if _, ok := rs.append(rule); !ok {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrDuplicateRule,
						Detail: rule.String(),
						Row:    alt.Pos.Row,
						Col:    alt.Pos.Col,
					})
					continue
				}
				rules = append(rules, rule)
			}
		}

		if axiom.IsNil() {
			axiom = symbol.Symbol(b.AST.Productions[0].LHS)
		} else if _, ok := lhsSyms[axiom]; !ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrAxiomNotNonTerminal,
				Detail: axiom.Name(),
				Row:    axiomDir.Pos.Row,
				Col:    axiomDir.Pos.Col,
			})
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	return NewGrammar(gramName, syms, axiom, rules)
}
