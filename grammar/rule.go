package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nihei9/cyk/grammar/symbol"
)

type ruleID [32]byte

func (id ruleID) String() string {
	return hex.EncodeToString(id[:])
}

// genRuleID hashes length-prefixed symbol names so that, for instance, `A -> BC` and `A -> B C` get different IDs.
func genRuleID(lhs symbol.Symbol, rhs []symbol.Symbol) ruleID {
	var seq []byte
	appendName := func(sym symbol.Symbol) {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(sym)))
		seq = append(seq, l[:]...)
		seq = append(seq, sym...)
	}
	appendName(lhs)
	for _, sym := range rhs {
		appendName(sym)
	}
	return ruleID(sha256.Sum256(seq))
}

type RuleNum int

const RuleNumMin = RuleNum(1)

func (n RuleNum) Int() int {
	return int(n)
}

// Rule is an immutable production `lhs -> rhs`.
type Rule struct {
	id  ruleID
	num RuleNum
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

// NewRule returns a rule. The RHS must contain at least one symbol; the arity is otherwise unrestricted so that
// rules violating Chomsky normal form can still be represented and reported by CheckCNF.
func NewRule(lhs symbol.Symbol, rhs ...symbol.Symbol) (*Rule, error) {
	if lhs.IsNil() {
		return nil, fmt.Errorf("LHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must contain at least one symbol; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
	}

	r := make([]symbol.Symbol, len(rhs))
	copy(r, rhs)
	return &Rule{
		id:  genRuleID(lhs, r),
		lhs: lhs,
		rhs: r,
	}, nil
}

func (r *Rule) LHS() symbol.Symbol {
	return r.lhs
}

// RHS returns a copy of the right-hand side.
func (r *Rule) RHS() []symbol.Symbol {
	rhs := make([]symbol.Symbol, len(r.rhs))
	copy(rhs, r.rhs)
	return rhs
}

// RHSLen returns the arity of the rule.
func (r *Rule) RHSLen() int {
	return len(r.rhs)
}

// Symbol returns the n-th symbol of the RHS.
func (r *Rule) Symbol(n int) symbol.Symbol {
	return r.rhs[n]
}

// Num returns the 1-origin position of the rule in its grammar. A rule not belonging to any grammar has 0.
func (r *Rule) Num() RuleNum {
	return r.num
}

func (r *Rule) Equals(q *Rule) bool {
	return r.id == q.id
}

func (r *Rule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", r.lhs)
	for _, sym := range r.rhs {
		fmt.Fprintf(&b, " %v", sym)
	}
	return b.String()
}

type ruleSet struct {
	rules     []*Rule
	lhs2Rules map[symbol.Symbol][]*Rule
	id2Rule   map[ruleID]*Rule
}

func newRuleSet() *ruleSet {
	return &ruleSet{
		lhs2Rules: map[symbol.Symbol][]*Rule{},
		id2Rule:   map[ruleID]*Rule{},
	}
}

// append adds a copy of rule numbered after the rules already in the set. It returns false when an equal rule
// already exists.
func (rs *ruleSet) append(rule *Rule) (*Rule, bool) {
	if _, ok := rs.id2Rule[rule.id]; ok {
		return nil, false
	}

	r := &Rule{
		id:  rule.id,
		num: RuleNumMin + RuleNum(len(rs.rules)),
		lhs: rule.lhs,
		rhs: rule.rhs,
	}
	rs.rules = append(rs.rules, r)
	rs.lhs2Rules[r.lhs] = append(rs.lhs2Rules[r.lhs], r)
	rs.id2Rule[r.id] = r

	return r, true
}

func (rs *ruleSet) findByLHS(lhs symbol.Symbol) ([]*Rule, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	rules, ok := rs.lhs2Rules[lhs]
	return rules, ok
}
