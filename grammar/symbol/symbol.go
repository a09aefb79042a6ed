package symbol

import "fmt"

// Symbol is a grammar symbol identified by its name. Whether a symbol is a terminal or a non-terminal is not a
// property of the symbol itself; a grammar decides it from its rules.
type Symbol string

const SymbolNil = Symbol("")

func (s Symbol) String() string {
	return string(s)
}

func (s Symbol) Name() string {
	return string(s)
}

func (s Symbol) IsNil() bool {
	return s == SymbolNil
}

// freshSuffix is appended to a candidate name until it no longer collides with a known symbol.
const freshSuffix = "'"

// SymbolTable holds a finite set of known symbols in registration order.
type SymbolTable struct {
	syms  []Symbol
	index map[Symbol]int
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index: map[Symbol]int{},
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// Register adds a symbol named text to the table. Registering a known name again returns the existing symbol.
func (w *SymbolTableWriter) Register(text string) (Symbol, error) {
	sym := Symbol(text)
	if sym.IsNil() {
		return SymbolNil, fmt.Errorf("a symbol name must be non-empty")
	}
	if _, ok := w.index[sym]; ok {
		return sym, nil
	}
	w.index[sym] = len(w.syms)
	w.syms = append(w.syms, sym)
	return sym, nil
}

// RegisterFresh registers and returns a symbol whose name is derived from base and collides with no symbol in
// the table.
func (w *SymbolTableWriter) RegisterFresh(base string) (Symbol, error) {
	return w.Register(w.freshName(base))
}

func (r *SymbolTableReader) Contains(sym Symbol) bool {
	_, ok := r.index[sym]
	return ok
}

// FreshName returns base itself when it is unused. Otherwise, it appends a prime to the candidate until the
// candidate is unused. Each probe makes the candidate strictly longer, so the loop ends after at most
// len(table)+1 probes.
func (r *SymbolTableReader) FreshName(base string) string {
	return r.freshName(base)
}

func (t *SymbolTable) freshName(base string) string {
	name := base
	if name == "" {
		name = freshSuffix
	}
	for {
		if _, ok := t.index[Symbol(name)]; !ok {
			return name
		}
		name = name + freshSuffix
	}
}

// Symbols returns the symbols in registration order.
func (r *SymbolTableReader) Symbols() []Symbol {
	syms := make([]Symbol, len(r.syms))
	copy(syms, r.syms)
	return syms
}
