package symbol

import "testing"

func TestSymbolTable(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	for _, text := range []string{"S", "A", "B", "a", "b", "A"} {
		_, err := w.Register(text)
		if err != nil {
			t.Fatal(err)
		}
	}

	r := tab.Reader()
	expected := []Symbol{"S", "A", "B", "a", "b"}
	syms := r.Symbols()
	if len(syms) != len(expected) {
		t.Fatalf("unexpected symbol count; want: %v, got: %v", len(expected), len(syms))
	}
	for i, sym := range expected {
		if syms[i] != sym {
			t.Fatalf("unexpected symbol; want: %v, got: %v", sym, syms[i])
		}
	}

	for _, sym := range expected {
		if !r.Contains(sym) {
			t.Fatalf("symbol was not found: %v", sym)
		}
	}
	if r.Contains("C") {
		t.Fatalf("an unregistered symbol was found")
	}

	_, err := w.Register("")
	if err == nil {
		t.Fatalf("an empty name must be rejected")
	}
}

func TestSymbolTableReader_FreshName(t *testing.T) {
	tests := []struct {
		caption    string
		registered []string
		base       string
		fresh      string
	}{
		{
			caption: "an unused name is returned as it is",
			registered: []string{
				"S", "A",
			},
			base:  "X",
			fresh: "X",
		},
		{
			caption: "a used name gets a prime",
			registered: []string{
				"S", "A",
			},
			base:  "S",
			fresh: "S'",
		},
		{
			caption: "primes are appended until the name becomes unused",
			registered: []string{
				"S", "S'", "S''",
			},
			base:  "S",
			fresh: "S'''",
		},
		{
			caption: "a name between used names is not skipped",
			registered: []string{
				"S", "S''",
			},
			base:  "S",
			fresh: "S'",
		},
		{
			caption: "an empty base name",
			registered: []string{
				"'",
			},
			base:  "",
			fresh: "''",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tab := NewSymbolTable()
			w := tab.Writer()
			for _, text := range tt.registered {
				w.Register(text)
			}
			fresh := tab.Reader().FreshName(tt.base)
			if fresh != tt.fresh {
				t.Fatalf("unexpected name; want: %v, got: %v", tt.fresh, fresh)
			}

			sym, err := w.RegisterFresh(tt.base)
			if err != nil {
				t.Fatal(err)
			}
			if sym.Name() != tt.fresh {
				t.Fatalf("unexpected symbol; want: %v, got: %v", tt.fresh, sym)
			}
			if tab.Reader().FreshName(tt.base) == tt.fresh {
				t.Fatalf("a registered fresh name must not be returned again")
			}
		})
	}
}
