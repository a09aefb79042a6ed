package test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDiffTree(t *testing.T) {
	tests := []struct {
		t1        *Tree
		t2        *Tree
		different bool
	}{
		{
			t1: NewLeaf("A", "a"),
			t2: NewLeaf("A", "a"),
		},
		{
			t1: NewTree("S",
				NewLeaf("A", "a"),
				NewLeaf("B", "b"),
			),
			t2: NewTree("S",
				NewLeaf("A", "a"),
				NewLeaf("B", "b"),
			),
		},
		{
			t1: NewTree("S",
				NewTree("S",
					NewLeaf("A", "a"),
					NewLeaf("B", "b"),
				),
				NewLeaf("B", "b"),
			),
			t2: NewTree("S",
				NewTree("S",
					NewLeaf("A", "a"),
					NewLeaf("B", "b"),
				),
				NewLeaf("B", "b"),
			),
		},
		{
			t1:        NewLeaf("A", "a"),
			t2:        NewLeaf("B", "a"),
			different: true,
		},
		{
			t1:        NewLeaf("A", "a"),
			t2:        NewLeaf("A", "b"),
			different: true,
		},
		{
			t1: NewLeaf("S", "a"),
			t2: NewTree("S",
				NewLeaf("A", "a"),
				NewLeaf("B", "b"),
			),
			different: true,
		},
		{
			t1: NewTree("S",
				NewLeaf("A", "a"),
				NewLeaf("B", "b"),
			),
			t2:        NewLeaf("S", "a"),
			different: true,
		},
		{
			t1: NewTree("S",
				NewTree("S",
					NewLeaf("A", "a"),
					NewLeaf("B", "b"),
				),
				NewLeaf("B", "b"),
			),
			t2: NewTree("S",
				NewTree("S",
					NewLeaf("A", "a"),
					NewLeaf("B", "c"),
				),
				NewLeaf("B", "b"),
			),
			different: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			diffs := DiffTree(tt.t1.Fill(), tt.t2.Fill())
			if tt.different && len(diffs) == 0 {
				t.Fatalf("unexpected result")
			} else if !tt.different && len(diffs) > 0 {
				t.Fatalf("unexpected result")
			}
		})
	}
}

func TestDiffTree_Path(t *testing.T) {
	expected := NewTree("S",
		NewLeaf("A", "a"),
		NewTree("A",
			NewLeaf("B", "b"),
			NewLeaf("S", "a"),
		),
	).Fill()
	actual := NewTree("S",
		NewLeaf("A", "a"),
		NewTree("A",
			NewLeaf("C", "b"),
			NewLeaf("S", "a"),
		),
	).Fill()

	diffs := DiffTree(expected, actual)
	if len(diffs) != 1 {
		t.Fatalf("unexpected diffs: %v", diffs)
	}
	if diffs[0].ExpectedPath != "S.[1]A.[0]B" || diffs[0].ActualPath != "S.[1]A.[0]C" {
		t.Fatalf("unexpected paths: %+v", diffs[0])
	}
}

func TestTree_Format(t *testing.T) {
	tree := NewTree("E",
		NewLeaf("E", "id"),
		NewTree("R",
			NewLeaf("P", "+"),
			NewLeaf("E", "id'"),
		),
	)
	expected := "(E (E id) (R (P '+') (E id')))"
	if tree.Format() != expected {
		t.Fatalf("unexpected format; want: %v, got: %v", expected, tree.Format())
	}

	tc, err := ParseTestCase(strings.NewReader("test\n---\nid+id'\n---\n" + expected + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tc.Output) != 1 || len(DiffTree(tree.Fill(), tc.Output[0])) > 0 {
		t.Fatalf("a formatted tree must be read back; got: %v", tc.Output)
	}
}

func TestTree_FormatEscapesQuotedNames(t *testing.T) {
	tests := []struct {
		tree      *Tree
		formatted string
	}{
		{
			tree:      NewLeaf("Q", "'"),
			formatted: `(Q '\'')`,
		},
		{
			tree:      NewLeaf("Q", `a\b`),
			formatted: `(Q 'a\\b')`,
		},
		{
			tree:      NewLeaf("Q", `\'`),
			formatted: `(Q '\\\'')`,
		},
		{
			tree:      NewTree("S", NewLeaf("'Q", "x"), NewLeaf("R", "' '")),
			formatted: `(S ('\'Q' x) (R '\' \''))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.formatted, func(t *testing.T) {
			if tt.tree.Format() != tt.formatted {
				t.Fatalf("unexpected format; want: %v, got: %v", tt.formatted, tt.tree.Format())
			}
			tc, err := ParseTestCase(strings.NewReader("test\n---\nx\n---\n" + tt.formatted + "\n"))
			if err != nil {
				t.Fatal(err)
			}
			if len(tc.Output) != 1 || len(DiffTree(tt.tree.Fill(), tc.Output[0])) > 0 {
				t.Fatalf("a formatted tree must be read back; got: %v", tc.Output)
			}
			if tc.Output[0].Format() != tt.formatted {
				t.Fatalf("unexpected format after reading back; want: %v, got: %v", tt.formatted, tc.Output[0].Format())
			}
		})
	}
}

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		tc       *TestCase
		parseErr bool
	}{
		{
			caption: "a test case consists of a description, a source, and trees",
			src: `test
---
bb
---
(S (A b) (B b))
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("bb"),
				Output: []*Tree{
					NewTree("S", NewLeaf("A", "b"), NewLeaf("B", "b")).Fill(),
				},
			},
		},
		{
			caption: "blank lines belong to parts",
			src: `
test

---

bb

---

(S (A b) (B b))

`,
			tc: &TestCase{
				Description: "\ntest\n",
				Source:      []byte("\nbb\n"),
				Output: []*Tree{
					NewTree("S", NewLeaf("A", "b"), NewLeaf("B", "b")).Fill(),
				},
			},
		},
		{
			caption: "the length of a part delimiter may be greater than 3",
			src: `
test
----
a
----
(S a)
`,
			tc: &TestCase{
				Description: "\ntest",
				Source:      []byte("a"),
				Output: []*Tree{
					NewLeaf("S", "a").Fill(),
				},
			},
		},
		{
			caption: "the description part may be empty",
			src: `----
a
----
(S a)
`,
			tc: &TestCase{
				Description: "",
				Source:      []byte("a"),
				Output: []*Tree{
					NewLeaf("S", "a").Fill(),
				},
			},
		},
		{
			caption: "the source part may be empty",
			src: `test
---
---
(S a)
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte{},
				Output: []*Tree{
					NewLeaf("S", "a").Fill(),
				},
			},
		},
		{
			caption: "a blank output part means the word is rejected",
			src: `test
---
ab
---

`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("ab"),
			},
		},
		{
			caption: "an ambiguous word has many trees",
			src: `test
---
abaca
---
(S (S (S a) (A (B b) (S a))) (A (C c) (S a)))
(S (S a)
   (A (B b)
      (S (S a) (A (C c) (S a)))))
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("abaca"),
				Output: []*Tree{
					NewTree("S",
						NewTree("S",
							NewLeaf("S", "a"),
							NewTree("A", NewLeaf("B", "b"), NewLeaf("S", "a")),
						),
						NewTree("A", NewLeaf("C", "c"), NewLeaf("S", "a")),
					).Fill(),
					NewTree("S",
						NewLeaf("S", "a"),
						NewTree("A",
							NewLeaf("B", "b"),
							NewTree("S",
								NewLeaf("S", "a"),
								NewTree("A", NewLeaf("C", "c"), NewLeaf("S", "a")),
							),
						),
					).Fill(),
				},
			},
		},
		{
			caption:  "an empty file is not a test case",
			src:      ``,
			parseErr: true,
		},
		{
			caption: "the source part is missing",
			src: `test
---
`,
			parseErr: true,
		},
		{
			caption: "the output part is missing",
			src: `test
---
a
---
`,
			parseErr: true,
		},
		{
			caption: "a delimiter needs three hyphens at least",
			src: `test
--
a
--
(S a)
`,
			parseErr: true,
		},
		{
			caption: "an invalid token",
			src: `test
---
a
---
?
`,
			parseErr: true,
		},
		{
			caption: "a tree cannot have one sub-tree",
			src: `test
---
a
---
(S (A a))
`,
			parseErr: true,
		},
		{
			caption: "a tree cannot have three sub-trees",
			src: `test
---
abc
---
(S (A a) (B b) (C c))
`,
			parseErr: true,
		},
		{
			caption: "a tree must be closed",
			src: `test
---
a
---
(S a
`,
			parseErr: true,
		},
		{
			caption: "a tree needs a label",
			src: `test
---
a
---
((S a) (S a))
`,
			parseErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.parseErr {
				if err == nil {
					t.Fatalf("an expected error didn't occur")
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				testTestCase(t, tt.tc, tc)
			}
		})
	}
}

func testTestCase(t *testing.T, expected, actual *TestCase) {
	t.Helper()

	if expected.Description != actual.Description ||
		!reflect.DeepEqual(expected.Source, actual.Source) ||
		len(expected.Output) != len(actual.Output) {
		t.Fatalf("unexpected test case: want: %#v, got: %#v", expected, actual)
	}
	for i, exp := range expected.Output {
		if diffs := DiffTree(exp, actual.Output[i]); len(diffs) > 0 {
			t.Fatalf("unexpected tree: want: %v, got: %v", exp.Format(), actual.Output[i].Format())
		}
	}
}

func TestLoadTreeLexSpec(t *testing.T) {
	clspec, err := loadTreeLexSpec()
	if err != nil {
		t.Fatalf("the lexical specification of trees must compile: %v", err)
	}
	if clspec.Name != "expected_tree" {
		t.Fatalf("unexpected name: %v", clspec.Name)
	}
	kinds := map[string]bool{}
	for _, k := range clspec.KindNames {
		kinds[k.String()] = true
	}
	for _, k := range []string{treeKindLParen, treeKindRParen, treeKindIdentifier, treeKindQuoted} {
		if !kinds[k] {
			t.Fatalf("a kind '%v' is missing: %v", k, clspec.KindNames)
		}
	}
}
