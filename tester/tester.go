package tester

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nihei9/cyk/driver"
	"github.com/nihei9/cyk/grammar"
	tspec "github.com/nihei9/cyk/spec/test"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.TreeDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
			diffLines = append(diffLines, fmt.Sprintf("%vexpected path: %v", indent1, diff.ExpectedPath))
			diffLines = append(diffLines, fmt.Sprintf("%vactual path:   %v", indent1, diff.ActualPath))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    errors.Wrap(err, "cannot find test cases"),
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    errors.Wrapf(err, "cannot read a directory %v", testPath),
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open a test case")
	}
	defer f.Close()
	c, err := tspec.ParseTestCase(f)
	if err != nil {
		return nil, errors.Wrap(err, "invalid test case")
	}
	return c, nil
}

// Tester parses the word of each test case and compares the accepting trees with the expected ones as a set.
type Tester struct {
	Grammar *grammar.Grammar
	Cases   []*TestCaseWithMetadata

	// LexSpec splits a source into the terminals of the grammar. When it is nil, every character except white
	// spaces is a terminal.
	LexSpec *driver.LexicalSpec

	// Workers is the number of goroutines filling a chart. Zero means one.
	Workers int
}

func (t *Tester) Run() []*TestResult {
	var opts []driver.ParserOption
	if t.Workers > 1 {
		opts = append(opts, driver.FillOptions(driver.Workers(t.Workers)))
	}
	p, err := driver.NewParser(t.Grammar, opts...)

	var rs []*TestResult
	for _, c := range t.Cases {
		if err != nil {
			rs = append(rs, &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			})
			continue
		}
		rs = append(rs, runTest(p, t.LexSpec, c))
	}
	return rs
}

func runTest(p *driver.Parser, ls *driver.LexicalSpec, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var ts driver.TokenStream
	{
		var err error
		if ls != nil {
			ts, err = driver.NewLexTokenStream(ls, bytes.NewReader(c.TestCase.Source))
		} else {
			ts, err = driver.NewRuneTokenStream(bytes.NewReader(c.TestCase.Source), driver.SkipSpaces())
		}
		if err != nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			}
		}
	}

	var actual []*tspec.Tree
	chart, err := p.ParseTokens(context.Background(), ts)
	switch {
	case errors.Is(err, driver.ErrEmptyWord):
		// The empty word is never generated.
	case err != nil:
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	default:
		for _, t := range chart.AcceptingTrees() {
			actual = append(actual, genTree(t).Fill())
		}
	}

	expected := c.TestCase.Output
	if dups := duplicateTrees(expected); len(dups) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the expected output lists the same tree more than once:\n%v", formatTrees(dups)),
		}
	}
	if len(expected) == 0 {
		if len(actual) > 0 {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("the word must be rejected, but it was accepted:\n%v", formatTrees(actual)),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}
	if len(actual) == 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the word must be accepted, but it was rejected"),
		}
	}

	expSet := treeSet(expected)
	actSet := treeSet(actual)
	var missing, unexpected []*tspec.Tree
	for _, k := range sortedKeys(expSet) {
		if _, ok := actSet[k]; !ok {
			missing = append(missing, expSet[k])
		}
	}
	for _, k := range sortedKeys(actSet) {
		if _, ok := expSet[k]; !ok {
			unexpected = append(unexpected, actSet[k])
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	var b strings.Builder
	b.WriteString("output mismatch")
	if len(missing) > 0 {
		fmt.Fprintf(&b, "\nmissing trees:\n%v", formatTrees(missing))
	}
	if len(unexpected) > 0 {
		fmt.Fprintf(&b, "\nunexpected trees:\n%v", formatTrees(unexpected))
	}
	var diffs []*tspec.TreeDiff
	if len(missing) == 1 && len(unexpected) == 1 {
		diffs = tspec.DiffTree(missing[0], unexpected[0])
	}
	return &TestResult{
		TestCasePath: c.FilePath,
		Error:        errors.New(b.String()),
		Diffs:        diffs,
	}
}

func genTree(dTree *driver.Tree) *tspec.Tree {
	if dTree.IsLeaf() {
		return tspec.NewLeaf(dTree.Label().Name(), dTree.Terminal().Name())
	}
	return tspec.NewTree(dTree.Label().Name(), genTree(dTree.Left()), genTree(dTree.Right()))
}

func treeSet(trees []*tspec.Tree) map[string]*tspec.Tree {
	set := map[string]*tspec.Tree{}
	for _, t := range trees {
		set[t.Format()] = t
	}
	return set
}

// duplicateTrees returns the trees occurring more than once in a list, each one only once.
func duplicateTrees(trees []*tspec.Tree) []*tspec.Tree {
	var dups []*tspec.Tree
	count := map[string]int{}
	for _, t := range trees {
		k := t.Format()
		count[k]++
		if count[k] == 2 {
			dups = append(dups, t)
		}
	}
	return dups
}

func sortedKeys(set map[string]*tspec.Tree) []string {
	keys := maps.Keys(set)
	sort.Strings(keys)
	return keys
}

func formatTrees(trees []*tspec.Tree) string {
	lines := make([]string, len(trees))
	for i, t := range trees {
		lines[i] = "  " + t.Format()
	}
	return strings.Join(lines, "\n")
}
