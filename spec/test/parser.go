package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected derivation tree. A leaf has a terminal and no children; a branch has two children.
type Tree struct {
	Parent   *Tree
	Offset   int
	Label    string
	Terminal string
	Children []*Tree
}

func NewTree(label string, children ...*Tree) *Tree {
	return &Tree{
		Label:    label,
		Children: children,
	}
}

func NewLeaf(label string, terminal string) *Tree {
	return &Tree{
		Label:    label,
		Terminal: terminal,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Label
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Label)
}

func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

// Format returns the tree as an S-expression in the syntax ParseTestCase reads.
func (t *Tree) Format() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t *Tree) format(b *strings.Builder) {
	b.WriteString("(")
	b.WriteString(formatName(t.Label))
	if t.IsLeaf() {
		b.WriteString(" ")
		b.WriteString(formatName(t.Terminal))
	}
	for _, c := range t.Children {
		b.WriteString(" ")
		c.format(b)
	}
	b.WriteString(")")
}

var reName = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_']*$`)

var (
	quoteEscaper   = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	quoteUnescaper = strings.NewReplacer(`\\`, `\`, `\'`, `'`)
)

func formatName(name string) string {
	if reName.MatchString(name) {
		return name
	}
	return "'" + quoteEscaper.Replace(name) + "'"
}

func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if actual.Label != expected.Label {
		msg := fmt.Sprintf("unexpected label: expected '%v' but got '%v'", expected.Label, actual.Label)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.IsLeaf() != actual.IsLeaf() {
		var msg string
		if expected.IsLeaf() {
			msg = fmt.Sprintf("unexpected sub-trees: expected a terminal '%v'", expected.Terminal)
		} else {
			msg = fmt.Sprintf("unexpected terminal: expected sub-trees but got '%v'", actual.Terminal)
		}
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Terminal != actual.Terminal {
		msg := fmt.Sprintf("unexpected terminal: expected '%v' but got '%v'", expected.Terminal, actual.Terminal)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

// TestCase is a word and the accepting trees the grammar must produce for it. An empty Output means the word
// must be rejected.
type TestCase struct {
	Description string
	Source      []byte
	Output      []*Tree
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	trees, err := tp.parseTrees(bytes.NewReader(parts[2].buf))
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      trees,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			if buf.Len() == 0 {
				return []byte{}, lineCount, nil
			}
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	if buf.Len() == 0 {
		return []byte{}, lineCount, nil
	}
	return buf.Bytes(), lineCount, nil
}

const (
	treeKindWhiteSpace = "white_space"
	treeKindLParen     = "l_paren"
	treeKindRParen     = "r_paren"
	treeKindIdentifier = "identifier"
	treeKindQuoted     = "quoted"
	treeKindEOF        = "eof"
)

var (
	treeLexSpec     *mlspec.CompiledLexSpec
	treeLexSpecErr  error
	treeLexSpecOnce sync.Once
)

func loadTreeLexSpec() (*mlspec.CompiledLexSpec, error) {
	treeLexSpecOnce.Do(func() {
		entry := func(kind, pattern string) *mlspec.LexEntry {
			return &mlspec.LexEntry{
				Kind:    mlspec.LexKindName(kind),
				Pattern: mlspec.LexPattern(pattern),
			}
		}
		clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name: "expected_tree",
			Entries: []*mlspec.LexEntry{
				entry(treeKindWhiteSpace, `[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
				entry(treeKindLParen, mlspec.EscapePattern("(")),
				entry(treeKindRParen, mlspec.EscapePattern(")")),
				entry(treeKindIdentifier, `[A-Za-z_][0-9A-Za-z_']*`),
				entry(treeKindQuoted, `'([^'\u{005C}\u{000A}\u{000D}]|\u{005C}['\u{005C}])+'`),
			},
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				treeLexSpecErr = fmt.Errorf("cannot compile the lexical specification of trees: %v: %v", cErrs[0].Kind, cErrs[0].Cause)
				return
			}
			treeLexSpecErr = err
			return
		}
		treeLexSpec = clspec
	})
	return treeLexSpec, treeLexSpecErr
}

type treeToken struct {
	kind string
	text string
	row  int
	col  int
}

type treeParser struct {
	lineOffset int
	spec       *mlspec.CompiledLexSpec
	lex        *mldriver.Lexer
	peeked     *treeToken
}

// parseTrees reads zero or more trees such as `(S (A b) (B b))`. A name that is not an identifier is quoted like
// `'+'`, and a quote or a backslash in a quoted name is escaped with a backslash.
func (tp *treeParser) parseTrees(src io.Reader) ([]*Tree, error) {
	s, err := loadTreeLexSpec()
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	tp.spec = s
	tp.lex = lex

	var trees []*Tree
	for {
		tok, err := tp.peek()
		if err != nil {
			return nil, err
		}
		if tok.kind == treeKindEOF {
			break
		}
		t, err := tp.parseTree()
		if err != nil {
			return nil, err
		}
		trees = append(trees, t.Fill())
	}
	return trees, nil
}

func (tp *treeParser) parseTree() (*Tree, error) {
	tok, err := tp.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != treeKindLParen {
		return nil, tp.errorf(tok, "a tree must start with '('")
	}

	label, err := tp.next()
	if err != nil {
		return nil, err
	}
	if label.kind != treeKindIdentifier && label.kind != treeKindQuoted {
		return nil, tp.errorf(label, "a tree needs a label")
	}

	tok, err = tp.peek()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case treeKindIdentifier, treeKindQuoted:
		tp.peeked = nil
		err := tp.expectRParen()
		if err != nil {
			return nil, err
		}
		return NewLeaf(label.text, tok.text), nil
	case treeKindLParen:
		left, err := tp.parseTree()
		if err != nil {
			return nil, err
		}
		right, err := tp.parseTree()
		if err != nil {
			return nil, err
		}
		err = tp.expectRParen()
		if err != nil {
			return nil, err
		}
		return NewTree(label.text, left, right), nil
	}
	return nil, tp.errorf(tok, "a tree must have a terminal or two sub-trees")
}

func (tp *treeParser) expectRParen() error {
	tok, err := tp.next()
	if err != nil {
		return err
	}
	if tok.kind != treeKindRParen {
		return tp.errorf(tok, "')' is expected")
	}
	return nil
}

func (tp *treeParser) errorf(tok *treeToken, format string, a ...interface{}) error {
	if tok.kind == treeKindEOF {
		return fmt.Errorf("%v: unexpected end of input", fmt.Sprintf(format, a...))
	}
	return fmt.Errorf("%v:%v: %v: '%v'", tp.lineOffset+tok.row+1, tok.col+1, fmt.Sprintf(format, a...), tok.text)
}

func (tp *treeParser) peek() (*treeToken, error) {
	if tp.peeked != nil {
		return tp.peeked, nil
	}
	tok, err := tp.read()
	if err != nil {
		return nil, err
	}
	tp.peeked = tok
	return tok, nil
}

func (tp *treeParser) next() (*treeToken, error) {
	if tp.peeked != nil {
		tok := tp.peeked
		tp.peeked = nil
		return tok, nil
	}
	return tp.read()
}

func (tp *treeParser) read() (*treeToken, error) {
	for {
		tok, err := tp.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return &treeToken{
				kind: treeKindEOF,
			}, nil
		}
		if tok.Invalid {
			return nil, fmt.Errorf("%v:%v: invalid token: '%v'", tp.lineOffset+tok.Row+1, tok.Col+1, string(tok.Lexeme))
		}
		kind := tp.spec.KindNames[tok.KindID].String()
		if kind == treeKindWhiteSpace {
			continue
		}
		text := string(tok.Lexeme)
		if kind == treeKindQuoted {
			text = quoteUnescaper.Replace(text[1 : len(text)-1])
		}
		return &treeToken{
			kind: kind,
			text: text,
			row:  tok.Row,
			col:  tok.Col,
		}, nil
	}
}
