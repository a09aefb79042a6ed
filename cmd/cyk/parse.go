package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/cyk/driver"
	"github.com/nihei9/cyk/grammar"
	"github.com/nihei9/cyk/grammar/symbol"
	spec "github.com/nihei9/cyk/spec/grammar"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var parseFlags = struct {
	source  *string
	lexer   *string
	workers *int
	format  *string
	chart   *bool
	all     *bool
	verbose *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> [word]",
		Short: "Decide whether a grammar generates a word",
		Example: `  cyk parse grammar.txt abaca
  echo 'id + id' | cyk parse grammar.txt --lexer grammar`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.lexer = cmd.Flags().StringP("lexer", "l", lexerRune, "how to split a source into terminals; 'rune' makes every character except white spaces a terminal, and 'grammar' recognizes the terminals of the grammar")
	parseFlags.workers = cmd.Flags().IntP("workers", "w", 1, "the number of goroutines filling a chart")
	parseFlags.format = cmd.Flags().StringP("format", "f", formatText, "output format: text or json")
	parseFlags.chart = cmd.Flags().Bool("chart", false, "print the chart")
	parseFlags.all = cmd.Flags().Bool("all", false, "print all trees spanning the whole word, not only the ones labeled with the axiom")
	parseFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "print the progress to stderr")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		reportPanic(recover(), &retErr)
	}()

	if *parseFlags.format != formatText && *parseFlags.format != formatJSON {
		return fmt.Errorf("unknown format: %v", *parseFlags.format)
	}
	if len(args) > 1 && *parseFlags.source != "" {
		return fmt.Errorf("you cannot pass a word and --source at the same time")
	}

	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	var p *driver.Parser
	{
		fillOpts := []driver.FillOption{
			driver.Workers(*parseFlags.workers),
		}
		if *parseFlags.verbose {
			fillOpts = append(fillOpts, driver.OnSpanFilled(func(l int) {
				fmt.Fprintf(os.Stderr, "filled the spans of length %v\n", l)
			}))
		}
		p, err = driver.NewParser(g, driver.FillOptions(fillOpts...))
		if err != nil {
			return err
		}
	}

	var src io.Reader
	switch {
	case len(args) > 1:
		src = strings.NewReader(args[1])
	case *parseFlags.source != "":
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return errors.Wrapf(err, "cannot open the source file %s", *parseFlags.source)
		}
		defer f.Close()
		src = f
	default:
		src = os.Stdin
	}

	ts, err := newTokenStream(g, *parseFlags.lexer, src)
	if err != nil {
		return err
	}
	word, err := readWord(g, ts)
	if err != nil {
		return err
	}
	if *parseFlags.verbose {
		fmt.Fprintf(os.Stderr, "word: %v (%v symbols)\n", formatWord(word), len(word))
	}

	c, err := p.Parse(context.Background(), word)
	if err != nil {
		if !errors.Is(err, driver.ErrEmptyWord) {
			return err
		}
		if *parseFlags.verbose {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	if *parseFlags.format == formatJSON {
		return writeChartReport(os.Stdout, g, c)
	}

	if c != nil && *parseFlags.chart {
		driver.PrintChart(os.Stdout, c)
	}
	if c == nil || !c.Accepted() {
		fmt.Fprintf(os.Stdout, "The word is NOT generated by the grammar\n")
	} else {
		fmt.Fprintf(os.Stdout, "The word is generated by the grammar\n")
	}
	if c == nil {
		return nil
	}

	trees := c.AcceptingTrees()
	if *parseFlags.all {
		trees = c.Trees()
	}
	for i, t := range trees {
		fmt.Fprintf(os.Stdout, "\n#%v %v\n", i+1, t.Format())
		driver.PrintTree(os.Stdout, t)
	}

	return nil
}

// readWord reads a word and warns about the symbols that are not terminals of the grammar. Such symbols make the
// word rejected.
func readWord(g *grammar.Grammar, ts driver.TokenStream) ([]symbol.Symbol, error) {
	var word []symbol.Symbol
	for {
		tok, err := ts.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return word, nil
		}
		if tok.Invalid || !g.IsTerminal(tok.Terminal) {
			fmt.Fprintf(os.Stderr, "%v:%v: unknown terminal: '%v'\n", tok.Row+1, tok.Col+1, tok.Lexeme)
		}
		word = append(word, tok.Terminal)
	}
}

func formatWord(word []symbol.Symbol) string {
	texts := make([]string, len(word))
	for i, sym := range word {
		texts[i] = sym.Name()
	}
	return strings.Join(texts, " ")
}

func writeChartReport(w io.Writer, g *grammar.Grammar, c *driver.Chart) error {
	var report *spec.ChartReport
	if c != nil {
		report = driver.NewChartReport(c)
	} else {
		report = &spec.ChartReport{
			Grammar: driver.NewGrammarReport(g),
			Word:    []string{},
			Cells:   []*spec.CellReport{},
			Trees:   []*spec.TreeReport{},
		}
	}
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}
