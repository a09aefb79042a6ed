package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/cyk/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	lexer   *string
	workers *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  cyk test grammar.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.lexer = cmd.Flags().StringP("lexer", "l", lexerRune, "how to split a source into terminals: rune or grammar")
	testFlags.workers = cmd.Flags().IntP("workers", "w", 1, "the number of goroutines filling a chart")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		reportPanic(recover(), &retErr)
	}()

	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	ls, err := newLexicalSpec(g, *testFlags.lexer)
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar: g,
		Cases:   cs,
		LexSpec: ls,
		Workers: *testFlags.workers,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
