package main

import (
	"fmt"
	"os"

	"github.com/nihei9/cyk/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar file path>",
		Short:   "Check whether a grammar is in Chomsky normal form",
		Example: `  cyk check grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		reportPanic(recover(), &retErr)
	}()

	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	violations := grammar.CNFViolations(g)
	if len(violations) == 0 {
		fmt.Fprintf(os.Stdout, "The grammar is in Chomsky normal form\n")
		return nil
	}
	for _, r := range violations {
		fmt.Fprintf(os.Stdout, "rule #%v: %v\n", r.Num().Int(), r)
	}
	return &grammar.NotCNFError{
		GrammarName: g.Name(),
		Violations:  violations,
	}
}
