package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "fresh <grammar file path> [base name]",
		Short: "Print a symbol name the grammar doesn't use yet",
		Long: `fresh prints a name derived from the base name by appending quotes until the name collides with no
symbol of the grammar. The base name defaults to the axiom.`,
		Example: `  cyk fresh grammar.txt S`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runFresh,
	}
	rootCmd.AddCommand(cmd)
}

func runFresh(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		reportPanic(recover(), &retErr)
	}()

	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	base := g.Axiom().Name()
	if len(args) > 1 {
		base = args[1]
	}
	fmt.Fprintf(os.Stdout, "%v\n", g.CreateFreshSymbol(base))

	return nil
}
