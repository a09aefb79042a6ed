package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cyk",
	Short: "Parse words with a context-free grammar in Chomsky normal form",
	Long: `cyk provides the following features:
- Decides whether a grammar generates a word and prints all of its derivation trees.
- Checks whether a grammar is in Chomsky normal form.
- Runs test cases consisting of words and their expected derivation trees.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
