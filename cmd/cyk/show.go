package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nihei9/cyk/driver"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print a grammar in a readable format",
		Example: `  cyk show grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	showFlags.format = cmd.Flags().StringP("format", "f", formatText, "output format: text or json")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		reportPanic(recover(), &retErr)
	}()

	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}

	switch *showFlags.format {
	case formatText:
		driver.PrintGrammar(os.Stdout, g)
	case formatJSON:
		b, err := json.Marshal(driver.NewGrammarReport(g))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
	default:
		return fmt.Errorf("unknown format: %v", *showFlags.format)
	}

	return nil
}
