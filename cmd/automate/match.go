package main

import (
	"errors"
	"fmt"

	automaton "github.com/geange/automate"
	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("some inputs did not match")

var matchCmd = &cobra.Command{
	Use:   "match <regexp> <input>...",
	Short: "Test inputs against a regular expression",
	Long:  "Prints one line per input with the match result. With --strict the command fails unless every input matches.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := compile(args[0])
		if err != nil {
			return fmt.Errorf("compiling %q: %w", args[0], err)
		}
		strict, _ := cmd.Flags().GetBool("strict")

		run := automaton.NewRunAutomaton(h.Automaton())
		failed := 0
		for _, input := range args[1:] {
			ok := run.Run(input)
			if !ok {
				failed++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q\t%t\n", input, ok)
		}
		if strict && failed > 0 {
			return fmt.Errorf("%w: %d of %d", errNoMatch, failed, len(args)-1)
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().Bool("strict", false, "Fail unless every input matches")
	rootCmd.AddCommand(matchCmd)
}
