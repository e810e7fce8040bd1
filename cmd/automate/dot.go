package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dotCmd = &cobra.Command{
	Use:   "dot <regexp>",
	Short: "Print the automaton of a regular expression as a Graphviz digraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := compile(args[0])
		if err != nil {
			return fmt.Errorf("compiling %q: %w", args[0], err)
		}
		return h.Automaton().WriteDot(cmd.OutOrStdout())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <regexp>",
	Short: "Print the operator history of a regular expression as a Graphviz digraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := compile(args[0])
		if err != nil {
			return fmt.Errorf("compiling %q: %w", args[0], err)
		}
		return h.WriteDot(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(dotCmd)
	rootCmd.AddCommand(historyCmd)
}
