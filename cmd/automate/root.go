package main

import (
	"log/slog"
	"os"

	automaton "github.com/geange/automate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "automate",
	Short: "Finite automaton toolkit",
	Long:  "automate compiles regular expressions into minimal automata, tests strings against them and exports Graphviz diagrams.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			automaton.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Bool("debug", false, "Log construction steps to stderr")
	rootCmd.PersistentFlags().Int("syntax", automaton.ALL, "Syntax flags enabling optional operators (& ~ # @ <name>)")
	rootCmd.PersistentFlags().BoolP("ignore-case", "i", false, "Match ASCII letters case-insensitively")
	rootCmd.PersistentFlags().Bool("minimize", true, "Minimize intermediate and final automata")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("syntax", rootCmd.PersistentFlags().Lookup("syntax"))
	_ = viper.BindPFlag("ignore_case", rootCmd.PersistentFlags().Lookup("ignore-case"))
	_ = viper.BindPFlag("minimize", rootCmd.PersistentFlags().Lookup("minimize"))
}

func initConfig() {
	viper.SetEnvPrefix("AUTOMATE")
	viper.AutomaticEnv()
}

// compile parses expr with the configured flags and records its construction history.
func compile(expr string) (*automaton.History, error) {
	opts := []automaton.RegExpOption{automaton.WithSyntaxFlags(viper.GetInt("syntax"))}
	if viper.GetBool("ignore_case") {
		opts = append(opts, automaton.WithMatchFlags(automaton.ASCII_CASE_INSENSITIVE))
	}
	re, err := automaton.NewRegExp(expr, opts...)
	if err != nil {
		return nil, err
	}

	var build []automaton.ToAutomatonOption
	if !viper.GetBool("minimize") {
		build = append(build, automaton.WithoutMinimize())
	}
	return re.ToHistory(build...)
}
