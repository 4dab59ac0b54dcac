package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a word through the minimal DFA",
	Long: `Minimizes the automaton and follows the word given with --word through it,
printing every visited state and whether the word is accepted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asDfa, _ := cmd.Flags().GetBool("dfa")
		word, _ := cmd.Flags().GetString("word")

		s, err := openSession(cmd, args)
		if err != nil {
			return err
		}
		defer s.Close()

		dfa, err := s.dfa(cmd.Context(), stageMinimize, asDfa)
		if err != nil {
			return err
		}

		symbols := cli.ParseWord(word)
		path := cli.Trace(dfa, symbols)
		for i, state := range path {
			if state == automata.DeadState {
				path[i] = "∅"
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, strings.Join(path, " -> "))
		if dfa.Accepts(symbols) {
			fmt.Fprintln(out, "accepted")
		} else {
			fmt.Fprintln(out, "rejected")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("dfa", false, "Read the input as a DFA")
	runCmd.Flags().StringP("word", "w", "", "Comma separated symbols, e.g. a,b,a")
}
