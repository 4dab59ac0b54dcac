package main

import (
	"fmt"

	"github.com/aretw0/quotient/internal/validator"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check an automaton for consistency",
	Long: `Reports the first unknown state or symbol in the automaton, if any.
NFAs are also checked for unreachable states and states that cannot accept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asDfa, _ := cmd.Flags().GetBool("dfa")

		s, err := openSession(cmd, args)
		if err != nil {
			return err
		}
		defer s.Close()

		var states, symbols int
		var report validator.Report
		if asDfa {
			raw, err := s.input.DecodeDfa()
			if err != nil {
				return err
			}
			dfa, err := automata.ValidateDfa(raw)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			states, symbols = dfa.NumStates(), len(dfa.Alphabet())
		} else {
			raw, err := s.input.DecodeNfa()
			if err != nil {
				return err
			}
			nfa, err := s.engine.Validate(cmd.Context(), raw)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			states, symbols = len(nfa.States()), len(nfa.Alphabet())
			report = validator.Inspect(nfa)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Automaton is valid! ✅ (%d states, %d symbols)\n", states, symbols)
		if !report.Clean() {
			fmt.Fprintf(out, "Warnings:\n%s\n", report)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("dfa", false, "Read the input as a DFA")
}
