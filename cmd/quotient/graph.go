package main

import (
	"fmt"

	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the input NFA, its DFA or its minimal DFA.
With --word the states visited by that word are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asDfa, _ := cmd.Flags().GetBool("dfa")
		target, _ := cmd.Flags().GetString("stage")

		s, err := openSession(cmd, args)
		if err != nil {
			return err
		}
		defer s.Close()

		var st stage
		switch target {
		case "nfa":
			if asDfa {
				return fmt.Errorf("--stage nfa needs an NFA input")
			}
			raw, err := s.input.DecodeNfa()
			if err != nil {
				return err
			}
			nfa, err := s.engine.Validate(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateNfaMermaid(nfa.Raw()))
			return nil
		case "dfa":
			st = stageDeterminize
		case "minimal":
			st = stageMinimize
		default:
			return fmt.Errorf("unknown stage %q (want nfa, dfa or minimal)", target)
		}

		dfa, err := s.dfa(cmd.Context(), st, asDfa)
		if err != nil {
			return err
		}
		raw, err := dfa.Raw()
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("word") {
			word, _ := cmd.Flags().GetString("word")
			path := cli.Trace(dfa, cli.ParseWord(word))
			overlay = &graph.Overlay{
				VisitedStates: path,
				CurrentState:  path[len(path)-1],
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(raw, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("dfa", false, "Read the input as a DFA")
	graphCmd.Flags().String("stage", "minimal", "Which automaton to draw: nfa, dfa or minimal")
	graphCmd.Flags().StringP("word", "w", "", "Highlight the states visited by this comma separated word")
}
