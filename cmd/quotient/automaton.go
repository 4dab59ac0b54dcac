package main

import (
	"context"
	"os"

	"github.com/aretw0/quotient"
	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/internal/presentation/tui"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/spf13/cobra"
)

type stage int

const (
	stageDeterminize stage = iota
	stageMinimize
)

// session bundles what every automaton command needs.
type session struct {
	engine *quotient.Engine
	input  cli.Input
}

func openSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	in, err := cli.ReadInput(path, os.Stdin)
	if err != nil {
		return nil, err
	}

	engine, err := cli.NewEngine(cli.EngineOptions{Config: cfg, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &session{engine: engine, input: in}, nil
}

// dfa runs the input through the pipeline up to st. With asDfa the input is a
// DFA and determinization is skipped.
func (s *session) dfa(ctx context.Context, st stage, asDfa bool) (*automata.Dfa, error) {
	if asDfa {
		raw, err := s.input.DecodeDfa()
		if err != nil {
			return nil, err
		}
		if st == stageDeterminize {
			return automata.ValidateDfa(raw)
		}
		return s.engine.MinimizeDfa(ctx, raw)
	}

	raw, err := s.input.DecodeNfa()
	if err != nil {
		return nil, err
	}
	if st == stageDeterminize {
		return s.engine.Determinize(ctx, raw)
	}
	return s.engine.Minimize(ctx, raw)
}

func (s *session) Close() error {
	return s.engine.Close()
}

// newConvertCommand builds the determinize and minimize commands, which differ
// only in how far they run the pipeline.
func newConvertCommand(use, short, long string, st stage) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asDfa, _ := cmd.Flags().GetBool("dfa")
			complete, _ := cmd.Flags().GetBool("complete")
			format, _ := cmd.Flags().GetString("format")

			s, err := openSession(cmd, args)
			if err != nil {
				return err
			}
			defer s.Close()

			dfa, err := s.dfa(cmd.Context(), st, asDfa)
			if err != nil {
				return err
			}
			if complete {
				dfa = automata.Complete(dfa)
			}

			var render cli.RenderFunc
			if format == cli.OutputTable {
				render = tui.NewRenderer()
			}
			return cli.WriteDfa(cmd.OutOrStdout(), dfa, format, render)
		},
	}
	cmd.Flags().Bool("dfa", false, "Read the input as a DFA")
	cmd.Flags().Bool("complete", false, "Make the dead state explicit")
	cmd.Flags().StringP("format", "f", cli.OutputJSON, "Output format: json, table or mermaid")
	return cmd
}

func init() {
	rootCmd.AddCommand(newConvertCommand(
		"minimize",
		"Convert an automaton into its minimal DFA",
		`Determinizes the NFA read from [file] (or stdin) and merges equivalent states.
With --dfa the input is already deterministic and only minimization runs.`,
		stageMinimize,
	))
	rootCmd.AddCommand(newConvertCommand(
		"determinize",
		"Convert an NFA into an equivalent DFA",
		`Runs the subset construction on the NFA read from [file] (or stdin).
Each DFA state is named after the NFA states it stands for, joined by " + ".`,
		stageDeterminize,
	))
}
