package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/quotient/internal/presentation/graph"
	"github.com/aretw0/quotient/pkg/automata"
)

// Output formats accepted by the --format flag.
const (
	OutputJSON    = "json"
	OutputTable   = "table"
	OutputMermaid = "mermaid"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(string) (string, error)

// WriteDfa prints the automaton in the requested format. Tables go through render
// when it is not nil.
func WriteDfa(w io.Writer, dfa *automata.Dfa, format string, render RenderFunc) error {
	raw, err := dfa.Raw()
	if err != nil {
		return err
	}

	switch format {
	case OutputJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)
	case OutputMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(raw, nil))
		return err
	case OutputTable:
		table := graph.MarkdownTable(raw)
		if render != nil {
			if out, err := render(table); err == nil {
				table = out
			}
		}
		_, err := io.WriteString(w, table)
		return err
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, OutputJSON, OutputTable, OutputMermaid)
	}
}

// ParseWord splits a comma separated word into symbols. Surrounding spaces are
// ignored and an empty string is the empty word.
func ParseWord(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Trace follows word through dfa and returns the visited states, starting with
// the start state. The trace stops at the first missing transition, in which case
// the last element is automata.DeadState.
func Trace(dfa *automata.Dfa, word []string) []string {
	state := dfa.Start()
	path := []string{state}
	for _, symbol := range word {
		next, ok := dfa.Next(state, symbol)
		if !ok {
			return append(path, automata.DeadState)
		}
		state = next
		path = append(path, state)
	}
	return path
}
