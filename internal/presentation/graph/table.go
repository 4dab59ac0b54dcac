package graph

import (
	"strings"

	"github.com/aretw0/quotient/pkg/automata"
)

// MarkdownTable renders the transition table of a DFA as Markdown.
// The start state is marked with "→" and accepting states with "*".
// Missing transitions show as "∅".
func MarkdownTable(raw automata.RawDfa) string {
	var sb strings.Builder

	sb.WriteString("| state |")
	for _, symbol := range raw.Alphabet {
		sb.WriteString(" " + cell(symbol) + " |")
	}
	sb.WriteString("\n|---|")
	for range raw.Alphabet {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	finals := make(map[string]bool, len(raw.FinalStates))
	for _, s := range raw.FinalStates {
		finals[s] = true
	}

	for _, s := range sortedStates(raw.Nodes) {
		marker := ""
		if s == raw.Start {
			marker += "→"
		}
		if finals[s] {
			marker += "*"
		}
		if marker != "" {
			marker += " "
		}
		sb.WriteString("| " + marker + cell(label(s)) + " |")
		for _, symbol := range raw.Alphabet {
			to, ok := raw.Nodes[s][symbol]
			if !ok {
				sb.WriteString(" ∅ |")
				continue
			}
			sb.WriteString(" " + cell(label(to)) + " |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// cell escapes the pipes used by state names merged during minimization.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
