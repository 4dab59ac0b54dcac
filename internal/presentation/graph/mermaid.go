package graph

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/quotient/pkg/automata"
)

// Overlay highlights a run of the automaton on the diagram.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

// edge groups every symbol leading from one state to another.
type edge struct {
	from, to string
	symbols  []string
}

// GenerateMermaid produces a Mermaid flowchart of a DFA.
// Accepting states are drawn as double circles; the entry arrow points at the start
// state. Parallel transitions share one arrow labelled with all their symbols.
func GenerateMermaid(raw automata.RawDfa, overlay *Overlay) string {
	var edges []edge
	for from, next := range raw.Nodes {
		byDest := make(map[string][]string)
		for symbol, to := range next {
			byDest[to] = append(byDest[to], symbol)
		}
		for to, symbols := range byDest {
			edges = append(edges, edge{from: from, to: to, symbols: symbols})
		}
	}
	return render(sortedStates(raw.Nodes), raw.Start, raw.FinalStates, edges, overlay)
}

// GenerateNfaMermaid produces a Mermaid flowchart of an NFA.
func GenerateNfaMermaid(raw automata.RawNfa) string {
	var edges []edge
	for from, next := range raw.Nodes {
		byDest := make(map[string][]string)
		for symbol, dests := range next {
			for _, to := range dests {
				byDest[to] = append(byDest[to], symbol)
			}
		}
		for to, symbols := range byDest {
			edges = append(edges, edge{from: from, to: to, symbols: symbols})
		}
	}
	return render(sortedStates(raw.Nodes), raw.Start, raw.FinalStates, edges, nil)
}

func render(states []string, start string, finals []string, edges []edge, overlay *Overlay) string {
	ids := make(map[string]string, len(states))
	for i, s := range states {
		ids[s] = fmt.Sprintf("s%d", i)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    start_(( )) --> " + ids[start] + "\n")

	for _, s := range states {
		if slices.Contains(finals, s) {
			fmt.Fprintf(&sb, "    %s(((\"%s\")))\n", ids[s], label(s))
		} else {
			fmt.Fprintf(&sb, "    %s((\"%s\"))\n", ids[s], label(s))
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})
	for _, e := range edges {
		sort.Strings(e.symbols)
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[e.from], escape(strings.Join(e.symbols, ", ")), ids[e.to])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id, ok := ids[s]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

func sortedStates[V any](nodes map[string]V) []string {
	states := make([]string, 0, len(nodes))
	for s := range nodes {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// label renders a state name; the dead state has an empty name.
func label(name string) string {
	if name == automata.DeadState {
		return "∅"
	}
	return escape(name)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
