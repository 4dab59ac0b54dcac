// Package validator reports structural warnings on verified automata. None of
// them change the language; conversions keep every state.
package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/quotient/pkg/automata"
)

// Report lists the states worth a second look.
type Report struct {
	// Unreachable states cannot be entered from the start state.
	Unreachable []string
	// DeadEnds are reachable states from which no accepting state can be reached.
	DeadEnds []string
}

// Clean reports whether nothing was found.
func (r Report) Clean() bool {
	return len(r.Unreachable) == 0 && len(r.DeadEnds) == 0
}

// String renders the findings one per line.
func (r Report) String() string {
	var lines []string
	for _, s := range r.Unreachable {
		lines = append(lines, fmt.Sprintf("unreachable state %q", s))
	}
	for _, s := range r.DeadEnds {
		lines = append(lines, fmt.Sprintf("state %q cannot reach an accepting state", s))
	}
	return strings.Join(lines, "\n")
}

// Inspect crawls nfa forward from the start state and backward from the
// accepting states.
func Inspect(nfa *automata.Nfa) Report {
	states := nfa.States()
	alphabet := nfa.Alphabet()

	reverse := make(map[string][]string)
	for _, s := range states {
		for _, symbol := range alphabet {
			for _, dest := range nfa.Next(s, symbol) {
				reverse[dest] = append(reverse[dest], s)
			}
		}
	}

	forward := crawl([]string{nfa.Start()}, func(s string) []string {
		var out []string
		for _, symbol := range alphabet {
			out = append(out, nfa.Next(s, symbol)...)
		}
		return out
	})
	backward := crawl(nfa.FinalStates(), func(s string) []string {
		return reverse[s]
	})

	var report Report
	for _, s := range states {
		switch {
		case !forward[s]:
			report.Unreachable = append(report.Unreachable, s)
		case !backward[s]:
			report.DeadEnds = append(report.DeadEnds, s)
		}
	}
	slices.Sort(report.Unreachable)
	slices.Sort(report.DeadEnds)
	return report
}

// crawl runs a breadth-first search and returns the visited set.
func crawl(roots []string, next func(string) []string) map[string]bool {
	visited := make(map[string]bool)
	queue := slices.Clone(roots)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range next(current) {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}
