package automata

import (
	"encoding/json"
	"slices"
)

// RawNfa is the unverified wire shape of a nondeterministic automaton.
// The set of states is implicit: the keys of Nodes.
type RawNfa struct {
	Start       string                         `json:"start" yaml:"start"`
	Alphabet    []string                       `json:"alphabet" yaml:"alphabet"`
	FinalStates []string                       `json:"final_states" yaml:"final_states"`
	Nodes       map[string]map[string][]string `json:"nodes" yaml:"nodes"`
}

// Nfa is a validated nondeterministic automaton. It can only be obtained from Validate.
type Nfa struct {
	start    string
	alphabet []string
	states   []string
	final    map[string]struct{}
	nodes    map[string]map[string][]string
}

// Start returns the start state.
func (n *Nfa) Start() string {
	return n.start
}

// Alphabet returns the sorted alphabet.
func (n *Nfa) Alphabet() []string {
	return slices.Clone(n.alphabet)
}

// States returns the sorted state ids.
func (n *Nfa) States() []string {
	return slices.Clone(n.states)
}

// FinalStates returns the sorted final states.
func (n *Nfa) FinalStates() []string {
	out := make([]string, 0, len(n.final))
	for s := range n.final {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsFinal reports whether state is accepting.
func (n *Nfa) IsFinal(state string) bool {
	_, ok := n.final[state]
	return ok
}

// Next returns the sorted destinations of state on symbol.
func (n *Nfa) Next(state, symbol string) []string {
	return slices.Clone(n.nodes[state][symbol])
}

// Accepts reports whether the automaton accepts the word (a sequence of symbols).
func (n *Nfa) Accepts(word []string) bool {
	current := map[string]struct{}{n.start: {}}
	for _, symbol := range word {
		next := make(map[string]struct{})
		for state := range current {
			for _, dest := range n.nodes[state][symbol] {
				next[dest] = struct{}{}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	for state := range current {
		if n.IsFinal(state) {
			return true
		}
	}
	return false
}

// Raw returns the wire representation. Slices are sorted.
func (n *Nfa) Raw() RawNfa {
	nodes := make(map[string]map[string][]string, len(n.nodes))
	for state, edges := range n.nodes {
		out := make(map[string][]string, len(edges))
		for symbol, dests := range edges {
			out[symbol] = slices.Clone(dests)
		}
		nodes[state] = out
	}
	return RawNfa{
		Start:       n.start,
		Alphabet:    n.Alphabet(),
		FinalStates: n.FinalStates(),
		Nodes:       nodes,
	}
}

// MarshalJSON encodes the automaton in the wire format.
func (n *Nfa) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Raw())
}
