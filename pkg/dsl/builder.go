package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/quotient/pkg/automata"
)

// Builder manages the automaton construction.
type Builder struct {
	start    string
	order    []string
	alphabet []string
	nodes    map[string]*NodeBuilder
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		id:      id,
		edges:   make(map[string][]string),
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Start sets the start state. It defaults to the first state added.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Alphabet declares symbols up front, including ones no transition uses.
// Symbols used by transitions are added automatically.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// Raw compiles the builder into the wire representation without validating it.
// States referenced only as destinations are not added.
func (b *Builder) Raw() automata.RawNfa {
	raw := automata.RawNfa{
		Start:       b.start,
		FinalStates: []string{},
		Nodes:       make(map[string]map[string][]string, len(b.nodes)),
	}
	if raw.Start == "" && len(b.order) > 0 {
		raw.Start = b.order[0]
	}

	alphabet := slices.Clone(b.alphabet)
	for _, id := range b.order {
		nb := b.nodes[id]
		edges := make(map[string][]string, len(nb.edges))
		for symbol, dests := range nb.edges {
			edges[symbol] = slices.Clone(dests)
			alphabet = append(alphabet, symbol)
		}
		raw.Nodes[id] = edges
		if nb.final {
			raw.FinalStates = append(raw.FinalStates, id)
		}
	}
	slices.Sort(alphabet)
	raw.Alphabet = slices.Compact(alphabet)
	if raw.Alphabet == nil {
		raw.Alphabet = []string{}
	}
	return raw
}

// Build compiles and validates the automaton.
func (b *Builder) Build() (*automata.Nfa, error) {
	nfa, err := automata.Validate(b.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	return nfa, nil
}
