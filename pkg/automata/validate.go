package automata

import (
	"slices"
	"sort"
)

// Validate proves raw well-formed and returns the verified automaton.
//
// Checks run in a fixed order and stop at the first failure:
//  1. the start state is a known state
//  2. every final state is a known state
//  3. every transition symbol is in the alphabet
//  4. every transition destination is a known state
//
// Within each check states and symbols are visited in sorted order, so the same
// malformed input always reports the same offender.
func Validate(raw RawNfa) (*Nfa, error) {
	states := sortedKeys(raw.Nodes)
	alphabet := nonNil(sortedSet(raw.Alphabet))

	if err := checkStates(raw.Nodes, raw.Start, raw.FinalStates); err != nil {
		return nil, err
	}

	for _, state := range states {
		for _, symbol := range sortedKeys(raw.Nodes[state]) {
			if !contains(alphabet, symbol) {
				return nil, &UnknownSymbolError{Symbol: symbol}
			}
		}
	}

	for _, state := range states {
		edges := raw.Nodes[state]
		for _, symbol := range sortedKeys(edges) {
			for _, dest := range sortedSet(edges[symbol]) {
				if _, ok := raw.Nodes[dest]; !ok {
					return nil, &UnknownStateError{State: dest}
				}
			}
		}
	}

	// Copy so later changes to raw cannot reach the verified value.
	nodes := make(map[string]map[string][]string, len(raw.Nodes))
	for _, state := range states {
		edges := make(map[string][]string, len(raw.Nodes[state]))
		for symbol, dests := range raw.Nodes[state] {
			if len(dests) == 0 {
				continue
			}
			edges[symbol] = sortedSet(dests)
		}
		nodes[state] = edges
	}
	final := make(map[string]struct{}, len(raw.FinalStates))
	for _, s := range raw.FinalStates {
		final[s] = struct{}{}
	}

	return &Nfa{
		start:    raw.Start,
		alphabet: alphabet,
		states:   states,
		final:    final,
		nodes:    nodes,
	}, nil
}

// ValidateDfa applies the same checks as Validate to a deterministic automaton
// description. States are ordered by name; each state's only member is itself.
func ValidateDfa(raw RawDfa) (*Dfa, error) {
	names := sortedKeys(raw.Nodes)
	alphabet := nonNil(sortedSet(raw.Alphabet))

	if err := checkStates(raw.Nodes, raw.Start, raw.FinalStates); err != nil {
		return nil, err
	}

	for _, name := range names {
		for _, symbol := range sortedKeys(raw.Nodes[name]) {
			if !contains(alphabet, symbol) {
				return nil, &UnknownSymbolError{Symbol: symbol}
			}
		}
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	for _, name := range names {
		edges := raw.Nodes[name]
		for _, symbol := range sortedKeys(edges) {
			if _, ok := index[edges[symbol]]; !ok {
				return nil, &UnknownStateError{State: edges[symbol]}
			}
		}
	}

	final := make(map[string]bool, len(raw.FinalStates))
	for _, s := range raw.FinalStates {
		final[s] = true
	}

	states := make([]dfaState, len(names))
	for i, name := range names {
		next := make(map[string]int, len(raw.Nodes[name]))
		for symbol, dest := range raw.Nodes[name] {
			next[symbol] = index[dest]
		}
		states[i] = dfaState{
			name:    name,
			members: []string{name},
			final:   final[name],
			next:    next,
		}
	}
	return newDfa(index[raw.Start], alphabet, states), nil
}

// checkStates runs the first two checks shared by both validators.
func checkStates[V any](nodes map[string]V, start string, finals []string) error {
	if _, ok := nodes[start]; !ok {
		return &UnknownStateError{State: start}
	}
	for _, s := range sortedSet(finals) {
		if _, ok := nodes[s]; !ok {
			return &UnknownStateError{State: s}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(sorted []string, s string) bool {
	_, found := slices.BinarySearch(sorted, s)
	return found
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
