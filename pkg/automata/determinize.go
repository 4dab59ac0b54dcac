package automata

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Determinize converts a verified NFA into an equivalent DFA by subset construction.
// Each DFA state stands for the set of NFA states reachable together; its name is
// ComposeName of that set. Worst case complexity: exponential in the number of NFA states.
func Determinize(nfa *Nfa) *Dfa {
	dfa, err := DeterminizeLimit(nfa, 0)
	if err != nil {
		// Unreachable without a limit.
		panic(fmt.Sprintf("automata: unlimited determinization failed: %v", err))
	}
	return dfa
}

// DeterminizeLimit is Determinize with a bound on the number of DFA states the
// construction may create. It returns ErrTooComplex once the bound is exceeded.
// A maxStates of zero or less means no bound.
func DeterminizeLimit(nfa *Nfa, maxStates int) (*Dfa, error) {
	size := uint(len(nfa.states))
	index := make(map[string]uint, size)
	for i, s := range nfa.states {
		index[s] = uint(i)
	}

	// succ[state][symbol] holds the NFA successors as a bitset, nil when there are none.
	succ := make([][]*bitset.BitSet, size)
	finals := bitset.New(size)
	for i, s := range nfa.states {
		succ[i] = make([]*bitset.BitSet, len(nfa.alphabet))
		for k, symbol := range nfa.alphabet {
			dests := nfa.nodes[s][symbol]
			if len(dests) == 0 {
				continue
			}
			set := bitset.New(size)
			for _, d := range dests {
				set.Set(index[d])
			}
			succ[i][k] = set
		}
		if nfa.IsFinal(s) {
			finals.Set(uint(i))
		}
	}

	b := &subsetBuilder{
		nfa:    nfa,
		finals: finals,
		seen:   make(map[string]int),
		limit:  maxStates,
	}

	start := bitset.New(size).Set(index[nfa.start])
	if _, err := b.discover(start); err != nil {
		return nil, err
	}

	resolved := bitset.New(0)
	for len(b.worklist) > 0 {
		current := b.worklist[0]
		b.worklist = b.worklist[1:]

		if resolved.Test(uint(current)) {
			panic(fmt.Sprintf("automata: configuration %d processed twice", current))
		}
		resolved.Set(uint(current))

		config := b.configs[current]
		for k, symbol := range nfa.alphabet {
			dest := bitset.New(size)
			for i, ok := config.NextSet(0); ok; i, ok = config.NextSet(i + 1) {
				if set := succ[i][k]; set != nil {
					dest.InPlaceUnion(set)
				}
			}
			if dest.None() {
				// Empty configuration: the dead state, left implicit.
				continue
			}
			j, err := b.discover(dest)
			if err != nil {
				return nil, err
			}
			b.states[current].next[symbol] = j
		}
	}

	// Discovery order starts at the singleton start configuration.
	return newDfa(0, nfa.Alphabet(), b.states), nil
}

// subsetBuilder owns the DFA under construction. A configuration gets its index
// when first discovered, so it is queued at most once.
type subsetBuilder struct {
	nfa      *Nfa
	finals   *bitset.BitSet
	seen     map[string]int
	configs  []*bitset.BitSet
	states   []dfaState
	worklist []int
	limit    int
}

// discover returns the index of config, registering and queueing it when new.
func (b *subsetBuilder) discover(config *bitset.BitSet) (int, error) {
	key := configKey(config)
	if j, ok := b.seen[key]; ok {
		return j, nil
	}
	if b.limit > 0 && len(b.states) >= b.limit {
		return 0, fmt.Errorf("%w: more than %d states", ErrTooComplex, b.limit)
	}

	members := make([]string, 0, config.Count())
	for i, ok := config.NextSet(0); ok; i, ok = config.NextSet(i + 1) {
		members = append(members, b.nfa.states[i])
	}

	j := len(b.states)
	if j != len(b.configs) {
		panic("automata: subset builder out of sync")
	}
	b.seen[key] = j
	b.configs = append(b.configs, config)
	b.states = append(b.states, dfaState{
		name:    ComposeName(members),
		members: members,
		final:   config.IntersectionCardinality(b.finals) > 0,
		next:    make(map[string]int, len(b.nfa.alphabet)),
	})
	b.worklist = append(b.worklist, j)
	return j, nil
}
