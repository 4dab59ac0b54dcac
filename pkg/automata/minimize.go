package automata

import (
	"cmp"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Minimize returns the minimal DFA equivalent to d.
//
// Equivalent states are found with the table-filling algorithm: pairs that differ in
// finality are distinguishable, and distinguishability propagates backwards along
// the reverse transition graph until a fixpoint. Equivalent states are then merged
// into the lexicographically smallest one, whose name records every state merged
// into it ("1 | 3"). Which name survives a tie is implementation-defined; the
// language and the state count are not.
//
// Missing transitions are treated as transitions to an implicit sink; they stay
// missing in the result. Explicit states equivalent to that sink are merged with each other
// but not removed, so the result may keep one non-accepting trap state besides the
// implicit dead state.
func Minimize(d *Dfa) *Dfa {
	pairs := equivalentPairs(d)
	return mergeStates(d, pairs)
}

// statePair is an unordered pair of state indices normalized so that a < b.
type statePair struct {
	a, b int
}

// equivalentPairs runs the table-filling algorithm and returns every pair of
// distinct explicit states that no word distinguishes.
func equivalentPairs(d *Dfa) []statePair {
	n := len(d.states)
	sink := n
	m := n + 1
	final := func(i int) bool { return i < n && d.states[i].final }

	// reverse[k][t] lists the states that move to t on the k-th symbol.
	reverse := make([][][]int, len(d.alphabet))
	for k, symbol := range d.alphabet {
		reverse[k] = make([][]int, m)
		for i, s := range d.states {
			t, ok := s.next[symbol]
			if !ok {
				t = sink
			}
			reverse[k][t] = append(reverse[k][t], i)
		}
		reverse[k][sink] = append(reverse[k][sink], sink)
	}

	pairIndex := func(p statePair) uint { return uint(p.a*m + p.b) }

	// candidates holds the pairs still believed equivalent.
	candidates := bitset.New(uint(m * m))
	var worklist []statePair
	for a := 0; a < m; a++ {
		for b := a + 1; b < m; b++ {
			p := statePair{a, b}
			if final(a) != final(b) {
				worklist = append(worklist, p)
				continue
			}
			candidates.Set(pairIndex(p))
		}
	}

	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]

		for k := range d.alphabet {
			for _, x := range reverse[k][p.a] {
				for _, y := range reverse[k][p.b] {
					if x == y {
						continue
					}
					q := statePair{min(x, y), max(x, y)}
					if candidates.Test(pairIndex(q)) {
						candidates.Clear(pairIndex(q))
						worklist = append(worklist, q)
					}
				}
			}
		}
	}

	var pairs []statePair
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if candidates.Test(pairIndex(statePair{a, b})) {
				pairs = append(pairs, statePair{a, b})
			}
		}
	}
	return pairs
}

// mergeStates collapses every equivalent pair into a fresh automaton.
func mergeStates(d *Dfa, pairs []statePair) *Dfa {
	n := len(d.states)
	byName := func(i, j int) int {
		return cmp.Or(cmp.Compare(d.states[i].name, d.states[j].name), cmp.Compare(i, j))
	}

	// Orient each pair as (left, right) with left lexicographically first.
	ordered := make([]statePair, len(pairs))
	for i, p := range pairs {
		if byName(p.a, p.b) > 0 {
			p = statePair{p.b, p.a}
		}
		ordered[i] = p
	}
	slices.SortFunc(ordered, func(x, y statePair) int {
		return cmp.Or(byName(x.a, y.a), byName(x.b, y.b))
	})

	rep := make([]int, n)
	names := make([]string, n)
	members := make([][]string, n)
	for i, s := range d.states {
		rep[i] = i
		names[i] = s.name
		members[i] = []string{s.name}
	}

	merged := bitset.New(uint(n))
	for _, p := range ordered {
		left, right := p.a, p.b
		if merged.Test(uint(left)) || merged.Test(uint(right)) {
			continue
		}
		merged.Set(uint(right))
		rep[right] = left
		names[left] = MergeName(names[left], names[right])
		members[left] = append(members[left], members[right]...)
	}

	find := func(i int) int {
		for rep[i] != i {
			i = rep[i]
		}
		return i
	}

	// Survivors keep their relative order.
	renumber := make([]int, n)
	count := 0
	for i := range d.states {
		if find(i) == i {
			renumber[i] = count
			count++
		}
	}

	states := make([]dfaState, 0, count)
	for i, s := range d.states {
		if find(i) != i {
			continue
		}
		next := make(map[string]int, len(s.next))
		for symbol, j := range s.next {
			next[symbol] = renumber[find(j)]
		}
		states = append(states, dfaState{
			name:    names[i],
			members: members[i],
			final:   s.final,
			next:    next,
		})
	}

	return newDfa(renumber[find(d.start)], d.Alphabet(), states)
}
