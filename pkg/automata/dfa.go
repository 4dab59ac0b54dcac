package automata

import (
	"encoding/json"
	"fmt"
	"slices"
)

// RawDfa is the wire shape of a deterministic automaton: each symbol maps to a
// single destination.
type RawDfa struct {
	Start       string                       `json:"start" yaml:"start"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet"`
	FinalStates []string                     `json:"final_states" yaml:"final_states"`
	Nodes       map[string]map[string]string `json:"nodes" yaml:"nodes"`
}

// Dfa is a deterministic automaton. It is verified by construction.
//
// States are identified by their position; the display name is derived from the
// states they were built from. A missing transition leads to the dead state.
type Dfa struct {
	start    int
	alphabet []string
	states   []dfaState

	// byName resolves display names; collision holds the first name shared by two states.
	byName    map[string]int
	collision string
}

type dfaState struct {
	name    string
	members []string
	final   bool
	next    map[string]int
}

func newDfa(start int, alphabet []string, states []dfaState) *Dfa {
	d := &Dfa{
		start:    start,
		alphabet: alphabet,
		states:   states,
		byName:   make(map[string]int, len(states)),
	}
	for i, s := range states {
		if _, dup := d.byName[s.name]; dup {
			if d.collision == "" {
				d.collision = s.name
			}
			continue
		}
		d.byName[s.name] = i
	}
	return d
}

// Start returns the name of the start state.
func (d *Dfa) Start() string {
	return d.states[d.start].name
}

// Alphabet returns the sorted alphabet.
func (d *Dfa) Alphabet() []string {
	return slices.Clone(d.alphabet)
}

// NumStates returns the number of explicit states (the implicit dead state is not counted).
func (d *Dfa) NumStates() int {
	return len(d.states)
}

// States returns the state names in construction order.
func (d *Dfa) States() []string {
	out := make([]string, len(d.states))
	for i, s := range d.states {
		out[i] = s.name
	}
	return out
}

// FinalStates returns the sorted names of the accepting states.
func (d *Dfa) FinalStates() []string {
	out := make([]string, 0)
	for _, s := range d.states {
		if s.final {
			out = append(out, s.name)
		}
	}
	slices.Sort(out)
	return out
}

// IsFinal reports whether the named state is accepting.
func (d *Dfa) IsFinal(name string) bool {
	i, ok := d.byName[name]
	return ok && d.states[i].final
}

// Next returns the destination of the named state on symbol.
// ok is false when the transition leads to the dead state.
func (d *Dfa) Next(name, symbol string) (dest string, ok bool) {
	i, found := d.byName[name]
	if !found {
		return DeadState, false
	}
	j, found := d.states[i].next[symbol]
	if !found {
		return DeadState, false
	}
	return d.states[j].name, true
}

// Members returns the names of the states the named state was built from.
func (d *Dfa) Members(name string) []string {
	i, ok := d.byName[name]
	if !ok {
		return nil
	}
	return slices.Clone(d.states[i].members)
}

// IsComplete reports whether every state has a transition on every symbol.
func (d *Dfa) IsComplete() bool {
	for _, s := range d.states {
		if len(s.next) != len(d.alphabet) {
			return false
		}
	}
	return true
}

// Accepts reports whether the automaton accepts the word (a sequence of symbols).
func (d *Dfa) Accepts(word []string) bool {
	state := d.start
	for _, symbol := range word {
		next, ok := d.states[state].next[symbol]
		if !ok {
			return false
		}
		state = next
	}
	return d.states[state].final
}

// Raw returns the wire representation.
// It fails with ErrNameCollision when two states render to the same name.
func (d *Dfa) Raw() (RawDfa, error) {
	if d.collision != "" {
		return RawDfa{}, fmt.Errorf("%w: %q", ErrNameCollision, d.collision)
	}
	nodes := make(map[string]map[string]string, len(d.states))
	for _, s := range d.states {
		edges := make(map[string]string, len(s.next))
		for symbol, j := range s.next {
			edges[symbol] = d.states[j].name
		}
		nodes[s.name] = edges
	}
	return RawDfa{
		Start:       d.Start(),
		Alphabet:    d.Alphabet(),
		FinalStates: d.FinalStates(),
		Nodes:       nodes,
	}, nil
}

// MarshalJSON encodes the automaton in the wire format.
func (d *Dfa) MarshalJSON() ([]byte, error) {
	raw, err := d.Raw()
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// Complete returns an equivalent automaton in which the dead state is explicit:
// every missing transition leads to a non-accepting state named DeadState that
// loops on every symbol. A DFA that is already complete is returned as is.
func Complete(d *Dfa) *Dfa {
	if d.IsComplete() {
		return d
	}
	dead := len(d.states)
	states := make([]dfaState, 0, len(d.states)+1)
	for _, s := range d.states {
		next := make(map[string]int, len(d.alphabet))
		for _, symbol := range d.alphabet {
			if j, ok := s.next[symbol]; ok {
				next[symbol] = j
			} else {
				next[symbol] = dead
			}
		}
		states = append(states, dfaState{
			name:    s.name,
			members: slices.Clone(s.members),
			final:   s.final,
			next:    next,
		})
	}
	loops := make(map[string]int, len(d.alphabet))
	for _, symbol := range d.alphabet {
		loops[symbol] = dead
	}
	states = append(states, dfaState{name: DeadState, next: loops})
	return newDfa(d.start, slices.Clone(d.alphabet), states)
}
