package automata_test

import (
	"testing"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize_ScenarioB(t *testing.T) {
	dfa, err := automata.ValidateDfa(decodeDfa(t, scenarioB))
	require.NoError(t, err)

	min := automata.Minimize(dfa)

	assert.Equal(t, 2, min.NumStates())
	assert.Equal(t, "1 | 3", min.Start())
	assert.ElementsMatch(t, []string{"1 | 3", "2 | 4"}, min.States())
	assert.Equal(t, []string{"2 | 4"}, min.FinalStates())
	assert.Equal(t, []string{"1", "3"}, min.Members("1 | 3"))

	raw, err := min.Raw()
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{
		"1 | 3": {"a": "2 | 4", "b": "1 | 3"},
		"2 | 4": {},
	}, raw.Nodes)

	requireSameLanguage(t, dfa, min, dfa.Alphabet(), 8)
}

func TestMinimize_ScenarioA(t *testing.T) {
	nfa := mustValidate(t, scenarioA)
	dfa := automata.Determinize(nfa)
	min := automata.Minimize(dfa)

	// Every pair of subset states is distinguishable, so nothing merges.
	assert.Equal(t, 4, min.NumStates())
	assert.ElementsMatch(t, dfa.States(), min.States())
	assert.Equal(t, dfa.Start(), min.Start())
	requireSameLanguage(t, nfa, min, nfa.Alphabet(), 8)
}

func TestMinimize_AlreadyMinimal(t *testing.T) {
	dfa, err := automata.ValidateDfa(automata.RawDfa{
		Start:       "even",
		Alphabet:    []string{"a"},
		FinalStates: []string{"even"},
		Nodes: map[string]map[string]string{
			"even": {"a": "odd"},
			"odd":  {"a": "even"},
		},
	})
	require.NoError(t, err)

	min := automata.Minimize(dfa)
	assert.Equal(t, dfa.States(), min.States())
	assert.Equal(t, "even", min.Start())
}

func TestMinimize_MergeChain(t *testing.T) {
	// Three equivalent accepting sinks collapse into one.
	dfa, err := automata.ValidateDfa(automata.RawDfa{
		Start:       "s",
		Alphabet:    []string{"a", "b", "c"},
		FinalStates: []string{"x", "y", "z"},
		Nodes: map[string]map[string]string{
			"s": {"a": "x", "b": "y", "c": "z"},
			"x": {},
			"y": {},
			"z": {},
		},
	})
	require.NoError(t, err)

	min := automata.Minimize(dfa)
	assert.Equal(t, 2, min.NumStates())
	assert.Contains(t, min.States(), "x | y | z")
	assert.ElementsMatch(t, []string{"x", "y", "z"}, min.Members("x | y | z"))
	requireSameLanguage(t, dfa, min, dfa.Alphabet(), 4)
}

func TestMinimize_StartMerged(t *testing.T) {
	// The start state "b" merges into "a", which becomes the start.
	dfa, err := automata.ValidateDfa(automata.RawDfa{
		Start:       "b",
		Alphabet:    []string{"x"},
		FinalStates: []string{"a", "b"},
		Nodes: map[string]map[string]string{
			"a": {"x": "b"},
			"b": {"x": "a"},
		},
	})
	require.NoError(t, err)

	min := automata.Minimize(dfa)
	assert.Equal(t, 1, min.NumStates())
	assert.Equal(t, "a | b", min.Start())
	assert.True(t, min.Accepts(nil))
	assert.True(t, min.Accepts([]string{"x", "x", "x"}))
}

func TestMinimize_DeadStates(t *testing.T) {
	// "d1" and "d2" never reach an accepting state: they behave like the implicit
	// sink, so they merge with each other.
	dfa, err := automata.ValidateDfa(automata.RawDfa{
		Start:       "s",
		Alphabet:    []string{"a", "b"},
		FinalStates: []string{"f"},
		Nodes: map[string]map[string]string{
			"s":  {"a": "f", "b": "d1"},
			"f":  {"a": "d2"},
			"d1": {"a": "d2"},
			"d2": {"b": "d1"},
		},
	})
	require.NoError(t, err)

	min := automata.Minimize(dfa)
	assert.Equal(t, 3, min.NumStates())
	assert.Contains(t, min.States(), "d1 | d2")
	// The merged trap stays as an explicit non-accepting state.
	assert.False(t, min.IsFinal("d1 | d2"))
	requireSameLanguage(t, dfa, min, dfa.Alphabet(), 6)
}

func TestMinimize_Idempotent(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		nfa, err := automata.Validate(randomNfa(seed, 6))
		require.NoError(t, err)

		dfa := automata.Determinize(nfa)
		once := automata.Minimize(dfa)
		twice := automata.Minimize(once)

		assert.LessOrEqual(t, once.NumStates(), dfa.NumStates())
		assert.Equal(t, once.NumStates(), twice.NumStates(), "seed %d", seed)
		assert.Equal(t, once.States(), twice.States(), "seed %d", seed)
		requireSameLanguage(t, nfa, once, nfa.Alphabet(), 7)
	}
}

func TestMinimize_CompleteInput(t *testing.T) {
	// Minimizing the explicitly completed DFA yields the same number of live states
	// plus at most the dead state.
	for seed := uint64(1); seed <= 20; seed++ {
		nfa, err := automata.Validate(randomNfa(seed, 5))
		require.NoError(t, err)

		dfa := automata.Determinize(nfa)
		partial := automata.Minimize(dfa)
		total := automata.Minimize(automata.Complete(dfa))

		assert.LessOrEqual(t, total.NumStates(), partial.NumStates()+1, "seed %d", seed)
		requireSameLanguage(t, partial, total, nfa.Alphabet(), 6)
	}
}
