package automata_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeName(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"Empty Set", nil, automata.DeadState},
		{"Singleton", []string{"1"}, "1"},
		{"Sorted", []string{"3", "1", "2"}, "1 + 2 + 3"},
		{"Duplicates", []string{"b", "a", "b"}, "a + b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, automata.ComposeName(tt.ids))
		})
	}

	ids := []string{"2", "1"}
	automata.ComposeName(ids)
	assert.Equal(t, []string{"2", "1"}, ids, "input must not be reordered")
}

func TestMergeName(t *testing.T) {
	assert.Equal(t, "1 | 3", automata.MergeName("1", "3"))
	assert.Equal(t, "1 | 3 | 5", automata.MergeName(automata.MergeName("1", "3"), "5"))
}

func TestDfa_MarshalJSON(t *testing.T) {
	dfa := automata.Determinize(mustValidate(t, scenarioA))

	data, err := json.Marshal(dfa)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"start": "1",
		"alphabet": ["a", "b"],
		"final_states": ["1 + 2 + 3", "1 + 3"],
		"nodes": {
			"1": {"a": "1 + 2", "b": "1"},
			"1 + 2": {"a": "1 + 2 + 3", "b": "1 + 3"},
			"1 + 2 + 3": {"a": "1 + 2 + 3", "b": "1 + 2 + 3"},
			"1 + 3": {"a": "1 + 2", "b": "1 + 2"}
		}
	}`, string(data))

	// The encoded DFA is itself a valid DFA document.
	var raw automata.RawDfa
	require.NoError(t, json.Unmarshal(data, &raw))
	again, err := automata.ValidateDfa(raw)
	require.NoError(t, err)
	requireSameLanguage(t, dfa, again, raw.Alphabet, 6)
}

func TestNfa_MarshalJSON(t *testing.T) {
	nfa := mustValidate(t, scenarioA)
	data, err := json.Marshal(nfa)
	require.NoError(t, err)
	assert.JSONEq(t, scenarioA, string(data))
}

func TestComplete_AlreadyComplete(t *testing.T) {
	dfa := automata.Determinize(mustValidate(t, scenarioA))
	assert.Same(t, dfa, automata.Complete(dfa))
}
