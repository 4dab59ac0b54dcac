package automata_test

import (
	"errors"
	"testing"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidNfa(t *testing.T) {
	nfa, err := automata.Validate(decodeNfa(t, scenarioA))
	require.NoError(t, err)

	assert.Equal(t, "1", nfa.Start())
	assert.Equal(t, []string{"a", "b"}, nfa.Alphabet())
	assert.Equal(t, []string{"1", "2", "3"}, nfa.States())
	assert.Equal(t, []string{"3"}, nfa.FinalStates())
	assert.Equal(t, []string{"1", "2"}, nfa.Next("1", "a"))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(raw *automata.RawNfa)
		wantState  string
		wantSymbol string
	}{
		{
			name:      "Unknown Start",
			mutate:    func(raw *automata.RawNfa) { raw.Start = "4" },
			wantState: "4",
		},
		{
			name:      "Unknown Final",
			mutate:    func(raw *automata.RawNfa) { raw.FinalStates = append(raw.FinalStates, "4") },
			wantState: "4",
		},
		{
			name:       "Unknown Symbol",
			mutate:     func(raw *automata.RawNfa) { raw.Nodes["1"]["c"] = []string{"1"} },
			wantSymbol: "c",
		},
		{
			name:      "Unknown Destination",
			mutate:    func(raw *automata.RawNfa) { raw.Nodes["3"]["b"] = []string{"2", "4"} },
			wantState: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodeNfa(t, scenarioA)
			tt.mutate(&raw)

			nfa, err := automata.Validate(raw)
			require.Error(t, err)
			assert.Nil(t, nfa)
			assert.ErrorIs(t, err, automata.ErrInvalidAutomaton)

			if tt.wantState != "" {
				var stateErr *automata.UnknownStateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, tt.wantState, stateErr.State)
			}
			if tt.wantSymbol != "" {
				var symbolErr *automata.UnknownSymbolError
				require.ErrorAs(t, err, &symbolErr)
				assert.Equal(t, tt.wantSymbol, symbolErr.Symbol)
			}
		})
	}
}

func TestValidate_CheckOrder(t *testing.T) {
	// Broken in every way: the start state wins, then finals, then symbols.
	raw := automata.RawNfa{
		Start:       "x",
		Alphabet:    []string{"a"},
		FinalStates: []string{"y"},
		Nodes: map[string]map[string][]string{
			"1": {"z": {"w"}},
		},
	}
	_, err := automata.Validate(raw)
	assert.EqualError(t, err, `unknown state "x"`)

	raw.Start = "1"
	_, err = automata.Validate(raw)
	assert.EqualError(t, err, `unknown state "y"`)

	raw.FinalStates = nil
	_, err = automata.Validate(raw)
	assert.EqualError(t, err, `unknown symbol "z"`)

	raw.Alphabet = append(raw.Alphabet, "z")
	_, err = automata.Validate(raw)
	assert.EqualError(t, err, `unknown state "w"`)
}

func TestValidate_DeterministicOffender(t *testing.T) {
	raw := decodeNfa(t, scenarioA)
	raw.FinalStates = []string{"9", "5", "7"}

	for i := 0; i < 20; i++ {
		_, err := automata.Validate(raw)
		var stateErr *automata.UnknownStateError
		require.True(t, errors.As(err, &stateErr))
		assert.Equal(t, "5", stateErr.State)
	}
}

func TestValidate_Isolation(t *testing.T) {
	raw := decodeNfa(t, scenarioA)
	nfa, err := automata.Validate(raw)
	require.NoError(t, err)

	raw.Nodes["1"]["a"][0] = "3"
	delete(raw.Nodes, "2")

	assert.Equal(t, []string{"1", "2"}, nfa.Next("1", "a"))
	assert.Equal(t, []string{"1", "2", "3"}, nfa.States())
}

func TestValidate_InvalidFinalNeverDeterminized(t *testing.T) {
	raw := decodeNfa(t, scenarioA)
	raw.FinalStates = []string{"3", "4"}

	nfa, err := automata.Validate(raw)
	var stateErr *automata.UnknownStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "4", stateErr.State)
	// No *Nfa exists, so there is nothing to hand to Determinize.
	assert.Nil(t, nfa)
}

func TestValidateDfa(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		dfa, err := automata.ValidateDfa(decodeDfa(t, scenarioB))
		require.NoError(t, err)
		assert.Equal(t, "1", dfa.Start())
		assert.Equal(t, 4, dfa.NumStates())
		assert.Equal(t, []string{"2", "4"}, dfa.FinalStates())
		dest, ok := dfa.Next("3", "a")
		assert.True(t, ok)
		assert.Equal(t, "4", dest)
		_, ok = dfa.Next("2", "a")
		assert.False(t, ok)
	})

	t.Run("Unknown Destination", func(t *testing.T) {
		raw := decodeDfa(t, scenarioB)
		raw.Nodes["2"]["a"] = "9"
		_, err := automata.ValidateDfa(raw)
		var stateErr *automata.UnknownStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "9", stateErr.State)
	})

	t.Run("Unknown Symbol", func(t *testing.T) {
		raw := decodeDfa(t, scenarioB)
		raw.Nodes["4"]["c"] = "1"
		_, err := automata.ValidateDfa(raw)
		var symbolErr *automata.UnknownSymbolError
		require.ErrorAs(t, err, &symbolErr)
		assert.Equal(t, "c", symbolErr.Symbol)
	})
}
