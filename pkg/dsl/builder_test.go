package dsl

import (
	"testing"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_EndsWithA(t *testing.T) {
	// 1. Build the automaton using DSL
	b := New()

	b.Add("p").
		Loop("a", "b").
		On("a", "q")

	b.Add("q").
		Final()

	// 2. Compile
	nfa, err := b.Build()
	require.NoError(t, err)

	// 3. Verify
	assert.Equal(t, "p", nfa.Start())
	assert.Equal(t, []string{"a", "b"}, nfa.Alphabet())
	assert.Equal(t, []string{"q"}, nfa.FinalStates())
	assert.Equal(t, []string{"p", "q"}, nfa.Next("p", "a"))
	assert.Equal(t, []string{"p"}, nfa.Next("p", "b"))

	assert.True(t, nfa.Accepts([]string{"b", "a"}))
	assert.False(t, nfa.Accepts([]string{"a", "b"}))
}

func TestBuilder_ExplicitStartAndAlphabet(t *testing.T) {
	raw := New().
		Start("s1").
		Alphabet("z").
		Add("s0").Final().
		Add("s1").On("x", "s0").
		builder.Raw()

	assert.Equal(t, "s1", raw.Start)
	assert.Equal(t, []string{"x", "z"}, raw.Alphabet)
	assert.Equal(t, []string{"s0"}, raw.FinalStates)
	assert.Equal(t, map[string][]string{"x": {"s0"}}, raw.Nodes["s1"])
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New()
	first := b.Add("s")
	assert.Same(t, first, b.Add("s"))
}

func TestBuilder_UnknownTarget(t *testing.T) {
	b := New()
	b.Add("s").On("a", "missing")

	_, err := b.Build()
	var stateErr *automata.UnknownStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "missing", stateErr.State)
	assert.ErrorContains(t, err, "failed to build automaton")
}

func TestBuilder_Empty(t *testing.T) {
	raw := New().Raw()
	assert.Equal(t, []string{}, raw.Alphabet)
	assert.Empty(t, raw.Nodes)
}
