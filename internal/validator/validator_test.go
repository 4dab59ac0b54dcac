package validator

import (
	"testing"

	"github.com/aretw0/quotient/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	// 1. Scenario A: every state is useful
	b := dsl.New()
	b.Add("p").Loop("a", "b").On("a", "q")
	b.Add("q").Final()

	nfa, err := b.Build()
	require.NoError(t, err)

	report := Inspect(nfa)
	assert.True(t, report.Clean())
	assert.Empty(t, report.String())

	// 2. Scenario B: an island and a trap
	// p -a-> q (final), p -b-> trap, island -a-> q
	b = dsl.New()
	b.Add("p").On("a", "q").On("b", "trap")
	b.Add("q").Final()
	b.Add("trap").Loop("a")
	b.Add("island").On("a", "q")

	nfa, err = b.Build()
	require.NoError(t, err)

	report = Inspect(nfa)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{"island"}, report.Unreachable)
	assert.Equal(t, []string{"trap"}, report.DeadEnds)
	assert.Equal(t,
		"unreachable state \"island\"\nstate \"trap\" cannot reach an accepting state",
		report.String())
}

func TestInspect_NoFinalStates(t *testing.T) {
	b := dsl.New()
	b.Add("s").On("x", "t")
	b.Add("t")

	nfa, err := b.Build()
	require.NoError(t, err)

	report := Inspect(nfa)
	assert.Empty(t, report.Unreachable)
	assert.Equal(t, []string{"s", "t"}, report.DeadEnds)
}
