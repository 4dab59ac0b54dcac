package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/quotient/internal/runtime"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endsWithA accepts words over {a,b} ending in "a" and needs two DFA states.
func endsWithA() automata.RawNfa {
	return automata.RawNfa{
		Start:       "1",
		Alphabet:    []string{"a", "b"},
		FinalStates: []string{"2"},
		Nodes: map[string]map[string][]string{
			"1": {"a": {"1", "2"}, "b": {"1"}},
			"2": {},
		},
	}
}

func TestEngine_Run(t *testing.T) {
	engine := runtime.NewEngine()

	res, err := engine.Run(context.Background(), endsWithA())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "1 + 2"}, res.Dfa.States())
	assert.Equal(t, 2, res.Minimal.NumStates())
	assert.Equal(t, domain.Stats{Symbols: 2, NfaStates: 2, DfaStates: 2, MinimalStates: 2}, res.Stats())

	assert.True(t, res.Minimal.Accepts([]string{"b", "a"}))
	assert.False(t, res.Minimal.Accepts([]string{"a", "b"}))
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var started []domain.Stage
	var ended []*domain.StageEvent

	hooks := domain.LifecycleHooks{
		OnStageStart: func(_ context.Context, e *domain.StageEvent) {
			assert.Equal(t, domain.EventStageStart, e.Type)
			started = append(started, e.Stage)
		},
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			ended = append(ended, e)
		},
	}
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))

	_, err := engine.Run(context.Background(), endsWithA())
	require.NoError(t, err)

	want := []domain.Stage{domain.StageValidate, domain.StageDeterminize, domain.StageMinimize}
	assert.Equal(t, want, started)
	require.Len(t, ended, 3)
	for i, e := range ended {
		assert.Equal(t, want[i], e.Stage)
		assert.Equal(t, domain.EventStageEnd, e.Type)
		assert.NoError(t, e.Err)
		assert.Equal(t, 2, e.OutputStates)
	}
}

func TestEngine_ValidationErrorReachesHook(t *testing.T) {
	var last *domain.StageEvent
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) { last = e },
	}))

	raw := endsWithA()
	raw.Start = "missing"
	_, err := engine.Run(context.Background(), raw)

	var unknown *automata.UnknownStateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.State)

	require.NotNil(t, last)
	assert.Equal(t, domain.StageValidate, last.Stage)
	assert.ErrorIs(t, last.Err, automata.ErrInvalidAutomaton)
}

func TestEngine_MaxStates(t *testing.T) {
	engine := runtime.NewEngine(runtime.WithMaxStates(1))

	_, err := engine.Run(context.Background(), endsWithA())
	assert.ErrorIs(t, err, domain.ErrTooLarge)

	_, err = engine.ValidateDfa(context.Background(), automata.RawDfa{
		Start: "x",
		Nodes: map[string]map[string]string{"x": {}, "y": {}},
	})
	assert.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestEngine_MaxDfaStates(t *testing.T) {
	engine := runtime.NewEngine(runtime.WithMaxDfaStates(1))

	_, err := engine.Run(context.Background(), endsWithA())
	assert.ErrorIs(t, err, automata.ErrTooComplex)
}

func TestEngine_CanceledContext(t *testing.T) {
	called := false
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStageStart: func(context.Context, *domain.StageEvent) { called = true },
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, endsWithA())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "no stage should start after cancellation")
}

func TestEngine_MinimizeDfa(t *testing.T) {
	engine := runtime.NewEngine()
	ctx := context.Background()

	dfa, err := engine.ValidateDfa(ctx, automata.RawDfa{
		Start:       "p",
		Alphabet:    []string{"a"},
		FinalStates: []string{"q", "r"},
		Nodes: map[string]map[string]string{
			"p": {"a": "q"},
			"q": {"a": "r"},
			"r": {"a": "q"},
		},
	})
	require.NoError(t, err)

	minimal, err := engine.Minimize(ctx, dfa)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q | r"}, minimal.States())
}
