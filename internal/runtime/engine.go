package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
)

// Engine runs the conversion pipeline: validation, subset construction and
// minimization. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	maxStates    int
	maxDfaStates int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMaxStates caps the number of states an input automaton may declare.
// Zero disables the cap.
func WithMaxStates(n int) EngineOption {
	return func(e *Engine) {
		e.maxStates = n
	}
}

// WithMaxDfaStates caps the number of states subset construction may create.
// Zero disables the cap.
func WithMaxDfaStates(n int) EngineOption {
	return func(e *Engine) {
		e.maxDfaStates = n
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result holds every automaton produced by one pipeline run.
type Result struct {
	Nfa     *automata.Nfa
	Dfa     *automata.Dfa
	Minimal *automata.Dfa
}

// Stats summarizes the state counts of the run.
func (r *Result) Stats() domain.Stats {
	return domain.Stats{
		Symbols:       len(r.Nfa.Alphabet()),
		NfaStates:     len(r.Nfa.States()),
		DfaStates:     r.Dfa.NumStates(),
		MinimalStates: r.Minimal.NumStates(),
	}
}

// Run executes the full pipeline on raw.
func (e *Engine) Run(ctx context.Context, raw automata.RawNfa) (*Result, error) {
	nfa, err := e.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}
	dfa, err := e.Determinize(ctx, nfa)
	if err != nil {
		return nil, err
	}
	minimal, err := e.Minimize(ctx, dfa)
	if err != nil {
		return nil, err
	}
	return &Result{Nfa: nfa, Dfa: dfa, Minimal: minimal}, nil
}

// Validate verifies raw after enforcing the input size cap.
func (e *Engine) Validate(ctx context.Context, raw automata.RawNfa) (*automata.Nfa, error) {
	if err := e.checkSize(len(raw.Nodes)); err != nil {
		return nil, err
	}
	return runStage(ctx, e, domain.StageValidate, len(raw.Nodes),
		func() (*automata.Nfa, error) { return automata.Validate(raw) },
		func(n *automata.Nfa) int { return len(n.States()) },
	)
}

// ValidateDfa verifies a deterministic description after enforcing the input size cap.
func (e *Engine) ValidateDfa(ctx context.Context, raw automata.RawDfa) (*automata.Dfa, error) {
	if err := e.checkSize(len(raw.Nodes)); err != nil {
		return nil, err
	}
	return runStage(ctx, e, domain.StageValidate, len(raw.Nodes),
		func() (*automata.Dfa, error) { return automata.ValidateDfa(raw) },
		(*automata.Dfa).NumStates,
	)
}

// Determinize runs subset construction under the configured DFA state cap.
func (e *Engine) Determinize(ctx context.Context, nfa *automata.Nfa) (*automata.Dfa, error) {
	return runStage(ctx, e, domain.StageDeterminize, len(nfa.States()),
		func() (*automata.Dfa, error) { return automata.DeterminizeLimit(nfa, e.maxDfaStates) },
		(*automata.Dfa).NumStates,
	)
}

// Minimize merges equivalent states of dfa.
func (e *Engine) Minimize(ctx context.Context, dfa *automata.Dfa) (*automata.Dfa, error) {
	return runStage(ctx, e, domain.StageMinimize, dfa.NumStates(),
		func() (*automata.Dfa, error) { return automata.Minimize(dfa), nil },
		(*automata.Dfa).NumStates,
	)
}

func (e *Engine) checkSize(states int) error {
	if e.maxStates > 0 && states > e.maxStates {
		return fmt.Errorf("%w: %d states (max %d)", domain.ErrTooLarge, states, e.maxStates)
	}
	return nil
}

// runStage wraps a pipeline step with cancellation, hooks and logging.
func runStage[T any](ctx context.Context, e *Engine, stage domain.Stage, inputStates int, fn func() (T, error), count func(T) int) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	start := time.Now()
	if e.hooks.OnStageStart != nil {
		e.hooks.OnStageStart(ctx, &domain.StageEvent{
			EventBase:   domain.EventBase{Timestamp: start, Type: domain.EventStageStart},
			Stage:       stage,
			InputStates: inputStates,
		})
	}

	out, err := fn()
	end := &domain.StageEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageEnd},
		Stage:       stage,
		InputStates: inputStates,
		Duration:    time.Since(start),
		Err:         err,
	}
	if err == nil {
		end.OutputStates = count(out)
	}
	if e.hooks.OnStageEnd != nil {
		e.hooks.OnStageEnd(ctx, end)
	}

	if err != nil {
		e.logger.DebugContext(ctx, "stage failed", "stage", stage, "input_states", inputStates, "error", err)
		return zero, err
	}
	e.logger.DebugContext(ctx, "stage completed",
		"stage", stage,
		"input_states", inputStates,
		"output_states", end.OutputStates,
		"duration", end.Duration,
	)
	return out, nil
}
