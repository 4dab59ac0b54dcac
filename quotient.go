package quotient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/quotient/internal/runtime"
	"github.com/aretw0/quotient/pkg/adapters/memory"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
	"github.com/aretw0/quotient/pkg/ports"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds parallel conversions in ConvertBatch.
const DefaultBatchConcurrency = 4

// lockTTL bounds how long a replica may hold a conversion lock.
const lockTTL = 30 * time.Second

// Engine is the high-level entry point for the Quotient library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime          *runtime.Engine
	store            ports.ConversionStore
	locker           ports.DistributedLocker
	hooks            domain.LifecycleHooks
	logger           *slog.Logger
	maxStates        int
	maxDfaStates     int
	batchConcurrency int
	now              func() time.Time
}

var _ ports.Converter = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore sets where conversions are recorded (default: in memory).
func WithStore(store ports.ConversionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables cross-replica locking around conversions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithMaxStates rejects input automata declaring more than n states with domain.ErrTooLarge.
func WithMaxStates(n int) Option {
	return func(e *Engine) {
		e.maxStates = n
	}
}

// WithMaxDfaStates aborts subset construction past n states with automata.ErrTooComplex.
func WithMaxDfaStates(n int) Option {
	return func(e *Engine) {
		e.maxDfaStates = n
	}
}

// WithBatchConcurrency sets how many conversions ConvertBatch runs at once.
func WithBatchConcurrency(n int) Option {
	return func(e *Engine) {
		e.batchConcurrency = n
	}
}

// New initializes a new Quotient Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		batchConcurrency: DefaultBatchConcurrency,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.batchConcurrency <= 0 {
		eng.batchConcurrency = DefaultBatchConcurrency
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithMaxStates(eng.maxStates),
		runtime.WithMaxDfaStates(eng.maxDfaStates),
	)
	return eng
}

// Validate verifies a raw NFA.
func (e *Engine) Validate(ctx context.Context, raw automata.RawNfa) (*automata.Nfa, error) {
	return e.runtime.Validate(ctx, raw)
}

// Determinize verifies raw and returns the equivalent DFA.
func (e *Engine) Determinize(ctx context.Context, raw automata.RawNfa) (*automata.Dfa, error) {
	nfa, err := e.runtime.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}
	return e.runtime.Determinize(ctx, nfa)
}

// Minimize verifies raw and returns the minimal equivalent DFA.
func (e *Engine) Minimize(ctx context.Context, raw automata.RawNfa) (*automata.Dfa, error) {
	res, err := e.runtime.Run(ctx, raw)
	if err != nil {
		return nil, err
	}
	return res.Minimal, nil
}

// MinimizeDfa verifies a deterministic description and returns its minimal form.
func (e *Engine) MinimizeDfa(ctx context.Context, raw automata.RawDfa) (*automata.Dfa, error) {
	dfa, err := e.runtime.ValidateDfa(ctx, raw)
	if err != nil {
		return nil, err
	}
	return e.runtime.Minimize(ctx, dfa)
}

// Convert runs the full pipeline and records the outcome in the store.
// An input already converted is served from the store.
func (e *Engine) Convert(ctx context.Context, raw automata.RawNfa) (*domain.Conversion, error) {
	nfa, err := e.runtime.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}
	id, err := domain.ConversionID(nfa)
	if err != nil {
		return nil, err
	}

	if conv, ok := e.cached(ctx, id); ok {
		return conv, nil
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, id, lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock conversion %s: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.WarnContext(ctx, "failed to release conversion lock", "id", id, "error", err)
			}
		}()

		// Another replica may have finished while we waited.
		if conv, ok := e.cached(ctx, id); ok {
			return conv, nil
		}
	}

	dfa, err := e.runtime.Determinize(ctx, nfa)
	if err != nil {
		return nil, err
	}
	minimal, err := e.runtime.Minimize(ctx, dfa)
	if err != nil {
		return nil, err
	}

	res := &runtime.Result{Nfa: nfa, Dfa: dfa, Minimal: minimal}
	conv := &domain.Conversion{
		ID:        id,
		Input:     nfa.Raw(),
		Stats:     res.Stats(),
		CreatedAt: e.now().UTC(),
	}
	if conv.Dfa, err = dfa.Raw(); err != nil {
		return nil, err
	}
	if conv.Minimal, err = minimal.Raw(); err != nil {
		return nil, err
	}

	if err := e.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversion %s: %w", id, err)
	}
	e.logger.InfoContext(ctx, "conversion recorded",
		"id", id,
		"nfa_states", conv.Stats.NfaStates,
		"dfa_states", conv.Stats.DfaStates,
		"minimal_states", conv.Stats.MinimalStates,
	)
	return conv, nil
}

// cached loads a stored conversion. Store failures are logged and treated as misses.
func (e *Engine) cached(ctx context.Context, id string) (*domain.Conversion, bool) {
	conv, err := e.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrConversionNotFound) {
			e.logger.WarnContext(ctx, "conversion store lookup failed", "id", id, "error", err)
		}
		return nil, false
	}
	if e.hooks.OnCacheHit != nil {
		e.hooks.OnCacheHit(ctx, &domain.CacheEvent{
			EventBase:    domain.EventBase{Timestamp: e.now(), Type: domain.EventCacheHit},
			ConversionID: id,
		})
	}
	e.logger.DebugContext(ctx, "conversion served from store", "id", id)
	return conv, true
}

// ConvertBatch converts every input concurrently. Results keep the input order.
// The first failure cancels the remaining conversions.
func (e *Engine) ConvertBatch(ctx context.Context, raws []automata.RawNfa) ([]*domain.Conversion, error) {
	out := make([]*domain.Conversion, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchConcurrency)
	for i, raw := range raws {
		g.Go(func() error {
			conv, err := e.Convert(ctx, raw)
			if err != nil {
				return fmt.Errorf("automaton %d: %w", i, err)
			}
			out[i] = conv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns a recorded conversion.
// Returns domain.ErrConversionNotFound when the ID is unknown.
func (e *Engine) Lookup(ctx context.Context, id string) (*domain.Conversion, error) {
	return e.store.Load(ctx, id)
}

// Close releases the store and locker when they hold resources.
func (e *Engine) Close() error {
	var err error
	if c, ok := e.store.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	if c, ok := e.locker.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	return err
}
