package ports

import (
	"context"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
)

// Converter is the interface adapters (HTTP, MCP) use to drive the pipeline.
type Converter interface {
	// Validate verifies a raw NFA.
	Validate(ctx context.Context, raw automata.RawNfa) (*automata.Nfa, error)

	// Determinize verifies a raw NFA and returns the equivalent DFA.
	Determinize(ctx context.Context, raw automata.RawNfa) (*automata.Dfa, error)

	// Minimize verifies a raw NFA and returns the minimal equivalent DFA.
	Minimize(ctx context.Context, raw automata.RawNfa) (*automata.Dfa, error)

	// MinimizeDfa verifies a raw DFA and returns its minimal form.
	MinimizeDfa(ctx context.Context, raw automata.RawDfa) (*automata.Dfa, error)

	// Convert runs the full pipeline and records the outcome.
	Convert(ctx context.Context, raw automata.RawNfa) (*domain.Conversion, error)

	// ConvertBatch converts every input, preserving order.
	ConvertBatch(ctx context.Context, raws []automata.RawNfa) ([]*domain.Conversion, error)

	// Lookup returns a previously recorded conversion.
	Lookup(ctx context.Context, id string) (*domain.Conversion, error)
}
