package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/quotient/pkg/domain"
)

// LogHooks returns hooks that write one record per finished stage.
// Failed stages are logged at warn level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnd: func(ctx context.Context, e *domain.StageEvent) {
			attrs := []any{
				"stage", e.Stage,
				"input_states", e.InputStates,
				"duration", e.Duration,
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "stage failed", append(attrs, "error", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "stage finished", append(attrs, "output_states", e.OutputStates)...)
		},
		OnCacheHit: func(ctx context.Context, e *domain.CacheEvent) {
			logger.InfoContext(ctx, "conversion cache hit", "id", e.ConversionID)
		},
	}
}
