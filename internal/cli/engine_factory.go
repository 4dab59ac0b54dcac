package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/quotient"
	"github.com/aretw0/quotient/internal/config"
	"github.com/aretw0/quotient/internal/logging"
	"github.com/aretw0/quotient/pkg/adapters/memory"
	"github.com/aretw0/quotient/pkg/adapters/redis"
	"github.com/aretw0/quotient/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineOptions configures NewEngine.
type EngineOptions struct {
	Config *config.Config
	Logger *slog.Logger
	// Registry receives the engine metrics. Nil disables metrics.
	Registry prometheus.Registerer
}

// NewEngine initializes a quotient engine with standard CLI conventions:
// stage logging, optional metrics, and the Redis store and locker when an
// address is configured.
func NewEngine(opts EngineOptions) (*quotient.Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	// 1. Logger & Hooks
	engineOpts := []quotient.Option{
		quotient.WithLogger(logger),
		quotient.WithLifecycleHooks(observability.LogHooks(logger)),
	}

	if opts.Registry != nil {
		metrics, err := observability.NewMetrics(opts.Registry)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		engineOpts = append(engineOpts, quotient.WithLifecycleHooks(metrics.Hooks()))
	}

	// 2. Limits
	engineOpts = append(engineOpts,
		quotient.WithMaxStates(cfg.Limits.MaxStates),
		quotient.WithMaxDfaStates(cfg.Limits.MaxDfaStates),
		quotient.WithBatchConcurrency(cfg.Limits.BatchConcurrency),
	)

	// 3. Storage
	if cfg.Redis.Enabled() {
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		engineOpts = append(engineOpts,
			quotient.WithStore(store),
			quotient.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix)),
		)
		logger.Debug("Using redis store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	} else {
		engineOpts = append(engineOpts,
			quotient.WithStore(memory.NewStore()),
			quotient.WithLocker(memory.NewLocker()),
		)
	}

	return quotient.New(engineOpts...), nil
}
