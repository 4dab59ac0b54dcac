package domain

import (
	"context"
	"time"
)

// Stage names a step of the conversion pipeline.
type Stage string

const (
	StageValidate    Stage = "validate"
	StageDeterminize Stage = "determinize"
	StageMinimize    Stage = "minimize"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStageStart EventType = "stage_start"
	EventStageEnd   EventType = "stage_end"
	EventCacheHit   EventType = "cache_hit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StageEvent reports the progress of a single pipeline stage.
// OutputStates, Duration and Err are only set on EventStageEnd.
type StageEvent struct {
	EventBase
	Stage        Stage         `json:"stage"`
	InputStates  int           `json:"input_states"`
	OutputStates int           `json:"output_states,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Err          error         `json:"-"`
}

// CacheEvent reports a conversion served from the store.
type CacheEvent struct {
	EventBase
	ConversionID string `json:"conversion_id"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStageStart func(context.Context, *StageEvent)
	OnStageEnd   func(context.Context, *StageEvent)
	OnCacheHit   func(context.Context, *CacheEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStageStart: chain(h.OnStageStart, other.OnStageStart),
		OnStageEnd:   chain(h.OnStageEnd, other.OnStageEnd),
		OnCacheHit:   chain(h.OnCacheHit, other.OnCacheHit),
	}
}

func chain[E any](first, second func(context.Context, E)) func(context.Context, E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e E) {
		first(ctx, e)
		second(ctx, e)
	}
}
