/*
Package observability provides monitoring for the Quotient engine.

Both the Prometheus metrics and the stage logger are exposed as domain.LifecycleHooks,
so they plug into the engine with quotient.WithLifecycleHooks and can be combined with
LifecycleHooks.Merge.
*/
package observability
