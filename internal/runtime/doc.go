// Package runtime runs the automaton conversion pipeline and reports each stage
// through lifecycle hooks and the structured logger.
package runtime
