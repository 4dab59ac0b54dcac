/*
Package domain contains the records and events shared by the conversion engine and
its adapters.

The automaton algorithms live in package automata; this package describes what the
service keeps and reports about a run of that pipeline.

# Key Entities

  - Conversion: the stored outcome of one full pipeline run (input, DFA, minimal DFA, stats).
  - StageEvent: emitted before and after each pipeline stage.
  - LifecycleHooks: callbacks for observing stages (logging, metrics, auditing).
*/
package domain
