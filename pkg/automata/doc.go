/*
Package automata implements the conversion core: structural validation of an untrusted
automaton description, subset construction (NFA to DFA) and minimization by
table-filling followed by state merging.

The package is pure and free of I/O. Every stage consumes the previous stage's
validated output and returns a new, independent value.

# Pipeline

	raw, _ := ...                    // RawNfa decoded from JSON or YAML
	nfa, err := automata.Validate(raw)
	if err != nil {
		// *UnknownStateError or *UnknownSymbolError
	}
	dfa := automata.Determinize(nfa)
	min := automata.Minimize(dfa)

# Type-state

Only Validate can produce an *Nfa, and only Determinize, ValidateDfa, Minimize and
Complete can produce a *Dfa. An unverified RawNfa cannot be handed to Determinize;
the compiler rejects it.

# Naming

A determinized state is named after the NFA states it contains, sorted and joined
with StateSeparator ("1 + 2"). A minimized state records its merge history joined
with MergeSeparator ("1 | 3"). Names are for display only: the algorithms identify
states structurally, so ids that happen to contain a separator never merge unrelated
states. Rendering two states under the same name is reported as ErrNameCollision.
*/
package automata
