/*
Package quotient converts nondeterministic finite automata into minimal deterministic
ones.

The pipeline has three stages. An untrusted automaton description is first validated;
the verified NFA is then determinized by subset construction; finally the resulting
DFA is minimized by merging every pair of states no word can tell apart. The
algorithms live in package automata; this package wraps them in an Engine that adds
input limits, caching of recorded conversions, structured logging and lifecycle hooks.

# Naming

DFA states built from several NFA states are named by joining the sorted member names
with " + ", and states merged by minimization join their names with " | ". For
example, minimizing a DFA whose states "1" and "3" are equivalent yields a state named
"1 | 3".

# Usage

	eng := quotient.New(quotient.WithMaxDfaStates(10_000))
	defer eng.Close()

	var raw automata.RawNfa
	if err := json.Unmarshal(input, &raw); err != nil {
		log.Fatal(err)
	}

	conv, err := eng.Convert(ctx, raw)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(conv.ID, conv.Stats.MinimalStates)

Conversions are keyed by a hash of the canonical input, so submitting the same
automaton twice (in any key order) returns the stored result.
*/
package quotient
