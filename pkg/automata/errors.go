package automata

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAutomaton is matched (via errors.Is) by every validation failure.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrTooComplex is returned by DeterminizeLimit when the subset construction
	// would create more states than allowed.
	ErrTooComplex = errors.New("automaton too complex to determinize")

	// ErrNameCollision is returned when two distinct states render to the same display name.
	ErrNameCollision = errors.New("distinct states share a display name")
)

// UnknownStateError reports a reference to a state that is not a key of the node table.
// It applies to the start state, final states and transition destinations.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.State)
}

// Is makes UnknownStateError match ErrInvalidAutomaton.
func (e *UnknownStateError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}

// UnknownSymbolError reports a transition on a symbol missing from the alphabet.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

// Is makes UnknownSymbolError match ErrInvalidAutomaton.
func (e *UnknownSymbolError) Is(target error) bool {
	return target == ErrInvalidAutomaton
}
