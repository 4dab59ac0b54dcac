package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/aretw0/quotient/pkg/automata"
)

// Stats counts the states produced by each stage.
type Stats struct {
	Symbols       int `json:"symbols"`
	NfaStates     int `json:"nfa_states"`
	DfaStates     int `json:"dfa_states"`
	MinimalStates int `json:"minimal_states"`
}

// Conversion is the outcome of one full pipeline run.
type Conversion struct {
	ID        string          `json:"id"`
	Input     automata.RawNfa `json:"input"`
	Dfa       automata.RawDfa `json:"dfa"`
	Minimal   automata.RawDfa `json:"minimal"`
	Stats     Stats           `json:"stats"`
	CreatedAt time.Time       `json:"created_at"`
}

// ConversionID derives a stable identifier from the canonical (sorted) encoding of a
// verified automaton, so equal inputs share an ID regardless of key order.
func ConversionID(nfa *automata.Nfa) (string, error) {
	data, err := json.Marshal(nfa.Raw())
	if err != nil {
		return "", fmt.Errorf("failed to encode automaton: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Clone returns a deep copy of the conversion.
func (c *Conversion) Clone() *Conversion {
	out := *c
	out.Input = cloneNfa(c.Input)
	out.Dfa = cloneDfa(c.Dfa)
	out.Minimal = cloneDfa(c.Minimal)
	return &out
}

func cloneNfa(raw automata.RawNfa) automata.RawNfa {
	out := raw
	out.Alphabet = slices.Clone(raw.Alphabet)
	out.FinalStates = slices.Clone(raw.FinalStates)
	if raw.Nodes != nil {
		out.Nodes = make(map[string]map[string][]string, len(raw.Nodes))
		for state, edges := range raw.Nodes {
			copied := make(map[string][]string, len(edges))
			for symbol, dests := range edges {
				copied[symbol] = slices.Clone(dests)
			}
			out.Nodes[state] = copied
		}
	}
	return out
}

func cloneDfa(raw automata.RawDfa) automata.RawDfa {
	out := raw
	out.Alphabet = slices.Clone(raw.Alphabet)
	out.FinalStates = slices.Clone(raw.FinalStates)
	if raw.Nodes != nil {
		out.Nodes = make(map[string]map[string]string, len(raw.Nodes))
		for state, edges := range raw.Nodes {
			out.Nodes[state] = maps.Clone(edges)
		}
	}
	return out
}
