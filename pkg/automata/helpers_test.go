package automata_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/stretchr/testify/require"
)

// scenarioA is the three-state NFA used throughout the tests.
const scenarioA = `{
	"start": "1",
	"alphabet": ["a", "b"],
	"nodes": {
		"1": {"a": ["1", "2"], "b": ["1"]},
		"2": {"a": ["3"], "b": ["3"]},
		"3": {"a": ["1"], "b": ["2"]}
	},
	"final_states": ["3"]
}`

// scenarioB is a partial DFA where 1~3 and 2~4.
const scenarioB = `{
	"start": "1",
	"alphabet": ["a", "b"],
	"nodes": {
		"1": {"a": "2", "b": "3"},
		"2": {},
		"3": {"a": "4", "b": "1"},
		"4": {}
	},
	"final_states": ["2", "4"]
}`

func decodeNfa(t *testing.T, doc string) automata.RawNfa {
	t.Helper()
	var raw automata.RawNfa
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return raw
}

func decodeDfa(t *testing.T, doc string) automata.RawDfa {
	t.Helper()
	var raw automata.RawDfa
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return raw
}

func mustValidate(t *testing.T, doc string) *automata.Nfa {
	t.Helper()
	nfa, err := automata.Validate(decodeNfa(t, doc))
	require.NoError(t, err)
	return nfa
}

// words enumerates every word over alphabet of length up to maxLen.
func words(alphabet []string, maxLen int) [][]string {
	out := [][]string{{}}
	frontier := [][]string{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]string
		for _, w := range frontier {
			for _, s := range alphabet {
				word := append(append([]string{}, w...), s)
				next = append(next, word)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

type acceptor interface {
	Accepts(word []string) bool
}

// requireSameLanguage compares acceptance of every word up to maxLen.
func requireSameLanguage(t *testing.T, want, got acceptor, alphabet []string, maxLen int) {
	t.Helper()
	for _, w := range words(alphabet, maxLen) {
		require.Equal(t, want.Accepts(w), got.Accepts(w), "word %v", w)
	}
}

// randomNfa builds a reproducible NFA with n states over {a, b}.
func randomNfa(seed uint64, n int) automata.RawNfa {
	r := rand.New(rand.NewPCG(seed, seed*31+7))
	raw := automata.RawNfa{
		Start:    "q0",
		Alphabet: []string{"a", "b"},
		Nodes:    make(map[string]map[string][]string, n),
	}
	for i := 0; i < n; i++ {
		state := fmt.Sprintf("q%d", i)
		edges := make(map[string][]string)
		for _, symbol := range raw.Alphabet {
			for j := 0; j < n; j++ {
				if r.IntN(4) == 0 {
					edges[symbol] = append(edges[symbol], fmt.Sprintf("q%d", j))
				}
			}
		}
		raw.Nodes[state] = edges
		if r.IntN(3) == 0 {
			raw.FinalStates = append(raw.FinalStates, state)
		}
	}
	return raw
}
