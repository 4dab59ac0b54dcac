package automata

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	// StateSeparator joins the members of a determinized (subset) state.
	StateSeparator = " + "
	// MergeSeparator joins the states collapsed into one minimized state.
	MergeSeparator = " | "
	// DeadState is the display name of the empty configuration.
	DeadState = ""
)

// ComposeName returns the canonical display name of a set of state ids:
// the ids sorted and joined with StateSeparator. The input is not modified.
func ComposeName(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return strings.Join(sorted, StateSeparator)
}

// MergeName extends the name of a surviving state with the state merged into it.
func MergeName(left, right string) string {
	return left + MergeSeparator + right
}

// configKey is the structural identity of a configuration (a set of state indices).
// Unlike display names it cannot collide for distinct sets.
func configKey(set *bitset.BitSet) string {
	var sb strings.Builder
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// sortedSet returns the sorted, deduplicated copy of ids.
func sortedSet(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
