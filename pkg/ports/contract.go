package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConversionStoreContract runs a suite of tests to verify that a ConversionStore
// implementation adheres to the defined interface contract.
func RunConversionStoreContract(t *testing.T, store ConversionStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	newConversion := func(id string) *domain.Conversion {
		return &domain.Conversion{
			ID: id,
			Input: automata.RawNfa{
				Start:       "1",
				Alphabet:    []string{"a"},
				FinalStates: []string{"2"},
				Nodes: map[string]map[string][]string{
					"1": {"a": {"1", "2"}},
					"2": {},
				},
			},
			Minimal: automata.RawDfa{
				Start:       "1",
				Alphabet:    []string{"a"},
				FinalStates: []string{"1 + 2"},
				Nodes: map[string]map[string]string{
					"1":     {"a": "1 + 2"},
					"1 + 2": {"a": "1 + 2"},
				},
			},
			Stats:     domain.Stats{Symbols: 1, NfaStates: 2, DfaStates: 2, MinimalStates: 2},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		conv := newConversion(prefix + "-save")
		require.NoError(t, store.Save(ctx, conv), "Save should not return error")

		loaded, err := store.Load(ctx, conv.ID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, conv.ID, loaded.ID)
		assert.Equal(t, conv.Input, loaded.Input)
		assert.Equal(t, conv.Minimal, loaded.Minimal)
		assert.Equal(t, conv.Stats, loaded.Stats)
		assert.True(t, conv.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		conv := newConversion(prefix + "-copy")
		require.NoError(t, store.Save(ctx, conv))
		conv.Stats.MinimalStates = 99

		loaded, err := store.Load(ctx, conv.ID)
		require.NoError(t, err)
		loaded.Input.Nodes["1"]["a"] = nil

		again, err := store.Load(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, again.Stats.MinimalStates)
		assert.Equal(t, []string{"1", "2"}, again.Input.Nodes["1"]["a"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrConversionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		conv := newConversion(prefix + "-delete")
		require.NoError(t, store.Save(ctx, conv))

		require.NoError(t, store.Delete(ctx, conv.ID), "Delete should not return error")

		_, err := store.Load(ctx, conv.ID)
		assert.ErrorIs(t, err, domain.ErrConversionNotFound, "Load after Delete should return ErrConversionNotFound")

		assert.NoError(t, store.Delete(ctx, conv.ID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-list-1"
		id2 := prefix + "-list-2"
		require.NoError(t, store.Save(ctx, newConversion(id1)))
		require.NoError(t, store.Save(ctx, newConversion(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
