package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strataforge/strata/pkg/domain"
	"github.com/strataforge/strata/pkg/layer"
)

// RunLayerStoreContract runs a suite of tests to verify that a LayerStore
// implementation adheres to the interface contract. Every adapter's test
// file calls this against a fresh store.
func RunLayerStoreContract(t *testing.T, store LayerStore) {
	ctx := context.Background()
	id := "contract-layer-" + time.Now().Format("20060102150405") + ".yaml"

	newFixture := func() *layer.Layer {
		l := layer.New(id)
		spec := domain.NewPrimSpec(domain.SpecifierDef)
		spec.TypeName = "Xform"
		spec.Fields = map[string]any{"size": 2}
		require.NoError(t, l.SetSpecAt(domain.MustPath("/World"), spec))
		return l
	}

	t.Run("Save and Load", func(t *testing.T) {
		saved := newFixture()
		require.NoError(t, store.Save(ctx, id, saved), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.Identifier())
		assert.True(t, loaded.HasSpecAt(domain.MustPath("/World")))
		assert.Equal(t, "Xform", loaded.SpecAt(domain.MustPath("/World")).TypeName)
	})

	t.Run("Stored state is isolated", func(t *testing.T) {
		saved := newFixture()
		require.NoError(t, store.Save(ctx, id, saved))

		// Mutating the original after Save must not affect the store.
		saved.RemoveSpecAt(domain.MustPath("/World"))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.True(t, loaded.HasSpecAt(domain.MustPath("/World")),
			"store must hold a copy, not an alias")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrLayerNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, newFixture()))
		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrLayerNotFound, "Load after Delete should return ErrLayerNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := "a-" + id
		id2 := "b-" + id
		require.NoError(t, store.Save(ctx, id1, layer.New(id1)))
		require.NoError(t, store.Save(ctx, id2, layer.New(id2)))

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
