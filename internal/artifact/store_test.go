package artifact

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/typespec/internal/typespec"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePutGet(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	original := Build(sampleSpecs())
	require.NoError(t, store.Put(ctx, original))

	loaded, ok, err := store.Get(ctx, original.Module)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, original.Module, loaded.Module)
	assert.Equal(t, original.UnitID, loaded.UnitID)
	require.True(t, loaded.HasTypespecs())

	types, ok := loaded.FetchTypes()
	require.True(t, ok)
	assert.Len(t, types, 2)
}

func TestStoreGetMissing(t *testing.T) {
	store := tempStore(t)

	loaded, ok, err := store.Get(context.Background(), "No.Such.Module")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, loaded)
}

func TestStorePutReplaces(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	first := Build(sampleSpecs())
	require.NoError(t, store.Put(ctx, first))

	second := New(first.Module)
	require.NoError(t, store.Put(ctx, second))

	loaded, ok, err := store.Get(ctx, first.Module)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.UnitID, loaded.UnitID)
	assert.False(t, loaded.HasTypespecs())

	modules, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, modules, 1)
}

func TestStoreList(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	for _, module := range []string{"B.Second", "A.First", "C.Third"} {
		a := Build(&typespec.ModuleSpecs{Module: module})
		require.NoError(t, store.Put(ctx, a))
	}

	modules, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.First", "B.Second", "C.Third"}, modules)
}
