package localstore_test

import (
	"path/filepath"
	"testing"

	"skyrestaurant/pkg/localstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetRoundTrip(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	type record struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}

	require.NoError(t, store.Set("orders", []record{{Name: "Burger", Total: 50}}))

	var got []record
	found, err := store.Get("orders", &got)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, record{Name: "Burger", Total: 50}, got[0])
}

func TestStore_GetMissingKey(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	var v map[string]string
	found, err := store.Get("nothing", &v)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := localstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("wishlist", []string{"prod-1", "prod-2"}))

	reopened, err := localstore.Open(path)
	require.NoError(t, err)

	var wishlist []string
	found, err := reopened.Get("wishlist", &wishlist)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"prod-1", "prod-2"}, wishlist)
}

func TestStore_Delete(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("key", "value"))
	require.NoError(t, store.Delete("key"))

	var v string
	found, err := store.Get("key", &v)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete("never-set"))
}
