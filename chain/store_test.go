package chain_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/ikh"
)

func TestOpenStore_roundtrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"chain.json",
		"chain.yaml",
		"chain.yml",
		"chain.cbor",
		"chain.db",
		"chain.sqlite",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			pa := filepath.Join(t.TempDir(), name)

			st, err := chain.OpenStore(pa)
			require.NoError(t, err)

			t.Cleanup(func() { assert.NoError(t, st.Close()) })

			_, err = st.Load(ctx)
			require.ErrorIs(t, err, chain.ErrNotFound)

			c := chain.New(ikh.Canonical)
			c.Add("first")
			c.Add("second")
			require.NoError(t, c.Edit(2, "tampered"))
			require.NoError(t, chain.Save(ctx, st, c))

			got, err := chain.Load(ctx, st, ikh.Canonical)
			require.NoError(t, err)

			assert.Equal(t, c.Blocks(), got.Blocks())
			assert.False(t, got.Valid())
		})
	}
}

func TestOpenStore_unknown_extension(t *testing.T) {
	t.Parallel()

	_, err := chain.OpenStore(filepath.Join(t.TempDir(), "chain.txt"))

	require.ErrorIs(t, err, chain.ErrUnknownStore)
}

func TestLoad_missing_store_is_fresh_chain(t *testing.T) {
	t.Parallel()

	st, err := chain.NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)

	c, err := chain.Load(context.Background(), st, ikh.Canonical)

	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestFileStore_save_overwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pa := filepath.Join(t.TempDir(), "chain.json")

	st, err := chain.NewFileStore(pa)
	require.NoError(t, err)

	c := chain.New(ikh.Canonical)
	c.Add("one")
	require.NoError(t, chain.Save(ctx, st, c))

	c.Reset()
	require.NoError(t, chain.Save(ctx, st, c))

	blocks, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	_, err = os.Stat(pa + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_corrupt_document(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "chain.json")
	require.NoError(t, os.WriteFile(pa, []byte("{not json"), 0o600))

	st, err := chain.NewFileStore(pa)
	require.NoError(t, err)

	_, err = st.Load(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, chain.ErrNotFound)
}

func TestFileStore_cbor_is_deterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	c := chain.New(ikh.Canonical)
	c.Add("payload")

	var docs [2][]byte

	for i := range docs {
		pa := filepath.Join(dir, []string{"a.cbor", "b.cbor"}[i])

		st, err := chain.NewFileStore(pa)
		require.NoError(t, err)
		require.NoError(t, chain.Save(ctx, st, c))

		docs[i], err = os.ReadFile(pa)
		require.NoError(t, err)
	}

	assert.Equal(t, docs[0], docs[1])
}

func TestFileStore_canceled_context(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := chain.NewFileStore(filepath.Join(t.TempDir(), "c.yaml"))
	require.NoError(t, err)

	require.ErrorIs(t, st.Save(ctx, nil), context.Canceled)
}
