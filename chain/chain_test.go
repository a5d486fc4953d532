package chain_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/termstyle"
)

func TestNew_genesis_block(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)

	require.Equal(t, 1, c.Len())

	g := c.Blocks()[0]
	assert.Equal(t, 0, g.Index)
	assert.Equal(t, "Genesis Block", g.Data)
	assert.Equal(t, strings.Repeat("0", 64), g.PrevHash)
	assert.Equal(t, ikh.Hex("Genesis Block"+chain.ZeroHash), g.Hash)
	assert.True(t, c.Valid())
}

func TestAdd_links_to_previous_hash(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)
	b1 := c.Add("Alice pays Bob")
	b2 := c.Add("Bob pays Carol")

	assert.Equal(t, 1, b1.Index)
	assert.Equal(t, c.Blocks()[0].Hash, b1.PrevHash)
	assert.Equal(t, b1.Hash, b2.PrevHash)
	assert.Equal(t, ikh.Hex("Bob pays Carol"+b1.Hash), b2.Hash)
	assert.True(t, c.Valid())
}

func TestEdit_marks_block_and_successors_invalid(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)
	c.Add("one")
	c.Add("two")
	c.Add("three")

	require.NoError(t, c.Edit(1, "forged"))

	sts := c.Validate()
	require.Len(t, sts, 4)

	assert.True(t, sts[0].Valid)

	assert.True(t, sts[1].Tampered)
	assert.False(t, sts[1].Broken)
	assert.False(t, sts[1].Valid)

	// Block 2 is intact on its own but follows a bad block.
	assert.False(t, sts[2].Tampered)
	assert.False(t, sts[2].Broken)
	assert.False(t, sts[2].Valid)
	assert.False(t, sts[3].Valid)

	assert.False(t, c.Valid())
}

func TestEdit_back_to_original_restores_validity(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)
	c.Add("one")

	require.NoError(t, c.Edit(1, "two"))
	assert.False(t, c.Valid())

	require.NoError(t, c.Edit(1, "one"))
	assert.True(t, c.Valid())
}

func TestEdit_out_of_range(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)

	require.ErrorIs(t, c.Edit(1, "x"), chain.ErrIndexOutOfRange)
	require.ErrorIs(t, c.Edit(-1, "x"), chain.ErrIndexOutOfRange)
}

func TestReset(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)
	c.Add("one")
	require.NoError(t, c.Edit(0, "x"))

	c.Reset()

	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Valid())
}

func TestRestore_detects_broken_link(t *testing.T) {
	t.Parallel()

	d := chain.DigesterFunc(func(s string) string {
		return ikh.Hex(s)
	})

	src := chain.New(d)
	src.Add("one")
	src.Add("two")

	blocks := src.Blocks()
	blocks[2].PrevHash = chain.ZeroHash
	blocks[2].Hash = d.Hex(blocks[2].Data + blocks[2].PrevHash)

	c, err := chain.Restore(d, blocks)
	require.NoError(t, err)

	sts := c.Validate()
	assert.True(t, sts[1].Valid)
	assert.True(t, sts[2].Broken)
	assert.False(t, sts[2].Tampered)
	assert.False(t, sts[2].Valid)
}

func TestRestore_rejects_misnumbered_blocks(t *testing.T) {
	t.Parallel()

	blocks := chain.New(ikh.Canonical).Blocks()
	blocks[0].Index = 3

	_, err := chain.Restore(ikh.Canonical, blocks)

	require.Error(t, err)
}

func TestRestore_empty_is_fresh_chain(t *testing.T) {
	t.Parallel()

	c, err := chain.Restore(ikh.Canonical, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestBlocks_returns_copy(t *testing.T) {
	t.Parallel()

	c := chain.New(ikh.Canonical)
	c.Blocks()[0].Data = "mutated"

	assert.Equal(t, chain.GenesisData, c.Blocks()[0].Data)
}

func TestRender_cards(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	re, err := termstyle.NewRenderer(&buf, termstyle.ModeNever)
	require.NoError(t, err)

	c := chain.New(ikh.Canonical)
	c.Add("hello")
	require.NoError(t, c.Edit(1, "world"))

	require.NoError(t, chain.Render(&buf, c, re))

	out := buf.String()
	assert.Contains(t, out, "Block #0  VALID")
	assert.Contains(t, out, "Block #1  INVALID (hash mismatch)")
	assert.Contains(t, out, "Data: world")
	assert.Contains(t, out, "╭")
}
