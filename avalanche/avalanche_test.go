package avalanche_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/avalanche"
	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/termstyle"
)

func TestCompare_identical(t *testing.T) {
	t.Parallel()

	r := avalanche.Compare(ikh.Sum("MARMARA"), ikh.Sum("MARMARA"))

	assert.Zero(t, r.Distance)
	assert.Zero(t, r.Percent)
	assert.Equal(t, 256, r.Same())
	assert.Empty(t, r.Changed())
}

func TestCompare_single_bit(t *testing.T) {
	t.Parallel()

	var a, b ikh.Digest
	b[0] = 0x80
	b[31] = 0x01

	r := avalanche.Compare(a, b)

	assert.Equal(t, 2, r.Distance)
	assert.Equal(t, []int{0, 255}, r.Changed())
	assert.InDelta(t, 0.78125, r.Percent, 1e-9)
}

func TestCompareText_marmara_mermara(t *testing.T) {
	t.Parallel()

	r := avalanche.CompareText(ikh.Canonical, "MARMARA", "MERMARA")

	assert.GreaterOrEqual(t, r.Distance, 40)
	assert.Equal(t, 131, r.Distance)
	assert.Len(t, r.Changed(), 131)
	assert.Equal(t, "MARMARA", r.TextA)
}

func TestBitString(t *testing.T) {
	t.Parallel()

	var d ikh.Digest
	d[0] = 0xa0

	got := avalanche.BitString(d)

	assert.Len(t, got, 256)
	assert.True(t, strings.HasPrefix(got, "10100000"))
	assert.Equal(t, 2, strings.Count(got, "1"))
}

func TestRender_plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	re, err := termstyle.NewRenderer(&buf, termstyle.ModeNever)
	require.NoError(t, err)

	r := avalanche.CompareText(ikh.Canonical, "MARMARA", "MERMARA")
	require.NoError(t, avalanche.Render(&buf, r, re))

	out := buf.String()
	assert.Contains(t, out, "Hamming distance: 131 bits")
	assert.Contains(t, out, "Changed: 51.17%")
	assert.Contains(t, out, "131 changed / 125 same")
	assert.Contains(t, out, ikh.Hex("MERMARA"))

	bitsB := avalanche.BitString(r.B)
	for i := 0; i < 256; i += 64 {
		assert.Contains(t, out, bitsB[i:i+64])
	}
}

func TestRender_highlights_changed_bits(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	re, err := termstyle.NewRenderer(&buf, termstyle.ModeAlways)
	require.NoError(t, err)

	var a, b ikh.Digest
	b[0] = 0x80

	require.NoError(t, avalanche.Render(&buf, avalanche.Compare(a, b), re))

	assert.Contains(t, buf.String(), "\x1b[")
}
