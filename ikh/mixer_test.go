package ikh_test

import (
	"encoding/hex"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/ikh"
)

func stateHex(st ikh.State) string {
	return hex.EncodeToString(st[:])
}

func TestState_inject_rotates_per_byte(t *testing.T) {
	t.Parallel()

	var st ikh.State
	st.Inject(6)

	assert.Equal(
		t,
		"060c183060c08103060c183060c08103"+
			"060c183060c08103060c183060c08103",
		stateHex(st),
	)
}

func TestState_inject_twice_cancels(t *testing.T) {
	t.Parallel()

	var st ikh.State
	st.Inject(0xa7)
	st.Inject(0xa7)

	assert.Equal(t, ikh.State{}, st)
}

func TestState_diffuse_single_bit(t *testing.T) {
	t.Parallel()

	var st ikh.State
	st[0] = 1
	st.Diffuse()

	assert.Equal(
		t,
		"4854321694c527014a44b212b4c42fc1"+
			"4c74331ed4c737814e64b31af4c63db1",
		stateHex(st),
	)
}

func TestState_diffuse_zero_is_fixed_point(t *testing.T) {
	t.Parallel()

	var st ikh.State
	st.Diffuse()

	assert.Equal(t, ikh.State{}, st)
}

// diffuseReversed runs the diffusion passes right to left.
func diffuseReversed(st *ikh.State) {
	for range 2 {
		for j := ikh.StateSize - 1; j >= 0; j-- {
			prev := st[(j+ikh.StateSize-1)%ikh.StateSize]
			v := st[j] + prev
			v ^= st[(j+1)%ikh.StateSize]
			st[j] = bits.RotateLeft8(v, 3)
		}
	}
}

func digestWith(text string, diffuse func(*ikh.State)) ikh.Digest {
	var st ikh.State
	for _, step := range ikh.Canonical.Steps(text) {
		st.Inject(step.InjectValue())
		diffuse(&st)
	}

	return ikh.Digest(st)
}

func TestState_diffusion_order_is_load_bearing(t *testing.T) {
	t.Parallel()

	forward := digestWith("MARMARA", (*ikh.State).Diffuse)
	reversed := digestWith("MARMARA", diffuseReversed)

	require.Equal(t, ikh.Sum("MARMARA"), forward)
	assert.NotEqual(t, forward, reversed)
	assert.Equal(
		t,
		"9e68d927dc1c92ee01a1df85a1cdb88d"+
			"ca1036a46be0b1477c7f09753e9a1b13",
		reversed.String(),
	)
}
