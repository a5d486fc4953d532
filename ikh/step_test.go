package ikh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkanpak21/funhash/ikh"
)

func TestDigitTable_reference_heads(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, ikh.Pi.Get(0))
	assert.Equal(t, 2, ikh.E.Get(0))
	assert.Equal(t, 1, ikh.Phi.Get(0))
	assert.Equal(t, 16, ikh.Pi.Len())
}

func TestDigitTable_wraps_around(t *testing.T) {
	t.Parallel()

	for _, dt := range []ikh.DigitTable{ikh.Pi, ikh.E, ikh.Phi} {
		n := dt.Len()
		for i := range n {
			assert.Equal(t, dt.Get(i), dt.Get(i+n))
			assert.Equal(t, dt.Get(i), dt.Get(i+3*n))
		}

		assert.Equal(t, dt.Get(n-1), dt.Get(-1))
	}
}

func TestDigitTable_digits_are_copies(t *testing.T) {
	t.Parallel()

	digits := ikh.Pi.Digits()
	digits[0] = 9

	assert.Equal(t, 3, ikh.Pi.Get(0))
	assert.Equal(t, 4, ikh.Pi.Get(2))
}

func TestComputeStep_first_letter(t *testing.T) {
	t.Parallel()

	got := ikh.ComputeStep('A', 0)

	assert.Equal(t, ikh.Step{
		Character: "A",
		Position:  1,
		Code:      1,
		PiDigit:   3,
		EDigit:    2,
		PhiDigit:  1,
		RawValue:  6,
		ModValue:  6,
	}, got)
}

func TestComputeStep_lowercase_is_upper_cased(t *testing.T) {
	t.Parallel()

	lo := ikh.ComputeStep('m', 3)
	up := ikh.ComputeStep('M', 3)

	assert.Equal(t, "m", lo.Character)
	assert.Equal(t, up.Code, lo.Code)
	assert.Equal(t, up.RawValue, lo.RawValue)
}

func TestComputeStep_position_breaks_table_cycle(t *testing.T) {
	t.Parallel()

	first := ikh.ComputeStep('A', 0)
	wrapped := ikh.ComputeStep('A', 16)

	assert.Equal(t, first.PiDigit, wrapped.PiDigit)
	assert.Equal(t, first.EDigit, wrapped.EDigit)
	assert.Equal(t, first.PhiDigit, wrapped.PhiDigit)
	assert.Equal(t, 17, wrapped.Position)
	assert.Equal(t, 38, wrapped.RawValue)
	assert.NotEqual(t, first.RawValue, wrapped.RawValue)
}

func TestComputeStep_non_letters_wrap_into_range(t *testing.T) {
	t.Parallel()

	space := ikh.ComputeStep(' ', 0)
	assert.Equal(t, -32, space.Code)
	assert.Equal(t, -93, space.RawValue)
	assert.Equal(t, 164, space.ModValue)

	digit := ikh.ComputeStep('1', 0)
	assert.Equal(t, -15, digit.Code)
	assert.Equal(t, 215, digit.ModValue)
}

func TestAllSteps_marmara(t *testing.T) {
	t.Parallel()

	steps := ikh.AllSteps("MARMARA")
	require.Len(t, steps, 7)

	wantRaw := []int{42, 21, 76, 53, 15, 213, 12}
	for i, st := range steps {
		assert.Equal(t, i+1, st.Position)
		assert.Equal(t, wantRaw[i], st.RawValue)
		assert.Equal(t, wantRaw[i], st.ModValue)
	}
}

func TestAllSteps_does_not_normalize(t *testing.T) {
	t.Parallel()

	steps := ikh.AllSteps("a b")

	require.Len(t, steps, 3)
	assert.Equal(t, " ", steps[1].Character)
}

func TestAllSteps_empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ikh.AllSteps(""))
}

func FuzzComputeStep(f *testing.F) {
	f.Add('A', 0)
	f.Add('z', 15)
	f.Add(' ', 16)
	f.Add('ß', 1000)
	f.Add(rune(-1), 3)

	f.Fuzz(func(t *testing.T, r rune, index int) {
		if index < 0 {
			return
		}

		st := ikh.ComputeStep(r, index)

		assert.GreaterOrEqual(t, st.ModValue, 0)
		assert.Less(t, st.ModValue, 257)
		assert.Equal(t, index+1, st.Position)
	})
}
