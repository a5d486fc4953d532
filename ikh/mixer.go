package ikh

import "math/bits"

const (
	// StateSize is the digest width in bytes.
	StateSize = 32

	diffusionPasses = 2
	diffusionRotate = 3
)

// State is the mutable accumulator of one digest computation.
// The zero value is the initial state.
type State [StateSize]byte

// Inject XORs value into every state byte, rotated left by
// the byte index modulo 8.
func (s *State) Inject(value byte) {
	for j := range s {
		s[j] ^= bits.RotateLeft8(value, j%8)
	}
}

// Diffuse runs two left-to-right in-place passes. Each byte
// absorbs its left neighbor by addition and its right
// neighbor by XOR, then rotates left by 3. Reads see writes
// already made in the same pass, including the wraparound at
// both ends.
func (s *State) Diffuse() {
	for range diffusionPasses {
		for j := 0; j < StateSize; j++ {
			prev := s[(j+StateSize-1)%StateSize]

			v := s[j] + prev
			v ^= s[(j+1)%StateSize]

			s[j] = bits.RotateLeft8(v, diffusionRotate)
		}
	}
}

// absorb injects one step and diffuses the result.
func (s *State) absorb(st Step) {
	s.Inject(st.InjectValue())
	s.Diffuse()
}
