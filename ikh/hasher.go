package ikh

import "hash"

// Hasher computes IKH digests under one normalization policy.
// The zero value keeps input runes as given; Canonical strips
// everything but letters. A Hasher holds no mutable state and
// may be shared between goroutines.
type Hasher struct {
	// StripNonAlpha upper-cases the input and drops every
	// rune outside A-Z before indexing.
	StripNonAlpha bool
}

// Canonical is the policy used by the package-level helpers.
//
//nolint:gochecknoglobals // immutable default policy
var Canonical = Hasher{StripNonAlpha: true}

// Round is one character's contribution to a digest.
type Round struct {
	Step Step `json:"step" yaml:"step"`
	// Injected is the byte XORed into the state.
	Injected byte `json:"injected" yaml:"injected"`
	// State is the state after injection and diffusion.
	State Digest `json:"state" yaml:"state"`
}

// Normalize returns text as this Hasher will index it.
func (h Hasher) Normalize(text string) string {
	return newNormalizer(h.StripNonAlpha).normalize(text)
}

// Sum returns the digest of text. An input that normalizes to
// nothing yields the zero digest.
func (h Hasher) Sum(text string) Digest {
	runes := newNormalizer(h.StripNonAlpha).runes(text)
	if len(runes) == 0 {
		return Digest{}
	}

	var st State
	for idx, r := range runes {
		st.absorb(ComputeStep(r, idx))
	}

	return Digest(st)
}

// Hex returns the hex form of Sum(text).
func (h Hasher) Hex(text string) string {
	return h.Sum(text).String()
}

// Steps returns the steps of the normalized text, matching
// the values Sum feeds to the mixer.
func (h Hasher) Steps(text string) []Step {
	return stepsOf(newNormalizer(h.StripNonAlpha).runes(text))
}

// Trace returns every round of the computation. The State of
// the last round equals Sum(text).
func (h Hasher) Trace(text string) []Round {
	runes := newNormalizer(h.StripNonAlpha).runes(text)
	rounds := make([]Round, 0, len(runes))

	var st State
	for idx, r := range runes {
		step := ComputeStep(r, idx)
		st.absorb(step)

		rounds = append(rounds, Round{
			Step:     step,
			Injected: step.InjectValue(),
			State:    Digest(st),
		})
	}

	return rounds
}

// New returns a streaming hash.Hash fed with UTF-8 bytes.
func (h Hasher) New() hash.Hash {
	return newWriter(h.StripNonAlpha)
}

// Sum returns the canonical digest of text.
func Sum(text string) Digest {
	return Canonical.Sum(text)
}

// Hex returns the canonical hex digest of text.
func Hex(text string) string {
	return Canonical.Hex(text)
}
