package ikh

import "unicode"

// stepModulus bounds the raw step value before injection.
const stepModulus = 257

// Step is the per-character record shared by the digest
// computation and the step table views.
type Step struct {
	// Character is the single rune this step was computed for.
	Character string `json:"character" yaml:"character"`
	// Position is the 1-based index of the character.
	Position int `json:"position" yaml:"position"`
	// Code is the alphabetic rank of the upper-cased
	// character ('A' is 1). Non-letters fall outside [1,26]
	// and may be negative.
	Code     int `json:"code" yaml:"code"`
	PiDigit  int `json:"pi_digit" yaml:"pi_digit"`
	EDigit   int `json:"e_digit" yaml:"e_digit"`
	PhiDigit int `json:"phi_digit" yaml:"phi_digit"`
	// RawValue is Code*PiDigit + Position*EDigit + PhiDigit.
	RawValue int `json:"raw_value" yaml:"raw_value"`
	// ModValue is RawValue mod 257, always in [0,256].
	ModValue int `json:"mod_value" yaml:"mod_value"`
}

// ComputeStep transforms the character r found at the 0-based
// index of the processed input.
func ComputeStep(r rune, index int) Step {
	position := index + 1
	code := int(unicode.ToUpper(r)) - 'A' + 1

	pi := Pi.Get(index)
	e := E.Get(index)
	phi := Phi.Get(index)

	raw := code*pi + position*e + phi

	return Step{
		Character: string(r),
		Position:  position,
		Code:      code,
		PiDigit:   pi,
		EDigit:    e,
		PhiDigit:  phi,
		RawValue:  raw,
		ModValue:  floorMod(raw, stepModulus),
	}
}

// InjectValue is the byte fed to State.Inject for this step.
func (st Step) InjectValue() byte {
	return byte(st.ModValue % 256)
}

// AllSteps computes the steps for text exactly as given. No
// normalization is applied; use Hasher.Steps for values that
// correspond to a digest.
func AllSteps(text string) []Step {
	return stepsOf([]rune(text))
}

func stepsOf(runes []rune) []Step {
	steps := make([]Step, 0, len(runes))
	for idx, r := range runes {
		steps = append(steps, ComputeStep(r, idx))
	}

	return steps
}

// floorMod returns a mod m in [0,m) for any sign of a.
func floorMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}

	return r
}
