package ikh

// DigitTable is a read-only cyclic sequence of decimal digits.
type DigitTable struct {
	digits []uint8
}

//nolint:gochecknoglobals // fixed keying material
var (
	piDigits = [...]uint8{
		3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3,
	}
	eDigits = [...]uint8{
		2, 7, 1, 8, 2, 8, 1, 8, 2, 8, 4, 5, 9, 0, 4, 5,
	}
	phiDigits = [...]uint8{
		1, 6, 1, 8, 0, 3, 3, 9, 8, 8, 7, 4, 9, 8, 9, 4,
	}
)

// Tables keyed into every step. They share their backing
// arrays with nothing else and expose no mutators.
//
//nolint:gochecknoglobals // fixed keying material
var (
	Pi  = DigitTable{digits: piDigits[:]}
	E   = DigitTable{digits: eDigits[:]}
	Phi = DigitTable{digits: phiDigits[:]}
)

// Get returns the digit at index i, wrapping around the end
// of the table. Negative indexes wrap from the end.
func (dt DigitTable) Get(i int) int {
	n := len(dt.digits)

	idx := i % n
	if idx < 0 {
		idx += n
	}

	return int(dt.digits[idx])
}

// Len returns the number of digits in the table.
func (dt DigitTable) Len() int {
	return len(dt.digits)
}

// Digits returns a copy of the table contents.
func (dt DigitTable) Digits() []int {
	out := make([]int, len(dt.digits))
	for i, d := range dt.digits {
		out[i] = int(d)
	}

	return out
}
