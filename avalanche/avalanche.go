package avalanche

import (
	"math/bits"
	"strings"

	"github.com/hkanpak21/funhash/ikh"
)

// DigestBits is the number of bits compared.
const DigestBits = ikh.StateSize * 8

// Report is the bitwise comparison of two digests.
type Report struct {
	TextA string `json:"text_a,omitempty"`
	TextB string `json:"text_b,omitempty"`

	A ikh.Digest `json:"a"`
	B ikh.Digest `json:"b"`

	// Distance is the number of differing bits.
	Distance int `json:"distance"`
	// Percent is Distance as a share of DigestBits.
	Percent float64 `json:"percent"`
}

// Compare counts the bits that differ between a and b.
func Compare(a, b ikh.Digest) Report {
	dist := 0
	for i := range a {
		dist += bits.OnesCount8(a[i] ^ b[i])
	}

	return Report{
		A:        a,
		B:        b,
		Distance: dist,
		Percent:  float64(dist) / DigestBits * 100,
	}
}

// CompareText digests both texts with h and compares them.
func CompareText(h ikh.Hasher, a, b string) Report {
	r := Compare(h.Sum(a), h.Sum(b))
	r.TextA = a
	r.TextB = b

	return r
}

// Same returns the number of equal bits.
func (r Report) Same() int {
	return DigestBits - r.Distance
}

// Changed returns the indexes of the differing bits. Bit 0 is
// the most significant bit of the first byte, matching the
// order of BitString.
func (r Report) Changed() []int {
	out := make([]int, 0, r.Distance)

	for i := range DigestBits {
		if bitAt(r.A, i) != bitAt(r.B, i) {
			out = append(out, i)
		}
	}

	return out
}

// BitString renders d as 256 '0'/'1' characters, most
// significant bit first.
func BitString(d ikh.Digest) string {
	var sb strings.Builder

	sb.Grow(DigestBits)

	for i := range DigestBits {
		sb.WriteByte('0' + bitAt(d, i))
	}

	return sb.String()
}

func bitAt(d ikh.Digest, i int) byte {
	return (d[i/8] >> (7 - i%8)) & 1
}
