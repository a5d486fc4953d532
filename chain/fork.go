package chain

import "fmt"

// Payload prefixes of the two fork paths.
const (
	honestData   = "Honest block"
	attackedData = "HACKED"
	attackData   = "Attack block"
)

// Fork is an honest chain and an attacker's competing chain
// grown from the same genesis block. The attacker rewrites
// block 1 and keeps extending its own history from there.
type Fork struct {
	Honest    []Block `json:"honest"    yaml:"honest"`
	Malicious []Block `json:"malicious" yaml:"malicious"`
}

// Simulate grows both paths by steps blocks after the shared
// genesis block. A negative steps is treated as zero.
func Simulate(d Digester, steps int) Fork {
	honest := New(d)
	malicious := New(d)

	for i := 1; i <= steps; i++ {
		honest.Add(fmt.Sprintf("%s %d", honestData, i))

		if i == 1 {
			malicious.Add(fmt.Sprintf("%s %d", attackedData, i))

			continue
		}

		malicious.Add(fmt.Sprintf("%s %d", attackData, i))
	}

	return Fork{
		Honest:    honest.blocks,
		Malicious: malicious.blocks,
	}
}

// Divergence returns the index of the first block whose hash
// differs between the two paths, or -1 when they agree on
// every block they share.
func (f Fork) Divergence() int {
	n := min(len(f.Honest), len(f.Malicious))

	for i := range n {
		if f.Honest[i].Hash != f.Malicious[i].Hash {
			return i
		}
	}

	return -1
}
