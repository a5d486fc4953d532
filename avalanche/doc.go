// Package avalanche measures how far two IKH digests are apart
// bit by bit. Compare reports the Hamming distance over the 256
// digest bits and Render draws the bit grid with every changed
// bit highlighted, the way the avalanche effect is usually
// demonstrated.
package avalanche
