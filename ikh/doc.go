// Package ikh implements the IKH text digest: a non-cryptographic
// 256-bit digest keyed by digit tables of π, e and φ.
//
// Each character is turned into a Step by ComputeStep, whose
// mod-257 value is injected into a 32-byte State that is then
// diffused in place. The state after the last character is the
// Digest. A Hasher carries the text normalization policy; the
// package-level Sum and Hex use the canonical policy
// (upper-case, letters A-Z only). AllSteps applies no
// normalization; Hasher.Steps applies the Hasher's.
//
// The construction is meant for demonstrating bit diffusion and
// the avalanche effect. It offers no preimage or collision
// resistance.
package ikh
