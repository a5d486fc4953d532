package ikh

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidDigest is returned when a hex string does not
// encode exactly StateSize bytes.
var ErrInvalidDigest = errors.New("invalid digest")

// Digest is the final state of a computation.
type Digest [StateSize]byte

// String returns the 64-character lowercase hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether every byte is zero, which is the
// digest of an empty normalized input.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// ParseDigest decodes a 64-character hex string.
func ParseDigest(s string) (Digest, error) {
	const errCtx = "parsing digest"

	var d Digest

	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrInvalidDigest, err,
		)
	}

	if len(raw) != StateSize {
		return d, fmt.Errorf(
			"%s: %w: %d bytes, want %d",
			errCtx, ErrInvalidDigest, len(raw), StateSize,
		)
	}

	copy(d[:], raw)

	return d, nil
}
