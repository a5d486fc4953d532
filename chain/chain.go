package chain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// GenesisData is the payload of block 0.
	GenesisData = "Genesis Block"
	// hashWidth is the hex width of a digest.
	hashWidth = 64
)

// ZeroHash is the previous hash recorded by the genesis block.
//
//nolint:gochecknoglobals // constant-like value
var ZeroHash = strings.Repeat("0", hashWidth)

// ErrIndexOutOfRange is returned when a block index does not
// exist in the chain.
var ErrIndexOutOfRange = errors.New("block index out of range")

// Digester computes the hex digest a block is sealed with.
// ikh.Hasher satisfies it.
type Digester interface {
	Hex(text string) string
}

// DigesterFunc adapts a plain function to the Digester
// interface.
type DigesterFunc func(text string) string

// Hex calls f(text).
func (f DigesterFunc) Hex(text string) string {
	return f(text)
}

// Block is one link of the chain.
type Block struct {
	Index    int    `json:"index"     yaml:"index"     cbor:"index"`
	Data     string `json:"data"      yaml:"data"      cbor:"data"`
	PrevHash string `json:"prev_hash" yaml:"prev_hash" cbor:"prev_hash"`
	Hash     string `json:"hash"      yaml:"hash"      cbor:"hash"`
}

// Status is the verification result of one block.
type Status struct {
	Index int `json:"index"`
	// Tampered means the stored hash no longer matches the
	// block's contents.
	Tampered bool `json:"tampered"`
	// Broken means PrevHash does not match the hash of the
	// block before it.
	Broken bool `json:"broken"`
	// Valid is false for a bad block and every block after
	// it.
	Valid bool `json:"valid"`
}

// Chain is an ordered list of blocks sealed by a Digester. A
// Chain is not safe for concurrent use.
type Chain struct {
	digester Digester
	blocks   []Block
}

// New returns a chain holding only the genesis block.
func New(d Digester) *Chain {
	c := &Chain{digester: d}
	c.Reset()

	return c
}

// Restore rebuilds a chain from stored blocks. The blocks are
// taken as stored, so a tampered store stays tampered. No
// blocks yields a fresh chain.
func Restore(d Digester, blocks []Block) (*Chain, error) {
	const errCtx = "restoring chain"

	if len(blocks) == 0 {
		return New(d), nil
	}

	for i, b := range blocks {
		if b.Index != i {
			return nil, fmt.Errorf(
				"%s: block at position %d has index %d",
				errCtx, i, b.Index,
			)
		}
	}

	return &Chain{
		digester: d,
		blocks:   append([]Block(nil), blocks...),
	}, nil
}

func (c *Chain) seal(data, prevHash string) string {
	return c.digester.Hex(data + prevHash)
}

// Reset drops every block but a fresh genesis block.
func (c *Chain) Reset() {
	c.blocks = []Block{{
		Index:    0,
		Data:     GenesisData,
		PrevHash: ZeroHash,
		Hash:     c.seal(GenesisData, ZeroHash),
	}}
}

// Add appends a block linked to the current last block and
// returns it.
func (c *Chain) Add(data string) Block {
	last := c.blocks[len(c.blocks)-1]

	b := Block{
		Index:    len(c.blocks),
		Data:     data,
		PrevHash: last.Hash,
		Hash:     c.seal(data, last.Hash),
	}
	c.blocks = append(c.blocks, b)

	return b
}

// Edit replaces the data of block index and leaves its hash
// untouched.
func (c *Chain) Edit(index int, data string) error {
	if index < 0 || index >= len(c.blocks) {
		return fmt.Errorf(
			"%w: %d not in [0, %d)",
			ErrIndexOutOfRange, index, len(c.blocks),
		)
	}

	c.blocks[index].Data = data

	return nil
}

// Len returns the number of blocks.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the blocks in order.
func (c *Chain) Blocks() []Block {
	return append([]Block(nil), c.blocks...)
}

// Validate recomputes every block and reports its status.
func (c *Chain) Validate() []Status {
	out := make([]Status, len(c.blocks))
	ok := true

	for i, b := range c.blocks {
		st := Status{Index: b.Index}
		st.Tampered = b.Hash != c.seal(b.Data, b.PrevHash)

		if i > 0 {
			st.Broken = b.PrevHash != c.blocks[i-1].Hash
		} else {
			st.Broken = b.PrevHash != ZeroHash
		}

		ok = ok && !st.Tampered && !st.Broken
		st.Valid = ok
		out[i] = st
	}

	return out
}

// Valid reports whether every block verifies.
func (c *Chain) Valid() bool {
	sts := c.Validate()

	return sts[len(sts)-1].Valid
}
