package chain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Load when nothing has been saved
// yet.
var ErrNotFound = errors.New("chain not found")

// ErrUnknownStore is returned by OpenStore for a path whose
// extension maps to no store.
var ErrUnknownStore = errors.New("unknown chain store")

// Store persists the blocks of a chain.
type Store interface {
	// Load returns the saved blocks or ErrNotFound.
	Load(ctx context.Context) ([]Block, error)
	// Save replaces the saved blocks.
	Save(ctx context.Context, blocks []Block) error
	Close() error
}

// OpenStore picks a store from the extension of path: .json,
// .yaml, .yml and .cbor open a FileStore; .db and .sqlite open
// a SQLiteStore.
func OpenStore(path string) (Store, error) {
	const errCtx = "opening chain store"

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml", ".cbor":
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return fs, nil

	case ".db", ".sqlite":
		ss, err := OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return ss, nil

	default:
		return nil, fmt.Errorf(
			"%s: %w: extension %q", errCtx, ErrUnknownStore, ext,
		)
	}
}

// Load restores a chain from s. A store that holds nothing
// yields a fresh chain.
func Load(
	ctx context.Context,
	s Store,
	d Digester,
) (*Chain, error) {
	const errCtx = "loading chain"

	blocks, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return New(d), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	c, err := Restore(d, blocks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return c, nil
}

// Save writes the blocks of c to s.
func Save(ctx context.Context, s Store, c *Chain) error {
	if err := s.Save(ctx, c.Blocks()); err != nil {
		return fmt.Errorf("saving chain: %w", err)
	}

	return nil
}
