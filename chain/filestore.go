package chain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// codec turns a block list into bytes and back.
type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

//nolint:gochecknoglobals // initialized once in init
var cborCodec codec

func init() {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("chain: CBOR encoder initialization failed: " + err.Error())
	}

	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("chain: CBOR decoder initialization failed: " + err.Error())
	}

	cborCodec = codec{marshal: enc.Marshal, unmarshal: dec.Unmarshal}
}

func codecFor(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return codec{
			marshal: func(v any) ([]byte, error) {
				return json.MarshalIndent(v, "", "  ")
			},
			unmarshal: json.Unmarshal,
		}, nil

	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil

	case ".cbor":
		return cborCodec, nil

	default:
		return codec{}, fmt.Errorf("%w: extension %q", ErrUnknownStore, ext)
	}
}

// FileStore keeps the blocks in one document whose format
// follows the file extension.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore returns a store for path. The file is created on
// the first Save.
func NewFileStore(path string) (*FileStore, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, fmt.Errorf("creating file store: %w", err)
	}

	return &FileStore{path: path, codec: c}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) ([]Block, error) {
	const errCtx = "loading chain file"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", errCtx, ErrNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var blocks []Block
	if err := s.codec.unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, s.path, err)
	}

	return blocks, nil
}

// Save implements Store. The document is written to a
// temporary file and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, blocks []Block) error {
	const errCtx = "saving chain file"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	data, err := s.codec.marshal(blocks)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Close implements Store.
func (*FileStore) Close() error {
	return nil
}
