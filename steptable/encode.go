package steptable

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	const errCtx = "writing json"

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	const errCtx = "writing yaml"

	buf, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
