package termstyle

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewRenderer.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// ErrUnknownMode is returned for a color mode outside the
// Mode constants.
var ErrUnknownMode = errors.New("unknown color mode")

// ValidateMode checks that mode is one of the Mode constants.
func ValidateMode(mode string) error {
	switch mode {
	case ModeAuto, ModeAlways, ModeNever:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// NewRenderer returns a renderer writing to w. ModeAuto
// detects the profile from w; ModeAlways forces 256 colors
// and ModeNever strips all styling.
func NewRenderer(
	w io.Writer,
	mode string,
) (*lipgloss.Renderer, error) {
	const errCtx = "creating renderer"

	if err := ValidateMode(mode); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	switch mode {
	case ModeAlways:
		// The profile must be set explicitly: the renderer
		// re-detects it from the environment otherwise.
		re := lipgloss.NewRenderer(
			w, termenv.WithProfile(termenv.ANSI256),
		)
		re.SetColorProfile(termenv.ANSI256)

		return re, nil

	case ModeNever:
		re := lipgloss.NewRenderer(
			w, termenv.WithProfile(termenv.Ascii),
		)
		re.SetColorProfile(termenv.Ascii)

		return re, nil

	default:
		return lipgloss.NewRenderer(w), nil
	}
}

// Theme is the palette used by the step table, the avalanche
// view and the chain cards. Colors are ANSI 256 codes.
type Theme struct {
	Header  lipgloss.Color
	Faint   lipgloss.Color
	Border  lipgloss.Color
	Valid   lipgloss.Color
	Invalid lipgloss.Color
	Changed lipgloss.Color
	Same    lipgloss.Color
}

// DefaultTheme is used when callers do not supply one.
//
//nolint:gochecknoglobals // read-only palette
var DefaultTheme = Theme{
	Header:  lipgloss.Color("75"),
	Faint:   lipgloss.Color("244"),
	Border:  lipgloss.Color("240"),
	Valid:   lipgloss.Color("34"),
	Invalid: lipgloss.Color("160"),
	Changed: lipgloss.Color("196"),
	Same:    lipgloss.Color("250"),
}
