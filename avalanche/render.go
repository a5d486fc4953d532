package avalanche

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hkanpak21/funhash/termstyle"
)

const (
	barWidth    = 40
	bitsPerLine = 64
)

// Render writes both digests, the distance metrics, a
// changed/same bar and the bits of B with the bits that
// differ from A highlighted.
func Render(
	w io.Writer,
	r Report,
	re *lipgloss.Renderer,
) error {
	const errCtx = "rendering avalanche report"

	theme := termstyle.DefaultTheme
	label := re.NewStyle().Bold(true).Foreground(theme.Header)
	changed := re.NewStyle().Bold(true).Foreground(theme.Changed)
	same := re.NewStyle().Foreground(theme.Same)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s", label.Render("A"), r.A)
	if r.TextA != "" {
		fmt.Fprintf(&sb, "  %q", r.TextA)
	}

	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "%s %s", label.Render("B"), r.B)
	if r.TextB != "" {
		fmt.Fprintf(&sb, "  %q", r.TextB)
	}

	sb.WriteString("\n\n")

	fmt.Fprintf(
		&sb, "%s %d bits\n",
		label.Render("Hamming distance:"), r.Distance,
	)
	fmt.Fprintf(
		&sb, "%s %.2f%%\n",
		label.Render("Changed:"), r.Percent,
	)

	filled := int(math.Round(r.Percent / 100 * barWidth))
	sb.WriteString(changed.Render(strings.Repeat("█", filled)))
	sb.WriteString(same.Render(strings.Repeat("░", barWidth-filled)))
	fmt.Fprintf(&sb, " %d changed / %d same\n\n", r.Distance, r.Same())

	bitsA := BitString(r.A)
	bitsB := BitString(r.B)

	for i := range DigestBits {
		bit := string(bitsB[i])
		if bitsA[i] != bitsB[i] {
			sb.WriteString(changed.Render(bit))
		} else {
			sb.WriteString(bit)
		}

		if (i+1)%bitsPerLine == 0 {
			sb.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
