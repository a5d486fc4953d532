package chain

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hkanpak21/funhash/termstyle"
)

// Render writes one bordered card per block. Valid blocks are
// drawn in the valid color, the first bad block and every
// block after it in the invalid color.
func Render(
	w io.Writer,
	c *Chain,
	re *lipgloss.Renderer,
) error {
	const errCtx = "rendering chain"

	theme := termstyle.DefaultTheme
	statuses := c.Validate()
	cards := make([]string, 0, c.Len())

	label := re.NewStyle().Bold(true)
	alert := re.NewStyle().Bold(true).Foreground(theme.Invalid)

	for i, b := range c.blocks {
		st := statuses[i]

		color, verdict := theme.Valid, "VALID"
		if !st.Valid {
			color, verdict = theme.Invalid, "INVALID"
		}

		var notes []string
		if st.Tampered {
			notes = append(notes, "hash mismatch")
		}

		if st.Broken {
			notes = append(notes, "broken link")
		}

		prev := b.PrevHash
		if st.Broken {
			prev = alert.Render(prev)
		}

		hash := b.Hash
		if st.Tampered {
			hash = alert.Render(hash)
		}

		head := label.Render(fmt.Sprintf("Block #%d", b.Index)) + "  " +
			re.NewStyle().Bold(true).Foreground(color).Render(verdict)
		if len(notes) > 0 {
			head += " (" + strings.Join(notes, ", ") + ")"
		}

		body := strings.Join([]string{
			head,
			label.Render("Data:") + " " + b.Data,
			label.Render("Prev:") + " " + prev,
			label.Render("Hash:") + " " + hash,
		}, "\n")

		card := re.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Render(body)

		cards = append(cards, card)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, cards...) + "\n"

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// hashPreview is the number of hash characters shown on a
// fork card.
const hashPreview = 10

// RenderFork writes the honest and malicious paths side by
// side. Blocks both paths share are drawn in the valid color;
// from the divergence point on the malicious path is drawn in
// the invalid color.
func RenderFork(
	w io.Writer,
	f Fork,
	re *lipgloss.Renderer,
) error {
	const errCtx = "rendering fork"

	theme := termstyle.DefaultTheme
	split := f.Divergence()

	path := func(title string, blocks []Block, forked bool) string {
		cards := []string{
			re.NewStyle().Bold(true).Foreground(theme.Header).Render(title),
		}

		for i, b := range blocks {
			color := theme.Valid
			if forked && split >= 0 && i >= split {
				color = theme.Invalid
			}

			hash := b.Hash
			if len(hash) > hashPreview {
				hash = hash[:hashPreview] + "..."
			}

			cards = append(cards, re.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(color).
				Padding(0, 1).
				Render(fmt.Sprintf("Block #%d\n%s", b.Index, hash)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	out := lipgloss.JoinHorizontal(
		lipgloss.Top,
		path("Honest network", f.Honest, false),
		"   ",
		path("Attacker", f.Malicious, true),
	) + "\n"

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
