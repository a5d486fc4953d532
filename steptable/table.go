package steptable

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/termstyle"
)

//nolint:gochecknoglobals // column titles
var headers = []string{
	"#", "Char", "Code (A=1)", "π", "e", "φ",
	"Formula", "Raw", "Mod 257",
}

// Render writes steps as a bordered table.
func Render(
	w io.Writer,
	steps []ikh.Step,
	re *lipgloss.Renderer,
) error {
	const errCtx = "rendering step table"

	theme := termstyle.DefaultTheme
	headerStyle := re.NewStyle().
		Bold(true).
		Foreground(theme.Header).
		Padding(0, 1)
	cellStyle := re.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		rows = append(rows, []string{
			strconv.Itoa(st.Position),
			st.Character,
			strconv.Itoa(st.Code),
			strconv.Itoa(st.PiDigit),
			strconv.Itoa(st.EDigit),
			strconv.Itoa(st.PhiDigit),
			Formula(st),
			strconv.Itoa(st.RawValue),
			strconv.Itoa(st.ModValue),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// RenderTrace writes one line per round: position, character,
// injected byte and the state after diffusion.
func RenderTrace(
	w io.Writer,
	rounds []ikh.Round,
	re *lipgloss.Renderer,
) error {
	const errCtx = "rendering trace"

	faint := re.NewStyle().Foreground(termstyle.DefaultTheme.Faint)

	for _, rd := range rounds {
		_, err := fmt.Fprintf(
			w, "%3d  %s  %s %02x  %s %s\n",
			rd.Step.Position,
			rd.Step.Character,
			faint.Render("inject"),
			rd.Injected,
			faint.Render("state"),
			rd.State,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}
