package steptable

import (
	"strconv"

	"github.com/valyala/fasttemplate"

	"github.com/hkanpak21/funhash/ikh"
)

const formulaTemplate = "({code} * {pi}) + ({position} * {e}) + {phi}"

//nolint:gochecknoglobals // compiled once, safe for concurrent use
var formulaTpl = fasttemplate.New(formulaTemplate, "{", "}")

// Formula renders the arithmetic behind st.RawValue, e.g.
// "(1 * 3) + (1 * 2) + 1".
func Formula(st ikh.Step) string {
	return formulaTpl.ExecuteString(map[string]interface{}{
		"code":     strconv.Itoa(st.Code),
		"pi":       strconv.Itoa(st.PiDigit),
		"position": strconv.Itoa(st.Position),
		"e":        strconv.Itoa(st.EDigit),
		"phi":      strconv.Itoa(st.PhiDigit),
	})
}

// Record is a step enriched with its formula for export.
type Record struct {
	ikh.Step `json:",inline" yaml:",inline"`

	Formula string `json:"formula" yaml:"formula"`
}

// Records pairs every step with its formula.
func Records(steps []ikh.Step) []Record {
	out := make([]Record, 0, len(steps))
	for _, st := range steps {
		out = append(out, Record{Step: st, Formula: Formula(st)})
	}

	return out
}
