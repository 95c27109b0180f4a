package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal gap, as a fraction of the font size, above which two
// adjacent text runs are treated as separate words.
const wordGap = 0.15

// rowText joins the text runs of one PDF row. Runs that touch are glued together,
// runs separated by a gap get a single space, and whitespace is collapsed.
func rowText(runs []pdf.Text) string {
	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := run.X - (prev.X + prev.W)
			if gap > wordGap*maxFloat(prev.FontSize, 1) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(run.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeMetadata strips a leading "/" from keys and maps empty values to nil.
func normalizeMetadata(raw map[string]string) map[string]*string {
	out := make(map[string]*string, len(raw))
	for key, value := range raw {
		key = strings.TrimPrefix(key, "/")
		if key == "" {
			continue
		}
		if strings.TrimSpace(value) == "" {
			out[key] = nil
			continue
		}
		v := value
		out[key] = &v
	}
	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
