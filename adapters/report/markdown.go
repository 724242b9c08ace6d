// Package report renders read-only distribution snapshots for display.
// The core never formats; this adapter consumes Snapshot() output only.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"

	"godrv/domain/randvar"
)

// Markdown renders a snapshot as a markdown table with a summary line.
func Markdown(name string, v *randvar.Variable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", name)
	fmt.Fprintf(&b, "Mean %.6g, variance %.6g over %d outcomes.\n\n", v.ExpectedValue(nil), v.Variance(), v.Len())
	b.WriteString("| Outcome | Probability |\n")
	b.WriteString("|---------|-------------|\n")
	for _, pt := range v.Snapshot() {
		fmt.Fprintf(&b, "| %g | %.6g |\n", pt.Outcome, pt.Probability)
	}
	return b.String()
}

// HTML renders the markdown report as HTML.
func HTML(name string, v *randvar.Variable) []byte {
	return markdown.ToHTML([]byte(Markdown(name, v)), nil, nil)
}
