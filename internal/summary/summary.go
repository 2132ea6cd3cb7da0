// Package summary prints human-readable reports of a scan.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/duyet/i/internal/scan"
)

// Table renders one row per project with its variants and job count.
func Table(m *scan.ImageMap) string {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault

	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"Project", "Variants", "Tags"})

	for _, p := range m.Projects() {
		tw.AppendRow(table.Row{p.Name, len(p.Variants), strings.Join(p.Variants, ", ")})
	}
	tw.AppendFooter(table.Row{"Total", m.VariantCount(), ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// Print writes the table followed by a one-line count, or a notice when the
// scan found nothing.
func Print(w io.Writer, m *scan.ImageMap) {
	if m.Len() == 0 {
		fmt.Fprintln(w, "no images found")
		return
	}
	fmt.Fprintln(w, Table(m))
	fmt.Fprintf(w, "%d %s, %d %s\n",
		m.Len(), plural(m.Len(), "project", "projects"),
		m.VariantCount(), plural(m.VariantCount(), "variant", "variants"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
