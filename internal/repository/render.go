package repository

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// renderTable prints rows as a console table, or emptyMsg when there are none
func renderTable(w io.Writer, headers []string, rows [][]string, emptyMsg string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, emptyMsg)
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// RenderTable prints arbitrary rows, e.g. report aggregates
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	renderTable(w, headers, rows, "Sin resultados.")
}
