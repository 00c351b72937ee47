package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"gradecli/internal/pipeline"
)

// PrintSummary renders the run as a table, most recently processed applicant
// first.
func PrintSummary(w io.Writer, result *pipeline.Result) {
	color.New(color.FgCyan).Fprintf(w, "\n=== Grade Extraction Summary ===\n")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"UCAS ID", "Entries", "Dropped", "FM?", "Issues"})

	withIssues := 0
	for a := range result.Backward() {
		issue, ok := a.Issue()
		if ok {
			withIssues++
		}
		table.Append([]string{
			a.Record.ID(),
			strconv.Itoa(a.Record.Len()),
			strconv.Itoa(a.Diagnostics.DroppedCount()),
			formatYesNo(a.Categories.HasFurtherMath()),
			issue,
		})
	}
	table.Render()

	totals := fmt.Sprintf("%d applicants, %d with issues, %d rows dropped",
		len(result.Applicants), withIssues, result.DroppedRows())
	if withIssues > 0 {
		color.New(color.FgYellow).Fprintln(w, totals)
	} else {
		color.New(color.FgGreen).Fprintln(w, totals)
	}
}
