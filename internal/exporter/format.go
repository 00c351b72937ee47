package exporter

import "gradecli/pkg/contracts/domain"

// formatCell renders an absent cell as an empty spreadsheet cell
func formatCell(c domain.Cell) string {
	return c.Or("")
}

// formatYesNo formats a flag the way the report spells it
func formatYesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// firstQualification returns the qualification of the first entry that has one
func firstQualification(entries []domain.GradeEntry) string {
	for _, e := range entries {
		if q := e.Qualification(); q.Present() {
			return q.Value
		}
	}
	return ""
}
