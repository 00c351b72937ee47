// Package ingest reads applicant transcript workbooks into raw tables.
//
// A workbook holds up to three sheets, one per table kind. Each sheet has a
// header row followed by data rows. Header cells are matched by name after
// whitespace normalization, so "Predicted\rGrade" and "Predicted Grade" are
// the same column. Empty cells become absent values and a missing sheet
// becomes a nil table.
package ingest
