// Package extraction turns an applicant's raw transcript tables into a
// StudentRecord of normalized grade entries.
//
// # Table Kinds
//
// Three table shapes are understood:
//
//	Completed   Exam, Subject, Grade, Date
//	Results     Exam Level, Subject, Grade, Date
//	Predicted   Exam, Body, Subject, Grade, Predicted Grade, Date
//
// Completed and exam-results rows are kept only when their exam name is on the
// matching allow-list. Predicted rows go through grade resolution: whichever
// of Grade and Predicted Grade is present wins, Grade wins when both are
// present unless it holds an "Unnamed" placeholder, and a row with neither
// whose Date is a detailed-record marker is split into one entry per module.
//
// # Diagnostics
//
// Rows that produce no entry are never an error. Each one is reported in the
// Diagnostics returned alongside the record, with the reason it was dropped.
//
// # Malformed Dates
//
// The year of an entry is the text after the last "-" of its Date. A Date
// without a "-" is handled according to the MalformedDatePolicy: the row is
// dropped (SkipMalformedDates) or extraction fails (FailOnMalformedDates).
package extraction
