// Package pipeline runs the extraction engine over a set of applicants.
//
// A run reads each applicant's workbook, extracts a StudentRecord, and fills
// an applicant collection in id order. With one worker records are added
// strictly in sequence. With more, workers write disjoint slots and the
// collection is checked for completeness once they finish. Classification and
// issue detection run afterwards over the completed collection.
package pipeline
