// Package files locates applicant transcript workbooks on disk.
//
// Each applicant has one workbook named after the applicant id, for example
// "1000000001.xlsx". Discovery lists those workbooks in id order, and
// ReadApplicantIDs loads an explicit id list when the processing order must
// follow an external roster.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	transcripts, err := discovery.FindTranscripts("data/transcripts")
//	ids := files.IDs(transcripts)
package files
