package pipeline

import (
	"fmt"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/files"
)

// Source names an applicant and the workbook holding their tables. An empty
// Path means no workbook was found; the applicant gets an empty record.
type Source struct {
	ID   string
	Path string
}

// Sources pairs each id with its transcript, keeping the order of ids.
func Sources(ids []string, transcripts []files.Transcript) []Source {
	index := files.Index(transcripts)
	out := make([]Source, len(ids))
	for i, id := range ids {
		out[i] = Source{ID: id, Path: index[id].Path}
	}
	return out
}

// SourceIDs returns the applicant ids of sources.
func SourceIDs(sources []Source) []string {
	ids := make([]string, len(sources))
	for i, s := range sources {
		ids[i] = s.ID
	}
	return ids
}

// checkUnique rejects sources that share an applicant id.
func checkUnique(sources []Source) error {
	seen := make(map[string]int, len(sources))
	for i, s := range sources {
		if first, dup := seen[s.ID]; dup {
			return apperrors.NewAppValidationError(
				fmt.Sprintf("applicant id %q listed at positions %d and %d", s.ID, first, i))
		}
		seen[s.ID] = i
	}
	return nil
}
