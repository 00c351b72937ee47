package extraction

import "strings"

const (
	moduleTitleMarker = "Title:"
	moduleDateMarker  = "Date:"
)

// SplitModules breaks a multi-module Body cell into module subjects. The text
// before the first "Title:" is a preamble and is discarded; each remaining
// fragment contributes the text that precedes its "Date:".
func SplitModules(body string) []string {
	fragments := strings.Split(body, moduleTitleMarker)
	if len(fragments) < 2 {
		return nil
	}

	subjects := make([]string, 0, len(fragments)-1)
	for _, fragment := range fragments[1:] {
		subject, _, _ := strings.Cut(fragment, moduleDateMarker)
		subjects = append(subjects, subject)
	}
	return subjects
}
