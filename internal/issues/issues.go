// Package issues flags data-quality problems in a classified applicant record.
package issues

import (
	"fmt"
	"strings"

	"gradecli/pkg/contracts/domain"
)

// NoValidQualifications is reported when no entry survived extraction.
const NoValidQualifications = "No valid qual & subjects."

// TooManySubjects is reported when more than two additional subjects remain.
const TooManySubjects = "More than 4 subjects."

// maxAdditional is the number of additional subjects the report has room for.
const maxAdditional = 2

// Detect returns the issues of ce in evaluation order. An empty record yields
// only NoValidQualifications.
func Detect(ce domain.CategorizedEntries) []string {
	if ce.Empty() {
		return []string{NoValidQualifications}
	}

	var found []string
	for _, c := range []domain.Category{domain.CategoryMath, domain.CategoryPhysics, domain.CategoryFurtherMath} {
		if len(ce.Get(c)) > 1 {
			found = append(found, MultipleQualifications(c))
		}
	}
	if len(ce.Additional) > maxAdditional {
		found = append(found, TooManySubjects)
	}
	return found
}

// MultipleQualifications is the message for a category holding more than one
// entry.
func MultipleQualifications(c domain.Category) string {
	return fmt.Sprintf("Multiple %s Qual.", c)
}

// Message joins the issues of ce with spaces. ok is false when there are none.
func Message(ce domain.CategorizedEntries) (msg string, ok bool) {
	found := Detect(ce)
	if len(found) == 0 {
		return "", false
	}
	return strings.Join(found, " "), true
}
