// Package classifier sorts grade entries into the subject categories used by
// the admissions report.
package classifier

import (
	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// priority is the order in which categories claim an entry.
var priority = []domain.Category{
	domain.CategoryMath,
	domain.CategoryPhysics,
	domain.CategoryFurtherMath,
}

// Classifier assigns entries to categories using the qualification-keyed
// subject mappings. It is safe for concurrent use.
type Classifier struct {
	lookups *config.LookupTables
}

// New creates a classifier over the given lookup tables.
func New(lookups *config.LookupTables) *Classifier {
	return &Classifier{lookups: lookups}
}

// CategoryOf returns the first category whose mapping lists the entry's
// subject under its qualification. Entries matching none, including those
// without a qualification, are additional.
func (c *Classifier) CategoryOf(e domain.GradeEntry) domain.Category {
	q := e.Qualification()
	if !q.Present() {
		return domain.CategoryAdditional
	}
	for _, category := range priority {
		if c.lookups.Accepts(category, q.Value, e.Subject()) {
			return category
		}
	}
	return domain.CategoryAdditional
}

// Classify partitions every entry of r. Each category list keeps the order of
// StudentRecord.All.
func (c *Classifier) Classify(r *domain.StudentRecord) domain.CategorizedEntries {
	var out domain.CategorizedEntries
	for _, e := range r.All() {
		out.Add(c.CategoryOf(e), e)
	}
	return out
}
