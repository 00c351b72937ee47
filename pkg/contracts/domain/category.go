package domain

// Category is a subject grouping used in the admissions report.
type Category int

const (
	CategoryMath Category = iota
	CategoryPhysics
	CategoryFurtherMath
	CategoryAdditional
)

// Categories lists all categories in classification priority order.
var Categories = []Category{CategoryMath, CategoryPhysics, CategoryFurtherMath, CategoryAdditional}

func (c Category) String() string {
	switch c {
	case CategoryMath:
		return "math"
	case CategoryPhysics:
		return "physics"
	case CategoryFurtherMath:
		return "further-math"
	case CategoryAdditional:
		return "additional"
	}
	return "unknown"
}

// CategorizedEntries partitions one applicant's entries by category. Each list
// keeps the relative order the entries had in the record.
type CategorizedEntries struct {
	Math        []GradeEntry
	Physics     []GradeEntry
	FurtherMath []GradeEntry
	Additional  []GradeEntry
}

// Get returns the list for c.
func (ce CategorizedEntries) Get(c Category) []GradeEntry {
	switch c {
	case CategoryMath:
		return ce.Math
	case CategoryPhysics:
		return ce.Physics
	case CategoryFurtherMath:
		return ce.FurtherMath
	case CategoryAdditional:
		return ce.Additional
	}
	return nil
}

// Add appends e to the list for c.
func (ce *CategorizedEntries) Add(c Category, e GradeEntry) {
	switch c {
	case CategoryMath:
		ce.Math = append(ce.Math, e)
	case CategoryPhysics:
		ce.Physics = append(ce.Physics, e)
	case CategoryFurtherMath:
		ce.FurtherMath = append(ce.FurtherMath, e)
	default:
		ce.Additional = append(ce.Additional, e)
	}
}

// Empty reports whether every category is empty.
func (ce CategorizedEntries) Empty() bool {
	return len(ce.Math) == 0 && len(ce.Physics) == 0 && len(ce.FurtherMath) == 0 && len(ce.Additional) == 0
}

// HasFurtherMath reports whether any further-math entry was found.
func (ce CategorizedEntries) HasFurtherMath() bool {
	return len(ce.FurtherMath) > 0
}

// Len is the number of entries across all categories.
func (ce CategorizedEntries) Len() int {
	return len(ce.Math) + len(ce.Physics) + len(ce.FurtherMath) + len(ce.Additional)
}
