package domain

// Cell is an optional table value. A zero Cell is absent; a valid Cell may
// still hold an empty string.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Absent returns a cell with no value.
func Absent() Cell {
	return Cell{}
}

// Present reports whether the cell holds a value.
func (c Cell) Present() bool {
	return c.Valid
}

// Or returns the cell value, or fallback when absent.
func (c Cell) Or(fallback string) string {
	if !c.Valid {
		return fallback
	}
	return c.Value
}

// String renders an absent cell as an empty string.
func (c Cell) String() string {
	return c.Value
}
