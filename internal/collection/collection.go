// Package collection holds applicant records in a fixed id order.
//
// Records are added strictly in id order with Add, or written to their own
// slot with Set when several workers fill the collection at once. Set callers
// must target disjoint slots; Complete then confirms every slot was filled.
package collection

import (
	"fmt"
	"iter"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Collection is a fixed-size sequence of applicant records.
type Collection struct {
	ids   []string
	slots []*domain.StudentRecord
	next  int
}

// New creates a collection with one empty slot per id.
func New(ids []string) *Collection {
	owned := make([]string, len(ids))
	copy(owned, ids)
	return &Collection{
		ids:   owned,
		slots: make([]*domain.StudentRecord, len(ids)),
	}
}

// Len is the number of slots.
func (c *Collection) Len() int { return len(c.ids) }

// IDs returns the applicant ids in slot order.
func (c *Collection) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Add places r in the next empty slot. It fails when r is not the applicant
// expected at that position, when Set already filled that slot, or when the
// collection is full.
func (c *Collection) Add(r *domain.StudentRecord) error {
	if r == nil {
		return errNilRecord(c.next)
	}
	if c.next >= len(c.ids) {
		return apperrors.NewAppError(apperrors.ErrTypeSequence,
			fmt.Sprintf("collection is full, cannot add applicant %q", r.ID()),
			apperrors.ErrSequenceViolation)
	}
	if want := c.ids[c.next]; r.ID() != want {
		return apperrors.NewSequenceError(c.next, want, r.ID())
	}
	if c.slots[c.next] != nil {
		return apperrors.NewAppError(apperrors.ErrTypeSequence,
			fmt.Sprintf("slot %d already holds applicant %q", c.next, c.ids[c.next]),
			apperrors.ErrSequenceViolation)
	}
	c.slots[c.next] = r
	c.next++
	return nil
}

// Set writes r into slot i, replacing any earlier record. The record id must
// match the id of the slot.
func (c *Collection) Set(i int, r *domain.StudentRecord) error {
	if i < 0 || i >= len(c.ids) {
		return apperrors.NewAppError(apperrors.ErrTypeSequence,
			fmt.Sprintf("slot %d outside [0, %d)", i, len(c.ids)),
			apperrors.ErrIndexOutOfRange)
	}
	if r == nil {
		return errNilRecord(i)
	}
	if want := c.ids[i]; r.ID() != want {
		return apperrors.NewSequenceError(i, want, r.ID())
	}
	c.slots[i] = r
	return nil
}

func errNilRecord(i int) error {
	return apperrors.NewAppError(apperrors.ErrTypeSequence,
		fmt.Sprintf("nil record for slot %d", i),
		apperrors.ErrSequenceViolation)
}

// Complete returns an error naming the first empty slot, if any.
func (c *Collection) Complete() error {
	var missing []string
	for i, r := range c.slots {
		if r == nil {
			missing = append(missing, c.ids[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apperrors.NewAppError(apperrors.ErrTypeSequence,
		fmt.Sprintf("%d of %d slots empty, first %q", len(missing), len(c.ids), missing[0]),
		apperrors.ErrIncomplete).
		WithContext("missing", missing)
}

// Records returns the filled slots in id order.
func (c *Collection) Records() []*domain.StudentRecord {
	out := make([]*domain.StudentRecord, 0, len(c.slots))
	for _, r := range c.slots {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Backward yields filled slots from the highest index down to 0. Each call to
// the returned sequence starts again from the top.
func (c *Collection) Backward() iter.Seq[*domain.StudentRecord] {
	return func(yield func(*domain.StudentRecord) bool) {
		cur := c.Cursor()
		for r, ok := cur.Next(); ok; r, ok = cur.Next() {
			if !yield(r) {
				return
			}
		}
	}
}

// Cursor returns a reverse cursor positioned above the last slot.
func (c *Collection) Cursor() *Cursor {
	return &Cursor{c: c, pos: len(c.slots)}
}

// Cursor walks a collection from the last filled slot to the first. After
// reporting exhaustion it re-arms at the top, so the next call to Next begins
// a new pass.
type Cursor struct {
	c   *Collection
	pos int
}

// Next returns the next record going backwards. ok is false once slot 0 has
// been passed.
func (cur *Cursor) Next() (r *domain.StudentRecord, ok bool) {
	for cur.pos > 0 {
		cur.pos--
		if r := cur.c.slots[cur.pos]; r != nil {
			return r, true
		}
	}
	cur.Reset()
	return nil, false
}

// Reset moves the cursor back above the last slot.
func (cur *Cursor) Reset() {
	cur.pos = len(cur.c.slots)
}
