package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGradeEntry(t *testing.T) {
	tests := []struct {
		name          string
		qualification Cell
		subject       string
		wantQual      Cell
		wantSubject   string
	}{
		{
			name:          "plain values kept",
			qualification: Text("A-Level"),
			subject:       "Mathematics",
			wantQual:      Text("A-Level"),
			wantSubject:   "Mathematics",
		},
		{
			name:          "carriage returns stripped",
			qualification: Text("GCE Advanced\rLevel"),
			subject:       "Further\rMathematics",
			wantQual:      Text("GCE AdvancedLevel"),
			wantSubject:   "FurtherMathematics",
		},
		{
			name:          "surrounding spaces are not trimmed",
			qualification: Absent(),
			subject:       " Maths ",
			wantQual:      Absent(),
			wantSubject:   " Maths ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewGradeEntry(tt.qualification, tt.subject, Text("A"), false, Text("2021"))
			assert.Equal(t, tt.wantQual, e.Qualification())
			assert.Equal(t, tt.wantSubject, e.Subject())
			assert.Equal(t, Text("A"), e.Grade())
			assert.Equal(t, Text("2021"), e.Year())
			assert.False(t, e.IsPredicted())
		})
	}
}

func TestGradeEntry_String(t *testing.T) {
	e := NewGradeEntry(Text("A-Level"), "Physics", Text("A*"), true, Text("2024"))
	assert.Equal(t, "Qualification: A-Level Subject: Physics Grade: A* Year: 2024 Predicted true", e.String())

	module := NewGradeEntry(Absent(), " Maths ", Absent(), true, Absent())
	assert.Equal(t, "Qualification: None Subject:  Maths  Grade: None Year: None Predicted true", module.String())
}

func TestCell(t *testing.T) {
	assert.False(t, Absent().Present())
	assert.True(t, Text("").Present())
	assert.Equal(t, "fallback", Absent().Or("fallback"))
	assert.Equal(t, "", Text("").Or("fallback"))
	assert.Equal(t, "", Absent().String())
	assert.Equal(t, "B", Text("B").String())
}
