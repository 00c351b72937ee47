package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(subject string) GradeEntry {
	return NewGradeEntry(Text("A-Level"), subject, Text("A"), false, Text("2021"))
}

func TestStudentRecord_Lists(t *testing.T) {
	completed := []GradeEntry{entry("Mathematics")}
	predicted := []GradeEntry{entry("Physics"), entry("Chemistry")}
	results := []GradeEntry{entry("Biology")}

	r := NewStudentRecord("1000000001", completed, predicted, results)

	assert.Equal(t, "1000000001", r.ID())
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, completed, r.Entries(KindCompleted))
	assert.Equal(t, predicted, r.Entries(KindPredicted))
	assert.Equal(t, results, r.Entries(KindResults))
	assert.Nil(t, r.Entries(Kind("other")))

	var subjects []string
	for _, e := range r.All() {
		subjects = append(subjects, e.Subject())
	}
	assert.Equal(t, []string{"Biology", "Mathematics", "Physics", "Chemistry"}, subjects)
}

func TestStudentRecord_Immutable(t *testing.T) {
	completed := []GradeEntry{entry("Mathematics")}
	r := NewStudentRecord("A", completed, nil, nil)

	completed[0] = entry("History")
	assert.Equal(t, "Mathematics", r.Completed()[0].Subject())

	got := r.Completed()
	got[0] = entry("Art")
	assert.Equal(t, "Mathematics", r.Completed()[0].Subject())
}

func TestStudentRecord_EntriesByName(t *testing.T) {
	r := NewStudentRecord("A", []GradeEntry{entry("Mathematics")}, nil, nil)

	for _, name := range []string{"completed", "predicted", "results"} {
		_, err := r.EntriesByName(name)
		require.NoError(t, err, name)
	}

	got, err := r.EntriesByName("completed")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = r.EntriesByName("mystery")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "mystery")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("predicted")
	require.NoError(t, err)
	assert.Equal(t, KindPredicted, k)

	_, err = ParseKind("Predicted")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
