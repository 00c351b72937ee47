package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gradecli/pkg/contracts/domain"
)

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", formatCell(domain.Absent()))
	assert.Equal(t, "A*", formatCell(domain.Text("A*")))
}

func TestFormatYesNo(t *testing.T) {
	assert.Equal(t, "Yes", formatYesNo(true))
	assert.Equal(t, "No", formatYesNo(false))
}

func TestFirstQualification(t *testing.T) {
	module := domain.NewGradeEntry(domain.Absent(), " Maths ", domain.Absent(), true, domain.Absent())
	aLevel := domain.NewGradeEntry(domain.Text("A-Level"), "Physics", domain.Text("A"), true, domain.Text("2024"))

	assert.Equal(t, "A-Level", firstQualification([]domain.GradeEntry{module, aLevel}))
	assert.Equal(t, "", firstQualification([]domain.GradeEntry{module}))
	assert.Equal(t, "", firstQualification(nil))
}
