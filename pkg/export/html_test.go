package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func TestWriteHTML_RendersScheduleGrid(t *testing.T) {
	input := HTMLScheduleInput{
		Title: "Test Schedule",
		Allocations: []model.Allocation{
			{FixtureID: "U14 Blues_2025-09-07", Team: "U14 Blues", Date: "2025-09-07", Time: "09:30", Pitch: "P2", AgeGroup: "U14"},
			{FixtureID: "First XI_2025-09-07", Team: "First XI", Date: "2025-09-07", Time: "14:00", Pitch: "P6", AgeGroup: "Seniors"},
		},
		Catalog: []model.Pitch{
			{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary},
			{ID: "P6", Format: model.FormatElevenASide, Location: model.LocationPrimary},
			{ID: "G1", Format: model.FormatElevenASide, Location: model.LocationOverflow},
		},
		Kickoffs: []string{"09:30", "11:00", "14:00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, input))
	html := buf.String()

	assert.Contains(t, html, "Test Schedule")
	assert.Contains(t, html, "2025-09-07")
	assert.Contains(t, html, "U14 Blues")
	assert.Contains(t, html, "First XI")
	assert.Contains(t, html, "2 fixtures allocated across 1 match days")

	// Overflow pitches are visually marked even when empty
	assert.Contains(t, html, "overflow")
	assert.Contains(t, html, "G1")
}

func TestWriteHTML_UnknownAgeGroupFallsBackToWhite(t *testing.T) {
	input := HTMLScheduleInput{
		Title: "Test Schedule",
		Allocations: []model.Allocation{
			{FixtureID: "X_2025-09-07", Team: "X", Date: "2025-09-07", Time: "09:30", Pitch: "P2", AgeGroup: "U99"},
		},
		Catalog: []model.Pitch{
			{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary},
		},
		Kickoffs: []string{"09:30", "11:00"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, input))
	assert.True(t, strings.Contains(buf.String(), "#FFFFFF"))
}
