package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	allocations := []model.Allocation{
		{
			FixtureID: "U14 Blues_2025-09-07", Team: "U14 Blues", Date: "2025-09-07",
			Time: "09:30", Pitch: "P2", AgeGroup: "U14", Priority: 6,
			MatchedPreferredTime: true, IsCup: true,
		},
		{
			FixtureID: "First XI_2025-09-07", Team: "First XI", Date: "2025-09-07",
			Time: "14:00", Pitch: "P6", AgeGroup: "Seniors", Priority: 12,
			MatchedPreferredTime: true, MatchedPreferredPitch: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, allocations))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"fixture_id", "team", "date", "time", "pitch", "age_group",
		"priority", "matched_pref_time", "matched_pref_pitch", "is_cup",
	}, rows[0])
	assert.Equal(t, []string{
		"U14 Blues_2025-09-07", "U14 Blues", "2025-09-07", "09:30", "P2", "U14",
		"6", "true", "false", "true",
	}, rows[1])
	assert.Equal(t, "P6", rows[2][4])
}

func TestWriteCSV_EmptyAllocationsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
