// Package export writes a solved schedule to the formats the club
// distributes: a flat CSV and a static HTML grid.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// WriteCSV writes allocation records as CSV
func WriteCSV(w io.Writer, allocations []model.Allocation) error {
	writer := csv.NewWriter(w)

	header := []string{
		"fixture_id", "team", "date", "time", "pitch", "age_group",
		"priority", "matched_pref_time", "matched_pref_pitch", "is_cup",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, a := range allocations {
		row := []string{
			a.FixtureID,
			a.Team,
			a.Date,
			a.Time,
			a.Pitch,
			a.AgeGroup,
			strconv.Itoa(a.Priority),
			strconv.FormatBool(a.MatchedPreferredTime),
			strconv.FormatBool(a.MatchedPreferredPitch),
			strconv.FormatBool(a.IsCup),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
