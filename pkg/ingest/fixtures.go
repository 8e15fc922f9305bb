// Package ingest reads raw fixture records from the club's exported CSV and
// turns them into validated fixtures for the allocation engine.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// Record is one raw row from the fixture CSV
type Record struct {
	// Row is the 1-based data row number, for error reporting
	Row    int
	Team   string
	Date   string
	Time   string
	Prefix string
}

// ValidationError describes one offending record. Validation is fatal but
// every offending record is reported, not just the first.
type ValidationError struct {
	Row     int
	Team    string
	Problem string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d (%s): %s", e.Row, e.Team, e.Problem)
}

// csv column headers in the club's fixture export
const (
	colDate   = "match_date"
	colTime   = "match_time"
	colTeam   = "home_team_clean"
	colPrefix = "prefix"
)

// ReadRecordsFromFile reads fixture records from a CSV file
func ReadRecordsFromFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures file: %w", err)
	}
	defer f.Close()

	return ReadRecords(f)
}

// ReadRecords reads fixture records from CSV data. The first row must be a
// header containing match_date, match_time and home_team_clean columns; the
// prefix column (competition name) is optional.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDate, colTime, colTeam} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("fixtures csv is missing column %q", required)
		}
	}

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		row++
		rec := Record{
			Row:  row,
			Team: strings.TrimSpace(fields[cols[colTeam]]),
			Date: strings.TrimSpace(fields[cols[colDate]]),
			Time: strings.TrimSpace(fields[cols[colTime]]),
		}
		if i, ok := cols[colPrefix]; ok && i < len(fields) {
			rec.Prefix = strings.TrimSpace(fields[i])
		}
		records = append(records, rec)
	}

	return records, nil
}

// BuildFixtures validates records and builds fixtures from them.
//
// Validation failures (unknown team, missing or malformed date/time) are
// collected across all records; a non-empty slice means the batch must be
// aborted before any model is built.
//
// A fixture is keyed by (team, date): duplicate records for the same key
// collapse, last record winning, matching the club's export behavior.
func BuildFixtures(records []Record, cfg *config.Config) ([]model.Fixture, []ValidationError) {
	var errs []ValidationError

	for _, rec := range records {
		if _, ok := cfg.Teams[rec.Team]; !ok {
			errs = append(errs, ValidationError{Row: rec.Row, Team: rec.Team, Problem: fmt.Sprintf("unknown team %q", rec.Team)})
		}
		if rec.Date == "" {
			errs = append(errs, ValidationError{Row: rec.Row, Team: rec.Team, Problem: "missing date"})
		} else if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
			errs = append(errs, ValidationError{Row: rec.Row, Team: rec.Team, Problem: fmt.Sprintf("malformed date %q", rec.Date)})
		}
		if rec.Time == "" {
			errs = append(errs, ValidationError{Row: rec.Row, Team: rec.Team, Problem: "missing time"})
		} else if _, err := NormalizeTime(rec.Time); err != nil {
			errs = append(errs, ValidationError{Row: rec.Row, Team: rec.Team, Problem: fmt.Sprintf("malformed time %q", rec.Time)})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	byID := make(map[string]int)
	var fixtures []model.Fixture

	for _, rec := range records {
		age := cfg.Teams[rec.Team]
		kickoff, _ := NormalizeTime(rec.Time)
		isCup := IsCupFixture(rec.Prefix)

		preferredTime := kickoff
		if isCup {
			preferredTime = cfg.Venue.Kickoffs.Early
		}

		preferredPitch := ""
		for _, adult := range cfg.AgeGroups.Adult {
			if age == adult {
				preferredPitch = cfg.Venue.SeniorPitch
				break
			}
		}

		fixture := model.Fixture{
			ID:             model.FixtureID(rec.Team, rec.Date),
			Team:           rec.Team,
			AgeGroup:       age,
			Format:         model.Format(cfg.AgeGroups.Formats[age]),
			Date:           rec.Date,
			OriginalTime:   kickoff,
			PreferredTime:  preferredTime,
			Priority:       cfg.AgeGroups.Priority[age],
			SeniorPriority: cfg.SeniorTeamPriority[rec.Team],
			IsCup:          isCup,
			PreferredPitch: preferredPitch,
		}

		if i, ok := byID[fixture.ID]; ok {
			fixtures[i] = fixture
			continue
		}
		byID[fixture.ID] = len(fixtures)
		fixtures = append(fixtures, fixture)
	}

	return fixtures, nil
}

// IsCupFixture reports whether the competition prefix marks a cup match
func IsCupFixture(prefix string) bool {
	return strings.Contains(strings.ToLower(prefix), "cup")
}

// NormalizeTime converts a kickoff value to canonical HH:MM form.
// Accepts "9:30", "09:30" and "09:30:00".
func NormalizeTime(value string) (string, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("invalid time %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", value)
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
