package sheetsclient

import (
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"
)

// ScheduleGridRow is one pitch's entries across the day's kickoff times
type ScheduleGridRow struct {
	Pitch string
	// Entries holds one cell per kickoff time ("" for an empty slot)
	Entries []string
}

// ScheduleGrid is one match day's schedule, one tab in the workbook
type ScheduleGrid struct {
	// Date in "2006-01-02" form; the tab title is derived from it
	Date     string
	Kickoffs []string
	Rows     []ScheduleGridRow
}

// PublishSchedule writes one tab per match day into the spreadsheet.
// Existing tabs with the same title are overwritten in place; missing tabs
// are created.
func (c *Client) PublishSchedule(spreadsheetID string, grids []ScheduleGrid) error {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	existing := make(map[string]bool)
	for _, sheet := range spreadsheet.Sheets {
		existing[sheet.Properties.Title] = true
	}

	for _, grid := range grids {
		tabTitle, err := generateTabTitle(grid.Date)
		if err != nil {
			return fmt.Errorf("failed to generate tab title: %w", err)
		}

		if !existing[tabTitle] {
			if err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
				return err
			}
			existing[tabTitle] = true
		}

		values := buildGridValues(grid)
		valueRange := &sheets.ValueRange{Values: values}
		_, err = c.service.Spreadsheets.Values.
			Update(spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), valueRange).
			ValueInputOption("RAW").
			Do()
		if err != nil {
			return fmt.Errorf("failed to write tab %q: %w", tabTitle, err)
		}
	}

	return nil
}

// generateTabTitle creates a tab title like "Sun Aug 24 2025"
func generateTabTitle(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid match date: %w", err)
	}
	return d.Format("Mon Jan 02 2006"), nil
}

// buildGridValues renders the grid as sheet rows: a header of kickoff times
// then one row per pitch
func buildGridValues(grid ScheduleGrid) [][]interface{} {
	header := []interface{}{"Pitch"}
	for _, kickoff := range grid.Kickoffs {
		header = append(header, kickoff)
	}

	values := [][]interface{}{header}
	for _, row := range grid.Rows {
		sheetRow := []interface{}{row.Pitch}
		for i := range grid.Kickoffs {
			entry := ""
			if i < len(row.Entries) {
				entry = row.Entries[i]
			}
			sheetRow = append(sheetRow, entry)
		}
		values = append(values, sheetRow)
	}

	return values
}
