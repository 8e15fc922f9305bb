package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func TestMatchDays_ExpandsWeeklySundays(t *testing.T) {
	cfg := testConfig()

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	dates, err := MatchDays(cfg, from, until)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-09-07", "2025-09-14", "2025-09-21", "2025-09-28"}, dates)
}

func TestMatchDays_RequiresConfiguredRule(t *testing.T) {
	cfg := testConfig()
	cfg.Season.RRule = ""

	_, err := MatchDays(cfg, time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no season rrule configured")
}

func TestOffCalendarDates_FlagsNonMatchDays(t *testing.T) {
	cfg := testConfig()

	fixtures := []model.Fixture{
		{ID: "A_2025-09-07", Team: "A", Date: "2025-09-07"},
		// A Wednesday
		{ID: "B_2025-09-10", Team: "B", Date: "2025-09-10"},
		{ID: "C_2025-09-14", Team: "C", Date: "2025-09-14"},
		{ID: "D_2025-09-10", Team: "D", Date: "2025-09-10"},
	}

	offCalendar, err := OffCalendarDates(cfg, fixtures)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-09-10"}, offCalendar, "distinct dates, fixture order")
}

func TestOffCalendarDates_EmptyWithoutRuleOrFixtures(t *testing.T) {
	cfg := testConfig()
	cfg.Season.RRule = ""
	dates, err := OffCalendarDates(cfg, []model.Fixture{{ID: "A_2025-09-10", Date: "2025-09-10"}})
	require.NoError(t, err)
	assert.Empty(t, dates)

	cfg = testConfig()
	dates, err = OffCalendarDates(cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
