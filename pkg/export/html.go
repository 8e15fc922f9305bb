package export

import (
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// ageColors maps age groups to the cell background used in the grid.
// Unknown groups fall back to white.
var ageColors = map[string]string{
	"U7": "#FFE5E5", "U8": "#FFE5E5",
	"U9": "#FFF3E5", "U10": "#FFF3E5",
	"U11": "#FFFFE5", "U12": "#FFFFE5",
	"U13": "#E5F5FF", "U13G": "#E5F5FF", "U14": "#E5F5FF",
	"U15": "#E5FFE5", "U16": "#E5FFE5",
	"U17": "#F5E5FF", "U18": "#F5E5FF",
	"Seniors": "#FFD700", "Womens": "#FFD700",
}

// HTMLScheduleInput contains everything needed to render the schedule grid
type HTMLScheduleInput struct {
	Title       string
	Allocations []model.Allocation
	Catalog     []model.Pitch

	// Kickoffs is the ordered list of kickoff times shown as columns
	Kickoffs []string
}

type htmlCell struct {
	Team     string
	AgeGroup string
	Color    string
}

type htmlRow struct {
	Pitch    string
	Overflow bool
	Cells    []htmlCell
}

type htmlDay struct {
	Date string
	Rows []htmlRow
}

type htmlPage struct {
	Title      string
	Total      int
	DayCount   int
	TeamCount  int
	Kickoffs   []string
	Days       []htmlDay
}

// WriteHTML renders the schedule as a static HTML page, one table per match
// day with a pitch row per catalog pitch and a column per kickoff time.
// Overflow pitches are highlighted so the reader can see last-resort usage.
func WriteHTML(w io.Writer, input HTMLScheduleInput) error {
	byDateSlot := make(map[string]map[string]model.Allocation)
	teams := make(map[string]bool)
	var dates []string

	for _, a := range input.Allocations {
		teams[a.Team] = true
		if byDateSlot[a.Date] == nil {
			byDateSlot[a.Date] = make(map[string]model.Allocation)
			dates = append(dates, a.Date)
		}
		byDateSlot[a.Date][a.Time+"|"+a.Pitch] = a
	}
	slices.Sort(dates)

	catalog := slices.Clone(input.Catalog)
	slices.SortFunc(catalog, func(a, b model.Pitch) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	page := htmlPage{
		Title:     input.Title,
		Total:     len(input.Allocations),
		DayCount:  len(dates),
		TeamCount: len(teams),
		Kickoffs:  input.Kickoffs,
	}

	for _, date := range dates {
		day := htmlDay{Date: date}
		for _, pitch := range catalog {
			row := htmlRow{Pitch: pitch.ID, Overflow: pitch.Location == model.LocationOverflow}
			for _, kickoff := range input.Kickoffs {
				cell := htmlCell{}
				if a, ok := byDateSlot[date][kickoff+"|"+pitch.ID]; ok {
					color := ageColors[a.AgeGroup]
					if color == "" {
						color = "#FFFFFF"
					}
					cell = htmlCell{Team: a.Team, AgeGroup: a.AgeGroup, Color: color}
				}
				row.Cells = append(row.Cells, cell)
			}
			day.Rows = append(day.Rows, row)
		}
		page.Days = append(page.Days, day)
	}

	if err := scheduleTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render schedule html: %w", err)
	}
	return nil
}

var scheduleTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, 'Segoe UI', Arial, sans-serif; background: #f5f5f5; padding: 20px; }
.container { max-width: 1400px; margin: 0 auto; background: white; border-radius: 12px; padding: 30px; }
h1 { margin-bottom: 10px; }
.stats { color: #666; margin-bottom: 25px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
th, td { padding: 10px; text-align: left; border: 1px solid #e0e0e0; font-size: 13px; }
th { background: #f8f9fa; }
.pitch { font-weight: 600; }
.overflow { border-left: 4px solid #10b981; background: #f0fdf4; }
.age { display: inline-block; padding: 2px 6px; border-radius: 3px; font-size: 11px; background: rgba(0,0,0,0.1); }
.empty { color: #999; text-align: center; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<p class="stats">{{.Total}} fixtures allocated across {{.DayCount}} match days ({{.TeamCount}} teams)</p>
{{range .Days}}
<h2>{{.Date}}</h2>
<table>
<thead><tr><th>Pitch</th>{{range $.Kickoffs}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td class="pitch{{if .Overflow}} overflow{{end}}">{{.Pitch}}</td>{{range .Cells}}{{if .Team}}<td style="background: {{.Color}};">{{.Team}} <span class="age">{{.AgeGroup}}</span></td>{{else}}<td><div class="empty">&mdash;</div></td>{{end}}{{end}}</tr>
{{end}}
</tbody>
</table>
{{end}}
</div>
</body>
</html>
`))
