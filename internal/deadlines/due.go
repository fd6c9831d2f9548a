package deadlines

import (
	"sort"
	"time"

	"github.com/example/studydash/pkg/models"
)

// DueWithin returns the deadlines dated from today up to days ahead, sorted
// by date. Dates that are not YYYY-MM-DD are skipped.
func DueWithin(list []models.Deadline, today time.Time, days int) []models.Deadline {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	var due []models.Deadline
	for _, d := range list {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		if !date.Before(start) && !date.After(end) {
			due = append(due, d)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].Date < due[j].Date })
	return due
}
