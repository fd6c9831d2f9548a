package dashboard

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/example/studydash/pkg/models"
)

// ModuleView is a module as shown on the page. Grade is nil for remaining modules.
type ModuleView struct {
	ID      string
	Name    string
	Credits int
	Grade   *float64
}

// DeadlineView is a deadline with its position in the date-sorted list
type DeadlineView struct {
	Position int
	Type     string
	Module   string
	Date     string
}

// View is a rendering-agnostic picture of the dashboard
type View struct {
	StudentName      string
	GPA              float64
	TargetGPA        float64
	EndDate          string
	AvgModuleDays    int
	TargetModuleDays int
	CompletedCount   int
	TotalCount       int
	Progress         float64 // percent, one decimal
	Completed        []ModuleView
	Remaining        []ModuleView
	Deadlines        []DeadlineView
}

// RenderModel builds the view from the current in-memory state
func (d *Dashboard) RenderModel() View {
	completed := d.CompletedModules()
	total := d.student.Course.Modules

	v := View{
		StudentName:      d.student.Name,
		GPA:              d.CurrentGPA(),
		TargetGPA:        d.TargetGPA(),
		EndDate:          d.TargetEndDate(),
		AvgModuleDays:    d.AverageModuleTime(),
		TargetModuleDays: d.TargetModuleDays(),
		CompletedCount:   len(completed),
		TotalCount:       len(total),
	}
	if v.TotalCount > 0 {
		v.Progress = math.Round(float64(v.CompletedCount)/float64(v.TotalCount)*1000) / 10
	}

	done := make(map[string]bool, len(completed))
	for _, m := range completed {
		done[m.ID] = true
	}
	for _, exam := range d.exams {
		if exam.IsPassed() {
			v.Completed = append(v.Completed, ModuleView{
				ID:      exam.Module.ID,
				Name:    exam.Module.Name,
				Credits: exam.Module.Credits,
				Grade:   exam.Grade,
			})
		}
	}
	for _, m := range total {
		if !done[m.ID] {
			v.Remaining = append(v.Remaining, ModuleView{ID: m.ID, Name: m.Name, Credits: m.Credits})
		}
	}

	for i, dl := range sortedByDate(d.deadlines.List()) {
		v.Deadlines = append(v.Deadlines, DeadlineView{
			Position: i,
			Type:     dl.Type,
			Module:   dl.Module,
			Date:     dl.Date,
		})
	}
	return v
}

func sortedByDate(list []models.Deadline) []models.Deadline {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list
}

// WriteSummary prints the dashboard as plain text
func (d *Dashboard) WriteSummary(w io.Writer) error {
	v := d.RenderModel()
	rule := strings.Repeat("=", 50)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "Dashboard for %s\n", v.StudentName)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Current GPA: %s\n", FormatNumber(v.GPA))
	fmt.Fprintf(&b, "Target GPA: %s\n", FormatNumber(v.TargetGPA))
	fmt.Fprintf(&b, "Target End Date: %s\n", v.EndDate)
	fmt.Fprintf(&b, "Average Module Completion: %d days\n", v.AvgModuleDays)
	fmt.Fprintf(&b, "Target Module Completion: %d days\n", v.TargetModuleDays)
	fmt.Fprintf(&b, "\nModule Progress: %d/%d completed\n", v.CompletedCount, v.TotalCount)
	b.WriteString("Completed Modules:\n")
	for _, m := range v.Completed {
		fmt.Fprintf(&b, "  ✓ %s (%d credits)\n", m.Name, m.Credits)
	}
	b.WriteString("\nRemaining Modules:\n")
	for _, m := range v.Remaining {
		fmt.Fprintf(&b, "  ○ %s (%d credits)\n", m.Name, m.Credits)
	}
	b.WriteString("\nUpcoming Deadlines:\n")
	for _, dl := range v.Deadlines {
		fmt.Fprintf(&b, "  %s - %s: %s\n", dl.Date, dl.Type, dl.Module)
	}
	fmt.Fprintf(&b, "%s\n\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatNumber renders a grade or GPA the way it is shown to the student:
// shortest form, but always with a decimal point (3 -> "3.0", 2.14 -> "2.14")
func FormatNumber(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
