package progress

import (
	"context"
	"time"

	"github.com/example/studydash/pkg/models"
)

const (
	// AverageModuleDays is reported as the average time per module until
	// module start dates are tracked
	AverageModuleDays = 45
	// DaysPerSemester is the length of a semester used for the end date projection
	DaysPerSemester = 180
	// DateLayout formats projected end dates
	DateLayout = "2006-01-02"
)

// Store persists progress data
type Store interface {
	UpdateSnapshotTargetEndDate(ctx context.Context, studentID, value string) error
	UpsertCompletedModule(ctx context.Context, studentID, moduleID string, grade float64, completionDate string) error
}

// Service tracks module completion and projects the end of studies
type Service struct {
	student          *models.Student
	store            Store
	targetModuleDays int
	targetEndDate    string
	now              func() time.Time
}

// NewService creates a progress service for a student
func NewService(student *models.Student, targetModuleDays int, store Store) *Service {
	return &Service{
		student:          student,
		store:            store,
		targetModuleDays: targetModuleDays,
		now:              time.Now,
	}
}

// SetClock replaces the time source used for projections and completion dates
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// CompletedModules returns the module of every passed exam in exam order.
// A module passed twice appears twice.
func (s *Service) CompletedModules(exams []*models.Exam) []*models.Module {
	var completed []*models.Module
	for _, exam := range exams {
		if exam.IsPassed() {
			completed = append(completed, exam.Module)
		}
	}
	return completed
}

// AverageModuleTime returns the average number of days spent per module
func (s *Service) AverageModuleTime() int {
	return AverageModuleDays
}

// TargetModuleDays returns the planned number of days per module
func (s *Service) TargetModuleDays() int {
	return s.targetModuleDays
}

// TargetEndDate returns the manually set end date, or today plus the
// standard duration of the course
func (s *Service) TargetEndDate() string {
	if s.targetEndDate != "" {
		return s.targetEndDate
	}
	days := s.student.Course.DurationSemesters * DaysPerSemester
	return s.now().AddDate(0, 0, days).Format(DateLayout)
}

// SetTargetEndDate stores a manual end date override and persists it.
// The value is kept verbatim.
func (s *Service) SetTargetEndDate(ctx context.Context, date string) error {
	s.targetEndDate = date
	return s.store.UpdateSnapshotTargetEndDate(ctx, s.student.ID, date)
}

// PersistCompletions upserts a completed-module row for every passed exam,
// stamped with the current time
func (s *Service) PersistCompletions(ctx context.Context, studentID string, exams []*models.Exam) error {
	for _, exam := range exams {
		if !exam.IsPassed() {
			continue
		}
		completedAt := s.now().Format(time.RFC3339)
		if err := s.store.UpsertCompletedModule(ctx, studentID, exam.Module.ID, *exam.Grade, completedAt); err != nil {
			return err
		}
	}
	return nil
}
