// Package dashboard ties the GPA calculator, deadline tracker and progress
// service of one student together behind a single API.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/internal/deadlines"
	"github.com/example/studydash/internal/gpa"
	"github.com/example/studydash/internal/progress"
	"github.com/example/studydash/pkg/models"
)

// Defaults used when no targets are configured
const (
	DefaultTargetGPA        = 3.0
	DefaultTargetModuleDays = 60
)

// Store is everything the dashboard and its engines persist
type Store interface {
	gpa.TargetStore
	deadlines.Store
	progress.Store
	UpsertSnapshot(ctx context.Context, studentID string, data models.DashboardData) error
	GetSnapshot(ctx context.Context, studentID string) (*models.DashboardData, error)
}

// Dashboard is the single entry point used by the HTTP layer and the scheduler.
//
// The embedded mutex is not taken by any method; callers hold it for the
// whole of a request or job so that operations never interleave.
type Dashboard struct {
	sync.Mutex

	student   *models.Student
	exams     []*models.Exam
	store     Store
	gpa       *gpa.Calculator
	deadlines *deadlines.Tracker
	progress  *progress.Service
}

// New creates a dashboard for a student
func New(student *models.Student, store Store, targetGPA float64, targetModuleDays int) *Dashboard {
	return &Dashboard{
		student:   student,
		store:     store,
		gpa:       gpa.NewCalculator(targetGPA, store, student.ID),
		deadlines: deadlines.NewTracker(student.ID, store),
		progress:  progress.NewService(student, targetModuleDays, store),
	}
}

// SetClock replaces the time source of the progress service
func (d *Dashboard) SetClock(now func() time.Time) {
	d.progress.SetClock(now)
}

// Student returns the tracked student
func (d *Dashboard) Student() *models.Student {
	return d.student
}

// AddExam appends an exam
func (d *Dashboard) AddExam(exam *models.Exam) {
	d.exams = append(d.exams, exam)
}

// Exams returns the exams in insertion order
func (d *Dashboard) Exams() []*models.Exam {
	return d.exams
}

// AddDeadline records a new deadline in memory and in the store
func (d *Dashboard) AddDeadline(ctx context.Context, deadlineType, moduleName, date string) error {
	return d.deadlines.Add(ctx, deadlineType, moduleName, date)
}

// DeleteDeadline removes the deadline at a position; out of range is a no-op
func (d *Dashboard) DeleteDeadline(ctx context.Context, index int) error {
	return d.deadlines.Delete(ctx, index)
}

// ReloadDeadlines replaces the in-memory deadlines with the stored ones
func (d *Dashboard) ReloadDeadlines(ctx context.Context) error {
	return d.deadlines.Reload(ctx)
}

// Deadlines returns the in-memory deadlines in tracker order
func (d *Dashboard) Deadlines() []models.Deadline {
	return d.deadlines.List()
}

// UpdateTargetGPA sets and persists the target GPA
func (d *Dashboard) UpdateTargetGPA(ctx context.Context, value float64) error {
	return d.gpa.UpdateTarget(ctx, value)
}

// UpdateTargetEndDate sets and persists a manual target end date
func (d *Dashboard) UpdateTargetEndDate(ctx context.Context, date string) error {
	return d.progress.SetTargetEndDate(ctx, date)
}

// CurrentGPA returns the mean grade of all graded exams
func (d *Dashboard) CurrentGPA() float64 {
	return d.gpa.Calculate(d.exams)
}

// TargetGPA returns the target GPA
func (d *Dashboard) TargetGPA() float64 {
	return d.gpa.Target()
}

// AverageModuleTime returns the average days spent per module
func (d *Dashboard) AverageModuleTime() int {
	return d.progress.AverageModuleTime()
}

// TargetModuleDays returns the planned days per module
func (d *Dashboard) TargetModuleDays() int {
	return d.progress.TargetModuleDays()
}

// TargetEndDate returns the override or the projected end date
func (d *Dashboard) TargetEndDate() string {
	return d.progress.TargetEndDate()
}

// CompletedModules returns the modules of all passed exams
func (d *Dashboard) CompletedModules() []*models.Module {
	return d.progress.CompletedModules(d.exams)
}

// SaveAll overwrites the snapshot row with freshly computed values and
// records every passed exam as a completed module. The two writes are not
// atomic together.
func (d *Dashboard) SaveAll(ctx context.Context) error {
	data := models.DashboardData{
		StudentID:        d.student.ID,
		GPA:              d.CurrentGPA(),
		TargetGPA:        d.TargetGPA(),
		TargetEndDate:    d.TargetEndDate(),
		AvgModuleTime:    d.AverageModuleTime(),
		TargetModuleTime: d.TargetModuleDays(),
	}
	if err := d.store.UpsertSnapshot(ctx, d.student.ID, data); err != nil {
		return err
	}
	return d.progress.PersistCompletions(ctx, d.student.ID, d.exams)
}

// Restore applies the persisted target GPA, if a snapshot exists.
// It reports whether a snapshot was found.
func (d *Dashboard) Restore(ctx context.Context) (bool, error) {
	data, err := d.store.GetSnapshot(ctx, d.student.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	d.gpa.SetTarget(data.TargetGPA)
	return true, nil
}
