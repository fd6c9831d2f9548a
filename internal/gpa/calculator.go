package gpa

import (
	"context"
	"math"

	"github.com/example/studydash/pkg/models"
)

// TargetStore persists the target GPA
type TargetStore interface {
	UpdateSnapshotTargetGPA(ctx context.Context, studentID string, value float64) error
}

// Calculator computes the grade point average and holds the target GPA
type Calculator struct {
	target    float64
	store     TargetStore
	studentID string
}

// NewCalculator creates a calculator with an initial target
func NewCalculator(target float64, store TargetStore, studentID string) *Calculator {
	return &Calculator{
		target:    target,
		store:     store,
		studentID: studentID,
	}
}

// Calculate returns the mean grade of all graded exams rounded to two
// decimals, or 0 when nothing is graded yet
func (c *Calculator) Calculate(exams []*models.Exam) float64 {
	var sum float64
	var graded int
	for _, exam := range exams {
		if exam.IsGraded() {
			sum += *exam.Grade
			graded++
		}
	}
	if graded == 0 {
		return 0.0
	}
	return math.Round(sum/float64(graded)*100) / 100
}

// Target returns the current target GPA
func (c *Calculator) Target() float64 {
	return c.target
}

// SetTarget changes the in-memory target without persisting it
func (c *Calculator) SetTarget(target float64) {
	c.target = target
}

// UpdateTarget changes the target and persists it
func (c *Calculator) UpdateTarget(ctx context.Context, target float64) error {
	c.target = target
	return c.store.UpdateSnapshotTargetGPA(ctx, c.studentID, target)
}
