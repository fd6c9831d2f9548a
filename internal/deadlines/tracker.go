package deadlines

import (
	"context"

	"github.com/example/studydash/pkg/models"
)

// Store persists deadline rows
type Store interface {
	InsertDeadline(ctx context.Context, studentID, deadlineType, moduleName, date string) (int64, error)
	DeleteDeadline(ctx context.Context, id int64) error
	ListDeadlines(ctx context.Context, studentID string) ([]models.Deadline, error)
}

// Tracker keeps the deadlines of one student in memory, mirrored to the store
type Tracker struct {
	studentID string
	store     Store
	deadlines []models.Deadline
}

// NewTracker creates an empty tracker; call Reload to fill it from the store
func NewTracker(studentID string, store Store) *Tracker {
	return &Tracker{
		studentID: studentID,
		store:     store,
	}
}

// List returns a copy of the in-memory deadlines in their current order
func (t *Tracker) List() []models.Deadline {
	out := make([]models.Deadline, len(t.deadlines))
	copy(out, t.deadlines)
	return out
}

// Len returns the number of deadlines held in memory
func (t *Tracker) Len() int {
	return len(t.deadlines)
}

// Add appends a deadline in memory and persists it.
// Type, module and date are free text and not validated.
func (t *Tracker) Add(ctx context.Context, deadlineType, moduleName, date string) error {
	t.deadlines = append(t.deadlines, models.Deadline{
		StudentID: t.studentID,
		Type:      deadlineType,
		Module:    moduleName,
		Date:      date,
	})
	id, err := t.store.InsertDeadline(ctx, t.studentID, deadlineType, moduleName, date)
	if err != nil {
		return err
	}
	t.deadlines[len(t.deadlines)-1].ID = id
	return nil
}

// Delete removes the deadline at index. An index outside the list is a no-op.
//
// The persisted row removed is the one at the same position in the store's
// date-ordered listing, not the row backing the in-memory element. The two
// agree only while the in-memory list mirrors the store order, which holds
// after Reload but not after adding deadlines out of date order.
func (t *Tracker) Delete(ctx context.Context, index int) error {
	if index < 0 || index >= len(t.deadlines) {
		return nil
	}

	rows, err := t.store.ListDeadlines(ctx, t.studentID)
	if err != nil {
		return err
	}
	if index < len(rows) {
		if err := t.store.DeleteDeadline(ctx, rows[index].ID); err != nil {
			return err
		}
	}

	t.deadlines = append(t.deadlines[:index], t.deadlines[index+1:]...)
	return nil
}

// Reload replaces the in-memory list with the persisted deadlines in store order
func (t *Tracker) Reload(ctx context.Context) error {
	rows, err := t.store.ListDeadlines(ctx, t.studentID)
	if err != nil {
		return err
	}
	t.deadlines = rows
	return nil
}
