package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/pkg/models"
)

const studentID = "IU123456789"

var fixedNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), TypeSQLite, path)
	require.NoError(t, err)
	s.SetClock(func() time.Time { return fixedNow })
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestStore(t *testing.T) *Store {
	return openTestStore(t, filepath.Join(t.TempDir(), "data", "test.db"))
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestOpenUncreatableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Open(context.Background(), TypeSQLite, filepath.Join(blocker, "data", "dash.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
}

func TestSnapshotUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetSnapshot(ctx, studentID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	data := models.DashboardData{
		GPA:              2.14,
		TargetGPA:        2.5,
		TargetEndDate:    "2027-04-16",
		AvgModuleTime:    45,
		TargetModuleTime: 60,
	}
	require.NoError(t, s.UpsertSnapshot(ctx, studentID, data))

	got, err := s.GetSnapshot(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, studentID, got.StudentID)
	assert.Equal(t, 2.14, got.GPA)
	assert.Equal(t, 2.5, got.TargetGPA)
	assert.Equal(t, "2027-04-16", got.TargetEndDate)
	assert.Equal(t, 45, got.AvgModuleTime)
	assert.Equal(t, 60, got.TargetModuleTime)
	assert.Equal(t, fixedNow.Format(time.RFC3339), got.LastUpdated)

	// Second save replaces the row wholesale
	data.GPA = 1.9
	data.TargetEndDate = "2028-01-01"
	require.NoError(t, s.UpsertSnapshot(ctx, studentID, data))

	got, err = s.GetSnapshot(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 1.9, got.GPA)
	assert.Equal(t, "2028-01-01", got.TargetEndDate)

	var rows int
	require.NoError(t, s.db.Get(&rows, "SELECT COUNT(*) FROM dashboard_data"))
	assert.Equal(t, 1, rows)
}

func TestSnapshotPartialUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// No row yet: silently ignored
	require.NoError(t, s.UpdateSnapshotTargetGPA(ctx, studentID, 1.5))
	require.NoError(t, s.UpdateSnapshotTargetEndDate(ctx, studentID, "2030-01-01"))
	_, err := s.GetSnapshot(ctx, studentID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	require.NoError(t, s.UpsertSnapshot(ctx, studentID, models.DashboardData{
		GPA:           2.0,
		TargetGPA:     2.5,
		TargetEndDate: "2027-01-01",
	}))

	later := fixedNow.Add(time.Hour)
	s.SetClock(func() time.Time { return later })

	require.NoError(t, s.UpdateSnapshotTargetGPA(ctx, studentID, 1.5))
	got, err := s.GetSnapshot(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.TargetGPA)
	assert.Equal(t, 2.0, got.GPA)
	assert.Equal(t, "2027-01-01", got.TargetEndDate)
	assert.Equal(t, later.Format(time.RFC3339), got.LastUpdated)

	require.NoError(t, s.UpdateSnapshotTargetEndDate(ctx, studentID, "2030-01-01"))
	got, err = s.GetSnapshot(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", got.TargetEndDate)
	assert.Equal(t, 1.5, got.TargetGPA)
}

func TestDeadlines(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id1, err := s.InsertDeadline(ctx, studentID, "Project", "Cloud Computing", "2024-07-01")
	require.NoError(t, err)
	id2, err := s.InsertDeadline(ctx, studentID, "Exam", "Software Engineering", "2024-06-15")
	require.NoError(t, err)
	_, err = s.InsertDeadline(ctx, "someone-else", "Exam", "Other", "2024-01-01")
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	list, err := s.ListDeadlines(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id2, list[0].ID)
	assert.Equal(t, "Exam", list[0].Type)
	assert.Equal(t, "Software Engineering", list[0].Module)
	assert.Equal(t, "2024-06-15", list[0].Date)
	assert.Equal(t, id1, list[1].ID)

	require.NoError(t, s.DeleteDeadline(ctx, id2))
	require.NoError(t, s.DeleteDeadline(ctx, 9999))

	list, err = s.ListDeadlines(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id1, list[0].ID)
}

func TestListDeadlinesEmpty(t *testing.T) {
	s := newTestStore(t)

	list, err := s.ListDeadlines(context.Background(), studentID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestCompletedModulesUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.UpsertCompletedModule(ctx, studentID, "CS101", 2.0, "2024-01-01T00:00:00Z"))
	require.NoError(t, s.UpsertCompletedModule(ctx, studentID, "CS102", 2.3, "2024-01-01T00:00:00Z"))
	require.NoError(t, s.UpsertCompletedModule(ctx, studentID, "CS101", 1.7, "2024-02-01T00:00:00Z"))

	rows, err := s.ListCompletedModules(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CS101", rows[0].ModuleID)
	assert.Equal(t, 1.7, rows[0].Grade)
	assert.Equal(t, "2024-02-01T00:00:00Z", rows[0].CompletionDate)
	assert.Equal(t, "CS102", rows[1].ModuleID)
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(ctx, TypeSQLite, path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertSnapshot(ctx, studentID, models.DashboardData{TargetGPA: 2.5}))
	require.NoError(t, s.UpdateSnapshotTargetGPA(ctx, studentID, 3.0))
	_, err = s.InsertDeadline(ctx, studentID, "Exam", "Databases", "2024-06-01")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := openTestStore(t, path)
	got, err := reopened.GetSnapshot(ctx, studentID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.TargetGPA)

	list, err := reopened.ListDeadlines(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClosedStoreReturnsStorageError(t *testing.T) {
	s, err := Open(context.Background(), TypeSQLite, filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.ListDeadlines(context.Background(), studentID)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
	assert.True(t, errors.Is(s.Ping(context.Background()), apperrors.ErrStorage))
}
