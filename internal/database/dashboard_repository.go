package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/pkg/models"
)

// UpsertSnapshot replaces the snapshot row of a student, stamping
// last_updated with the current time
func (s *Store) UpsertSnapshot(ctx context.Context, studentID string, data models.DashboardData) error {
	query := s.db.Rebind(`
		INSERT INTO dashboard_data (
			student_id, gpa, target_gpa, target_end_date,
			avg_module_time, target_module_time, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (student_id) DO UPDATE SET
			gpa = excluded.gpa,
			target_gpa = excluded.target_gpa,
			target_end_date = excluded.target_end_date,
			avg_module_time = excluded.avg_module_time,
			target_module_time = excluded.target_module_time,
			last_updated = excluded.last_updated
	`)
	_, err := s.db.ExecContext(ctx, query,
		studentID,
		data.GPA,
		data.TargetGPA,
		data.TargetEndDate,
		data.AvgModuleTime,
		data.TargetModuleTime,
		s.timestamp(),
	)
	return apperrors.Storage("upsert snapshot", err)
}

// UpdateSnapshotTargetGPA changes only the target GPA. Nothing happens when
// the student has no snapshot row yet.
func (s *Store) UpdateSnapshotTargetGPA(ctx context.Context, studentID string, value float64) error {
	query := s.db.Rebind(`UPDATE dashboard_data SET target_gpa = ?, last_updated = ? WHERE student_id = ?`)
	_, err := s.db.ExecContext(ctx, query, value, s.timestamp(), studentID)
	return apperrors.Storage("update target gpa", err)
}

// UpdateSnapshotTargetEndDate changes only the target end date. Nothing
// happens when the student has no snapshot row yet.
func (s *Store) UpdateSnapshotTargetEndDate(ctx context.Context, studentID, value string) error {
	query := s.db.Rebind(`UPDATE dashboard_data SET target_end_date = ?, last_updated = ? WHERE student_id = ?`)
	_, err := s.db.ExecContext(ctx, query, value, s.timestamp(), studentID)
	return apperrors.Storage("update target end date", err)
}

// GetSnapshot returns the snapshot row of a student
func (s *Store) GetSnapshot(ctx context.Context, studentID string) (*models.DashboardData, error) {
	query := s.db.Rebind(`
		SELECT student_id, gpa, target_gpa, target_end_date,
		       avg_module_time, target_module_time, last_updated
		FROM dashboard_data
		WHERE student_id = ?
	`)

	var data models.DashboardData
	err := s.db.GetContext(ctx, &data, query, studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("get snapshot")
	}
	if err != nil {
		return nil, apperrors.Storage("get snapshot", err)
	}
	return &data, nil
}
