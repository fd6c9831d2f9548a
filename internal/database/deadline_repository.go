package database

import (
	"context"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/pkg/models"
)

// InsertDeadline appends a deadline row and returns its id
func (s *Store) InsertDeadline(ctx context.Context, studentID, deadlineType, moduleName, date string) (int64, error) {
	if s.isPostgres() {
		var id int64
		err := s.db.QueryRowxContext(ctx, `
			INSERT INTO deadlines (student_id, deadline_type, module_name, deadline_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, studentID, deadlineType, moduleName, date).Scan(&id)
		if err != nil {
			return 0, apperrors.Storage("insert deadline", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO deadlines (student_id, deadline_type, module_name, deadline_date)
		VALUES (?, ?, ?, ?)
	`, studentID, deadlineType, moduleName, date)
	if err != nil {
		return 0, apperrors.Storage("insert deadline", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Storage("insert deadline", err)
	}
	return id, nil
}

// DeleteDeadline removes a deadline row; a missing id is not an error
func (s *Store) DeleteDeadline(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM deadlines WHERE id = ?`), id)
	return apperrors.Storage("delete deadline", err)
}

// ListDeadlines returns the deadlines of a student ordered by date.
// ISO dates sort chronologically as strings; equal dates keep insertion order.
func (s *Store) ListDeadlines(ctx context.Context, studentID string) ([]models.Deadline, error) {
	query := s.db.Rebind(`
		SELECT id, student_id, deadline_type, module_name, deadline_date
		FROM deadlines
		WHERE student_id = ?
		ORDER BY deadline_date, id
	`)

	deadlines := []models.Deadline{}
	if err := s.db.SelectContext(ctx, &deadlines, query, studentID); err != nil {
		return nil, apperrors.Storage("list deadlines", err)
	}
	return deadlines, nil
}
