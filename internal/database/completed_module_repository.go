package database

import (
	"context"

	"github.com/example/studydash/internal/apperrors"
	"github.com/example/studydash/pkg/models"
)

// UpsertCompletedModule records a passed module, replacing any earlier row
// for the same student and module
func (s *Store) UpsertCompletedModule(ctx context.Context, studentID, moduleID string, grade float64, completionDate string) error {
	query := s.db.Rebind(`
		INSERT INTO completed_modules (student_id, module_id, completion_date, grade)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (student_id, module_id) DO UPDATE SET
			completion_date = excluded.completion_date,
			grade = excluded.grade
	`)
	_, err := s.db.ExecContext(ctx, query, studentID, moduleID, completionDate, grade)
	return apperrors.Storage("upsert completed module", err)
}

// ListCompletedModules returns all completed modules of a student
func (s *Store) ListCompletedModules(ctx context.Context, studentID string) ([]models.CompletedModule, error) {
	query := s.db.Rebind(`
		SELECT id, student_id, module_id, completion_date, grade
		FROM completed_modules
		WHERE student_id = ?
		ORDER BY id
	`)

	modules := []models.CompletedModule{}
	if err := s.db.SelectContext(ctx, &modules, query, studentID); err != nil {
		return nil, apperrors.Storage("list completed modules", err)
	}
	return modules, nil
}
