package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/config"
	"github.com/example/studydash/internal/dashboard"
	"github.com/example/studydash/internal/excel"
	"github.com/example/studydash/pkg/models"
)

// Data is the course, student and exams a dashboard starts from
type Data struct {
	Course  *models.Course
	Student *models.Student
	Exams   []*models.Exam
}

// SampleDeadlines are added when the store holds no deadlines yet
var SampleDeadlines = []models.Deadline{
	{Type: "Exam", Module: "Software Engineering", Date: "2024-06-15"},
	{Type: "Assignment", Module: "Machine Learning", Date: "2024-06-20"},
	{Type: "Project", Module: "Cloud Computing", Date: "2024-07-01"},
	{Type: "Exam", Module: "Machine Learning", Date: "2024-07-10"},
}

// Load builds the seed data from the configuration. Modules and exams come
// from cfg.SeedFile when set, otherwise from the built-in list.
func Load(cfg *config.Config, lgr zerolog.Logger) (*Data, error) {
	course := models.NewCourse(cfg.Course.Name, cfg.Course.ID, cfg.Course.Semesters)
	student := &models.Student{ID: cfg.Student.ID, Name: cfg.Student.Name, Course: course}

	if cfg.SeedFile == "" {
		return Default(course, student), nil
	}

	result, err := excel.ImportExams(excel.DefaultImportConfig(cfg.SeedFile), course, student)
	if err != nil {
		return nil, fmt.Errorf("failed to import seed file: %w", err)
	}
	for _, msg := range result.Errors {
		lgr.Warn().Str("file", cfg.SeedFile).Msg(msg)
	}
	lgr.Info().
		Str("file", cfg.SeedFile).
		Int("rows", result.TotalProcessed).
		Int("modules", result.ModulesCreated).
		Int("exams", len(result.Exams)).
		Msg("Seed file imported")

	return &Data{Course: course, Student: student, Exams: result.Exams}, nil
}

// Default fills the course with the built-in modules and exams
func Default(course *models.Course, student *models.Student) *Data {
	modules := []*models.Module{
		{ID: "CS101", Name: "Objektorientierte Programmierung mit Python", Credits: 5},
		{ID: "CS102", Name: "Datenstrukturen", Credits: 5},
		{ID: "CS103", Name: "Algorithmen", Credits: 5},
		{ID: "CS201", Name: "Datenbanken", Credits: 5},
		{ID: "CS202", Name: "Web Development", Credits: 5},
		{ID: "CS203", Name: "Software Engineering", Credits: 5},
		{ID: "CS301", Name: "Maschinelles Lernen", Credits: 5},
		{ID: "CS302", Name: "Cloud Computing", Credits: 5},
	}
	for _, m := range modules {
		course.AddModule(m)
	}

	semester1 := models.Semester{Number: 1, Year: 2023}
	semester2 := models.Semester{Number: 2, Year: 2024}

	exam := func(m *models.Module, s models.Semester, grade *float64) *models.Exam {
		return &models.Exam{Module: m, Student: student, Semester: s, Grade: grade}
	}

	return &Data{
		Course:  course,
		Student: student,
		Exams: []*models.Exam{
			exam(modules[0], semester1, models.GradeOf(2.0)),
			exam(modules[1], semester1, models.GradeOf(2.3)),
			exam(modules[2], semester1, models.GradeOf(1.7)),
			exam(modules[3], semester2, models.GradeOf(2.7)),
			exam(modules[4], semester2, models.GradeOf(2.0)),
			exam(modules[5], semester2, nil),
			exam(modules[6], semester2, nil),
			exam(modules[7], semester2, nil),
		},
	}
}

// Populate loads exams into the dashboard, adds the sample deadlines to an
// empty store, restores the persisted target GPA and saves a fresh snapshot
func Populate(ctx context.Context, d *dashboard.Dashboard, data *Data, lgr zerolog.Logger) error {
	for _, exam := range data.Exams {
		d.AddExam(exam)
	}

	if err := d.ReloadDeadlines(ctx); err != nil {
		return fmt.Errorf("failed to load deadlines: %w", err)
	}
	if len(d.Deadlines()) == 0 {
		for _, dl := range SampleDeadlines {
			if err := d.AddDeadline(ctx, dl.Type, dl.Module, dl.Date); err != nil {
				return fmt.Errorf("failed to add sample deadline: %w", err)
			}
		}
		lgr.Info().Int("count", len(SampleDeadlines)).Msg("Sample deadlines created")
	}

	restored, err := d.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	if restored {
		lgr.Info().Float64("target_gpa", d.TargetGPA()).Msg("Restored persisted targets")
	}

	if err := d.SaveAll(ctx); err != nil {
		return fmt.Errorf("failed to save dashboard: %w", err)
	}
	return nil
}
