package models

// Student is the single person whose progress is tracked.
// ID is the partition key for every persisted row.
type Student struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Course *Course `json:"course"`
}

// Semester identifies when an exam was taken
type Semester struct {
	Number int `json:"number"`
	Year   int `json:"year"`
}

// PassingGrade is the worst grade that still passes; lower grades are better
const PassingGrade = 4.0

// Exam links a student to a module in a semester.
// Grade is nil until the exam has been graded.
type Exam struct {
	Module   *Module  `json:"module"`
	Student  *Student `json:"student"`
	Semester Semester `json:"semester"`
	Grade    *float64 `json:"grade,omitempty"`
}

// IsGraded reports whether the exam has a grade
func (e *Exam) IsGraded() bool {
	return e.Grade != nil
}

// IsPassed reports whether the exam is graded with PassingGrade or better
func (e *Exam) IsPassed() bool {
	return e.Grade != nil && *e.Grade <= PassingGrade
}

// GradeOf returns a pointer to g, for building graded exams inline
func GradeOf(g float64) *float64 {
	return &g
}
