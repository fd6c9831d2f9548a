package models

// Deadline is an upcoming exam, assignment or project date.
// Type and Module are free text; Date is an ISO YYYY-MM-DD string.
type Deadline struct {
	ID        int64  `json:"id" db:"id"`
	StudentID string `json:"-" db:"student_id"`
	Type      string `json:"type" db:"deadline_type"`
	Module    string `json:"module" db:"module_name"`
	Date      string `json:"date" db:"deadline_date"`
}
