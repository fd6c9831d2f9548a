package models

// DashboardData is the persisted snapshot of computed dashboard values,
// one row per student
type DashboardData struct {
	StudentID        string  `json:"student_id" db:"student_id"`
	GPA              float64 `json:"gpa" db:"gpa"`
	TargetGPA        float64 `json:"target_gpa" db:"target_gpa"`
	TargetEndDate    string  `json:"target_end_date" db:"target_end_date"`
	AvgModuleTime    int     `json:"avg_module_time" db:"avg_module_time"`
	TargetModuleTime int     `json:"target_module_time" db:"target_module_time"`
	LastUpdated      string  `json:"last_updated" db:"last_updated"`
}

// CompletedModule records that a module was passed with a grade
type CompletedModule struct {
	ID             int64   `json:"id" db:"id"`
	StudentID      string  `json:"student_id" db:"student_id"`
	ModuleID       string  `json:"module_id" db:"module_id"`
	CompletionDate string  `json:"completion_date" db:"completion_date"`
	Grade          float64 `json:"grade" db:"grade"`
}
