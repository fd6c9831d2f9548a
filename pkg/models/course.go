package models

// Module is a unit of study worth a number of credits
type Module struct {
	ID      string `json:"id" db:"module_id"`
	Name    string `json:"name" db:"name"`
	Credits int    `json:"credits" db:"credits"`
}

// Course is a study programme with its modules in declaration order
type Course struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	DurationSemesters int       `json:"duration_semesters"`
	Modules           []*Module `json:"modules"`
}

// NewCourse creates a course without modules
func NewCourse(name, id string, durationSemesters int) *Course {
	return &Course{
		ID:                id,
		Name:              name,
		DurationSemesters: durationSemesters,
	}
}

// AddModule appends a module to the course. A module whose id is already
// present is ignored and false is returned.
func (c *Course) AddModule(m *Module) bool {
	for _, existing := range c.Modules {
		if existing.ID == m.ID {
			return false
		}
	}
	c.Modules = append(c.Modules, m)
	return true
}
