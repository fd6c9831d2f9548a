package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/studydash/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath             string // Path to the Excel or CSV file
	ModuleIDColumn       string // Column with the module id
	ModuleNameColumn     string // Column with the module name
	CreditsColumn        string // Column with the credits
	SemesterNumberColumn string // Column with the semester number
	SemesterYearColumn   string // Column with the semester year
	GradeColumn          string // Column with the grade, blank when not graded
	SheetName            string // Name of the sheet to import
	StartRow             int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:             path,
		ModuleIDColumn:       "A",
		ModuleNameColumn:     "B",
		CreditsColumn:        "C",
		SemesterNumberColumn: "D",
		SemesterYearColumn:   "E",
		GradeColumn:          "F",
		SheetName:            "Sheet1",
		StartRow:             2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	ModulesCreated int
	Exams          []*models.Exam
	Errors         []string
}

var errEmptyRow = errors.New("empty row")

// ImportExams reads one exam per row from an Excel or CSV file. Modules not
// yet in the course are added to it; a repeated module id is a retake of the
// same module. Bad rows are reported in the result and skipped.
func ImportExams(config ImportConfig, course *models.Course, student *models.Student) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		exam, created, err := processRow(row, config, course, student)
		if errors.Is(err, errEmptyRow) {
			continue
		}
		result.TotalProcessed++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		if created {
			result.ModulesCreated++
		}
		result.Exams = append(result.Exams, exam)
	}

	return result, nil
}

// readExcel returns all rows of a sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns all records of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow turns one row into an exam, creating its module if needed
func processRow(row []string, config ImportConfig, course *models.Course, student *models.Student) (*models.Exam, bool, error) {
	cell := func(column string) string {
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	moduleID := cell(config.ModuleIDColumn)
	if moduleID == "" {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			return nil, false, errEmptyRow
		}
		return nil, false, fmt.Errorf("module id cannot be empty")
	}

	semesterNumber, err := parseIntOrDefault(cell(config.SemesterNumberColumn), 1)
	if err != nil {
		return nil, false, fmt.Errorf("invalid semester number: %w", err)
	}
	semesterYear, err := parseIntOrDefault(cell(config.SemesterYearColumn), 0)
	if err != nil {
		return nil, false, fmt.Errorf("invalid semester year: %w", err)
	}
	grade, err := parseGrade(cell(config.GradeColumn))
	if err != nil {
		return nil, false, err
	}

	module, created, err := getOrCreateModule(course, moduleID, cell(config.ModuleNameColumn), cell(config.CreditsColumn))
	if err != nil {
		return nil, false, err
	}

	return &models.Exam{
		Module:   module,
		Student:  student,
		Semester: models.Semester{Number: semesterNumber, Year: semesterYear},
		Grade:    grade,
	}, created, nil
}

// getOrCreateModule finds a module of the course by id or adds a new one
func getOrCreateModule(course *models.Course, id, name, credits string) (*models.Module, bool, error) {
	for _, m := range course.Modules {
		if m.ID == id {
			return m, false, nil
		}
	}

	if name == "" {
		return nil, false, fmt.Errorf("module name cannot be empty")
	}
	creditsVal, err := parseIntOrDefault(credits, 0)
	if err != nil {
		return nil, false, fmt.Errorf("invalid credits: %w", err)
	}

	m := &models.Module{ID: id, Name: name, Credits: creditsVal}
	course.AddModule(m)
	return m, true, nil
}

// parseGrade accepts finite numbers written as "2.3" or "2,3"; blank means
// not graded
func parseGrade(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	g, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("invalid grade %q", s)
	}
	return &g, nil
}

// Helper function to parse an integer, empty strings yield the default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
