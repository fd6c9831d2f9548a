package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/studydash/pkg/models"
)

func newCourse() (*models.Course, *models.Student) {
	course := models.NewCourse("Cyber Security", "CS-2026", 6)
	return course, &models.Student{ID: "IU1", Name: "Test", Course: course}
}

func TestImportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"module_id,name,credits,semester,year,grade\n"+
			"CS101,Programming,5,1,2023,2.0\n"+
			"CS102,Data Structures,5,1,2023,\"2,3\"\n"+
			"CS103,Algorithms,5,2,2024,\n"+
			",,,,,\n"+
			"CS101,Programming,5,2,2024,1.7\n"+
			"CS104,Databases,five,2,2024,\n"+
			"CS105,Web,5,2,2024,good\n"), 0o644))

	course, student := newCourse()
	result, err := ImportExams(DefaultImportConfig(path), course, student)
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalProcessed)
	assert.Equal(t, 3, result.ModulesCreated)
	assert.Len(t, result.Errors, 2)
	require.Len(t, result.Exams, 4)
	require.Len(t, course.Modules, 3)

	assert.Equal(t, 2.0, *result.Exams[0].Grade)
	assert.Equal(t, 2.3, *result.Exams[1].Grade)
	assert.Nil(t, result.Exams[2].Grade)
	assert.Equal(t, models.Semester{Number: 2, Year: 2024}, result.Exams[2].Semester)

	// Retake shares the module
	assert.Same(t, result.Exams[0].Module, result.Exams[3].Module)
	assert.Same(t, student, result.Exams[3].Student)
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exams.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"module_id", "name", "credits", "semester", "year", "grade"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"CS201", "Databases", 5, 3, 2024, 2.7}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"CS202", "Web Development", 5, 3, 2024}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	course, student := newCourse()
	result, err := ImportExams(DefaultImportConfig(path), course, student)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Exams, 2)
	assert.Equal(t, 2.7, *result.Exams[0].Grade)
	assert.Nil(t, result.Exams[1].Grade)
	assert.Equal(t, "Web Development", course.Modules[1].Name)
	assert.Equal(t, 5, course.Modules[1].Credits)
}

func TestImportRejectsNonFiniteGrades(t *testing.T) {
	tests := []struct {
		name  string
		grade string
	}{
		{"nan", "NaN"},
		{"inf", "inf"},
		{"negative inf", "-Inf"},
		{"text", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "exams.csv")
			require.NoError(t, os.WriteFile(path, []byte(
				"module_id,name,credits,semester,year,grade\n"+
					"CS101,Programming,5,1,2023,2.0\n"+
					"CS102,Data Structures,5,1,2023,"+tt.grade+"\n"), 0o644))

			course, student := newCourse()
			result, err := ImportExams(DefaultImportConfig(path), course, student)
			require.NoError(t, err)

			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.grade)
			require.Len(t, result.Exams, 1)
			assert.Equal(t, "CS101", result.Exams[0].Module.ID)
			assert.Len(t, course.Modules, 1)
		})
	}
}

func TestParseGrade(t *testing.T) {
	g, err := parseGrade("1,7")
	require.NoError(t, err)
	assert.Equal(t, 1.7, *g)

	g, err = parseGrade("")
	require.NoError(t, err)
	assert.Nil(t, g)

	for _, s := range []string{"NaN", "+Inf", "-inf", "Infinity"} {
		_, err := parseGrade(s)
		assert.Error(t, err, s)
	}
}

func TestImportMissingFile(t *testing.T) {
	course, student := newCourse()
	_, err := ImportExams(DefaultImportConfig(filepath.Join(t.TempDir(), "nope.xlsx")), course, student)
	assert.Error(t, err)
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 5, columnToIndex("f"))
	assert.Equal(t, 26, columnToIndex("AA"))
}
