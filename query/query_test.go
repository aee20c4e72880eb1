package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"school-dashboard-go/models"
)

var students = []models.Student{
	{ID: 1, Name: "Layla Haddad", Age: 7, Class: models.ClassFirst},
	{ID: 2, Name: "Omar Saleh", Age: 12, Class: models.ClassSecond},
	{ID: 3, Name: "lamar", Age: 15, Class: models.ClassFirst},
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange("10-15")
	assert.True(t, ok)
	assert.Equal(t, Range{Min: 10, Max: 15}, r)
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(15))
	assert.False(t, r.Contains(15.5))

	r, ok = ParseRange("89.5-100")
	assert.True(t, ok)
	assert.True(t, r.Contains(89.5))

	r, ok = ParseRange(" 60 - 70 ")
	assert.True(t, ok)
	assert.Equal(t, Range{Min: 60, Max: 70}, r)

	for _, bad := range []string{"", "10", "a-b", "10-"} {
		_, ok := ParseRange(bad)
		assert.False(t, ok, bad)
	}
}

func TestStudents(t *testing.T) {
	tests := []struct {
		name string
		f    StudentFilter
		want []models.StudentID
	}{
		{"no filter", StudentFilter{}, []models.StudentID{1, 2, 3}},
		{"search is case-insensitive", StudentFilter{Search: "LA"}, []models.StudentID{1, 3}},
		{"search matches class", StudentFilter{Search: "الثاني"}, []models.StudentID{2}},
		{"class", StudentFilter{Class: models.ClassFirst}, []models.StudentID{1, 3}},
		{"age range", StudentFilter{AgeRange: "10-15"}, []models.StudentID{2, 3}},
		{"combined", StudentFilter{Search: "la", Class: models.ClassFirst, AgeRange: "5-9"}, []models.StudentID{1}},
		{"malformed range matches nothing", StudentFilter{AgeRange: "young"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []models.StudentID
			for _, s := range Students(students, tt.f) {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTeachers(t *testing.T) {
	teachers := []models.Teacher{
		{ID: 1, Name: "Huda", Subject: "Math"},
		{ID: 2, Name: "Sami", Subject: "Science"},
		{ID: 3, Name: "Rana", Subject: "Math"},
	}
	assert.Len(t, Teachers(teachers, TeacherFilter{Search: "math"}), 2)
	assert.Len(t, Teachers(teachers, TeacherFilter{Subject: "Science"}), 1)
	assert.Len(t, Teachers(teachers, TeacherFilter{Search: "sam", Subject: "Math"}), 0)
	assert.Equal(t, []string{"Math", "Science"}, TeacherSubjects(teachers))
}

func TestGrades(t *testing.T) {
	grades := []models.Grade{
		{ID: 10, StudentID: 1, Subject: "Math", Grade: 95},
		{ID: 11, StudentID: 2, Subject: "Art", Grade: 72},
		{ID: 12, StudentID: 99, Subject: "Math", Grade: 40},
	}

	rows := Grades(grades, students, GradeFilter{})
	assert.Len(t, rows, 3)
	assert.Equal(t, "Layla Haddad", rows[0].StudentName)
	assert.Equal(t, "excellent", rows[0].Band)
	assert.Equal(t, UnknownStudent, rows[2].StudentName)

	assert.Len(t, Grades(grades, students, GradeFilter{Search: "omar"}), 1)
	assert.Len(t, Grades(grades, students, GradeFilter{Subject: "Math"}), 2)
	assert.Len(t, Grades(grades, students, GradeFilter{StudentID: 2}), 1)
	assert.Len(t, Grades(grades, students, GradeFilter{Range: "70-100"}), 2)
	assert.Len(t, Grades(grades, students, GradeFilter{Search: UnknownStudent}), 1)

	assert.Equal(t, []string{"Math", "Art"}, GradeSubjects(grades))
	assert.Len(t, InClass(grades, students, models.ClassFirst), 1)
	assert.Len(t, InClass(grades, students, ""), 3)
}

func TestAttendance(t *testing.T) {
	records := []models.AttendanceRecord{
		{ID: 1, StudentID: 1, Date: "2026-10-01", Status: models.StatusPresent},
		{ID: 2, StudentID: 2, Date: "2026-10-01", Status: models.StatusAbsent},
		{ID: 3, StudentID: 3, Date: "2026-10-02", Status: models.StatusPresent},
		{ID: 4, StudentID: 42, Date: "2026-10-02", Status: models.StatusPresent},
	}
	assert.Len(t, Attendance(records, students, AttendanceFilter{}), 4)
	assert.Len(t, Attendance(records, students, AttendanceFilter{Class: models.ClassFirst}), 2)
	assert.Len(t, Attendance(records, students, AttendanceFilter{Date: "2026-10-02"}), 2)
	assert.Len(t, Attendance(records, students, AttendanceFilter{Status: models.StatusAbsent}), 1)

	rows := Attendance(records, students, AttendanceFilter{StudentID: 42})
	assert.Len(t, rows, 1)
	assert.Equal(t, UnknownStudent, rows[0].StudentName)
}
