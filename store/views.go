package store

import (
	"fmt"
	"slices"

	"school-dashboard-go/access"
	"school-dashboard-go/models"
	"school-dashboard-go/query"
)

// ListStudents applies f. Student accounts get an empty roster; grades and
// attendance stay visible to them.
func (s *Store) ListStudents(f query.StudentFilter) []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !access.CanListStudents(s.prefs.CurrentUser) {
		return []models.Student{}
	}
	return query.Students(s.state.Students, f)
}

// GetStudent looks up one student.
func (s *Store) GetStudent(id models.StudentID) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.state.Students, func(st models.Student) bool { return st.ID == id })
	if i < 0 {
		return models.Student{}, fmt.Errorf("%w: student %d", ErrNotFound, id)
	}
	return s.state.Students[i], nil
}

// ListTeachers applies f.
func (s *Store) ListTeachers(f query.TeacherFilter) []models.Teacher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Teachers(s.state.Teachers, f)
}

// ListGrades applies f and resolves student names.
func (s *Store) ListGrades(f query.GradeFilter) []query.GradeRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Grades(s.state.Grades, s.state.Students, f)
}

// ListAttendance applies f and resolves student names.
func (s *Store) ListAttendance(f query.AttendanceFilter) []query.AttendanceRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Attendance(s.state.Attendance, s.state.Students, f)
}

// TeacherSubjects lists distinct teacher subjects.
func (s *Store) TeacherSubjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.TeacherSubjects(s.state.Teachers)
}

// GradeSubjects lists distinct graded subjects.
func (s *Store) GradeSubjects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.GradeSubjects(s.state.Grades)
}
