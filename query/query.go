// Package query computes the filtered list views. Every view is a linear
// scan in insertion order; all filters are ANDed and empty filters match
// everything.
package query

import (
	"strconv"
	"strings"

	"school-dashboard-go/models"
)

// UnknownStudent labels rows whose student no longer exists.
const UnknownStudent = "غير معروف"

// Range is an inclusive numeric range parsed from "min-max".
type Range struct {
	Min, Max float64
}

// ParseRange splits s on '-' into two numbers.
func ParseRange(s string) (Range, bool) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(from), 64)
	if err != nil {
		return Range{}, false
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(to), 64)
	if err != nil {
		return Range{}, false
	}
	return Range{Min: lo, Max: hi}, true
}

// Contains reports Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// matchRange applies an optional range filter. A malformed range matches nothing.
func matchRange(filter string, v float64) bool {
	if filter == "" {
		return true
	}
	r, ok := ParseRange(filter)
	return ok && r.Contains(v)
}

func matchSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// StudentFilter drives the student list.
type StudentFilter struct {
	Search   string            `form:"search"`
	Class    models.ClassLabel `form:"class"`
	AgeRange string            `form:"age"`
}

// Students matches search against name or class.
func Students(students []models.Student, f StudentFilter) []models.Student {
	out := []models.Student{}
	for _, s := range students {
		if !matchSearch(f.Search, s.Name, string(s.Class)) {
			continue
		}
		if f.Class != "" && s.Class != f.Class {
			continue
		}
		if !matchRange(f.AgeRange, float64(s.Age)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// TeacherFilter drives the teacher list.
type TeacherFilter struct {
	Search  string `form:"search"`
	Subject string `form:"subject"`
}

// Teachers matches search against name or subject.
func Teachers(teachers []models.Teacher, f TeacherFilter) []models.Teacher {
	out := []models.Teacher{}
	for _, t := range teachers {
		if !matchSearch(f.Search, t.Name, t.Subject) {
			continue
		}
		if f.Subject != "" && t.Subject != f.Subject {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GradeFilter drives the grade list.
type GradeFilter struct {
	Search    string           `form:"search"`
	StudentID models.StudentID `form:"studentId"`
	Subject   string           `form:"subject"`
	Range     string           `form:"range"`
}

// GradeRow is a grade with its resolved student name and band.
type GradeRow struct {
	models.Grade
	StudentName string `json:"studentName"`
	Band        string `json:"band"`
}

// Grades matches search against student name or subject.
func Grades(grades []models.Grade, students []models.Student, f GradeFilter) []GradeRow {
	names := StudentNames(students)
	out := []GradeRow{}
	for _, g := range grades {
		name := nameOf(names, g.StudentID)
		if !matchSearch(f.Search, name, g.Subject) {
			continue
		}
		if f.StudentID != 0 && g.StudentID != f.StudentID {
			continue
		}
		if f.Subject != "" && g.Subject != f.Subject {
			continue
		}
		if !matchRange(f.Range, g.Grade) {
			continue
		}
		out = append(out, GradeRow{Grade: g, StudentName: name, Band: models.BandOf(g.Grade).String()})
	}
	return out
}

// AttendanceFilter drives the attendance record list and report.
type AttendanceFilter struct {
	Class     models.ClassLabel       `form:"class"`
	Date      models.Date             `form:"date"`
	StudentID models.StudentID        `form:"studentId"`
	Status    models.AttendanceStatus `form:"status"`
}

// AttendanceRow is a record with its resolved student name.
type AttendanceRow struct {
	models.AttendanceRecord
	StudentName string `json:"studentName"`
}

// Attendance filters records; the class filter goes through the owning student.
func Attendance(records []models.AttendanceRecord, students []models.Student, f AttendanceFilter) []AttendanceRow {
	byID := make(map[models.StudentID]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	out := []AttendanceRow{}
	for _, r := range records {
		s, known := byID[r.StudentID]
		if f.Class != "" && (!known || s.Class != f.Class) {
			continue
		}
		if f.Date != "" && r.Date != f.Date {
			continue
		}
		if f.StudentID != 0 && r.StudentID != f.StudentID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		name := UnknownStudent
		if known {
			name = s.Name
		}
		out = append(out, AttendanceRow{AttendanceRecord: r, StudentName: name})
	}
	return out
}

// InClass returns the grades whose student belongs to class. An empty class keeps all.
func InClass(grades []models.Grade, students []models.Student, class models.ClassLabel) []models.Grade {
	if class == "" {
		return grades
	}
	ids := make(map[models.StudentID]bool)
	for _, s := range students {
		if s.Class == class {
			ids[s.ID] = true
		}
	}
	out := []models.Grade{}
	for _, g := range grades {
		if ids[g.StudentID] {
			out = append(out, g)
		}
	}
	return out
}

// StudentNames indexes names by id.
func StudentNames(students []models.Student) map[models.StudentID]string {
	names := make(map[models.StudentID]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	return names
}

func nameOf(names map[models.StudentID]string, id models.StudentID) string {
	if n, ok := names[id]; ok {
		return n
	}
	return UnknownStudent
}

// TeacherSubjects lists distinct subjects in first-seen order.
func TeacherSubjects(teachers []models.Teacher) []string {
	subjects := make([]string, 0, len(teachers))
	for _, t := range teachers {
		subjects = append(subjects, t.Subject)
	}
	return distinct(subjects)
}

// GradeSubjects lists distinct graded subjects in first-seen order.
func GradeSubjects(grades []models.Grade) []string {
	subjects := make([]string, 0, len(grades))
	for _, g := range grades {
		subjects = append(subjects, g.Subject)
	}
	return distinct(subjects)
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
