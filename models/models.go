package models

import (
	"fmt"
	"time"
)

// StudentID references a Student from grades and attendance records
type StudentID int64

// Student represents an enrolled student
type Student struct {
	ID    StudentID  `json:"id"`
	Name  string     `json:"name"`
	Age   int        `json:"age"`
	Class ClassLabel `json:"class"`
	Phone string     `json:"phone"` // "<country code> <digits>"
}

// Teacher represents a teacher
type Teacher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Grade is one recorded score of a student in a subject
type Grade struct {
	ID        int64     `json:"id"`
	StudentID StudentID `json:"studentId"`
	Subject   string    `json:"subject"`
	Grade     float64   `json:"grade"` // 0-100
	Date      Date      `json:"date"`
}

// AttendanceRecord marks a student present or absent on a day
type AttendanceRecord struct {
	ID        int64            `json:"id"`
	StudentID StudentID        `json:"studentId"`
	Date      Date             `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// State is the full set of entity lists held by the store.
type State struct {
	Students   []Student          `json:"students"`
	Teachers   []Teacher          `json:"teachers"`
	Grades     []Grade            `json:"grades"`
	Attendance []AttendanceRecord `json:"attendance"`
}

// User is a signed-in account. Passwords never leave the credential store.
type User struct {
	Role     Role   `json:"role"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Preferences are the small scalar settings persisted next to the snapshots.
type Preferences struct {
	Language    Language `json:"language"`
	Theme       Theme    `json:"theme"`
	SidebarOpen bool     `json:"sidebarOpen"`
	CurrentUser *User    `json:"currentUser"`
}

// DefaultPreferences mirrors what a fresh profile starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:    LanguageArabic,
		Theme:       ThemeLight,
		SidebarOpen: true,
	}
}

// Date is a calendar day in YYYY-MM-DD form.
type Date string

const dateLayout = "2006-01-02"

// ParseDate checks s is a valid calendar day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(dateLayout)), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time returns midnight UTC of the day. Zero time if d is malformed.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}
