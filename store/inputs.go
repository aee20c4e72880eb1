package store

import (
	"strings"

	"school-dashboard-go/models"
)

// DefaultCountryCode is prefixed to phone numbers entered without one.
const DefaultCountryCode = "+966"

// StudentInput is the add/edit form for a student.
type StudentInput struct {
	Name        string            `json:"name" validate:"personname"`
	Age         int               `json:"age" validate:"age"`
	Class       models.ClassLabel `json:"class" validate:"classlabel"`
	Phone       string            `json:"phone" validate:"phone"`
	CountryCode string            `json:"countryCode"`
}

func (in *StudentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CountryCode, in.Phone = splitPhone(in.CountryCode, in.Phone)
}

// TeacherInput is the add/edit form for a teacher.
type TeacherInput struct {
	Name        string `json:"name" validate:"personname"`
	Subject     string `json:"subject" validate:"required"`
	Phone       string `json:"phone" validate:"phone"`
	CountryCode string `json:"countryCode"`
	Email       string `json:"email" validate:"simpleemail"`
}

func (in *TeacherInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Email = strings.TrimSpace(in.Email)
	in.CountryCode, in.Phone = splitPhone(in.CountryCode, in.Phone)
}

// GradeInput records a new grade. An empty date means today.
type GradeInput struct {
	StudentID models.StudentID `json:"studentId" validate:"required"`
	Subject   string           `json:"subject" validate:"required"`
	Grade     *float64         `json:"grade" validate:"required,score"`
	Date      models.Date      `json:"date" validate:"isodate"`
}

// GradeUpdate edits an existing grade; the student cannot change.
type GradeUpdate struct {
	Subject string      `json:"subject" validate:"required"`
	Grade   *float64    `json:"grade" validate:"required,score"`
	Date    models.Date `json:"date" validate:"isodate"`
}

// AttendanceMark is one student's status in a batch.
type AttendanceMark struct {
	StudentID models.StudentID        `json:"studentId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"status"`
}

// AttendanceInput saves a class's attendance for one day.
type AttendanceInput struct {
	Class models.ClassLabel `json:"class" validate:"classlabel"`
	Date  models.Date       `json:"date" validate:"isodate"`
	Marks []AttendanceMark  `json:"marks" validate:"dive"`
}

// PreferencesInput changes any subset of the preferences.
type PreferencesInput struct {
	Language    *models.Language `json:"language"`
	Theme       *models.Theme    `json:"theme" validate:"omitnil,theme"`
	SidebarOpen *bool            `json:"sidebarOpen"`
}

// splitPhone accepts either bare digits or the stored "+cc digits" form.
func splitPhone(code, phone string) (string, string) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if strings.HasPrefix(phone, "+") {
		if c, rest, ok := strings.Cut(phone, " "); ok {
			return c, strings.TrimSpace(rest)
		}
	}
	if code == "" {
		code = DefaultCountryCode
	}
	return code, phone
}

func joinPhone(code, phone string) string {
	return code + " " + phone
}
