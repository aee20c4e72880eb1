// Package reports renders the printable reports as Excel workbooks and
// imports students from them.
package reports

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"school-dashboard-go/models"
	"school-dashboard-go/query"
)

// Kind selects a report.
type Kind string

const (
	KindStudents   Kind = "students"
	KindTeachers   Kind = "teachers"
	KindGrades     Kind = "grades"
	KindAttendance Kind = "attendance"
)

// ParseKind validates a report name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindStudents, KindTeachers, KindGrades, KindAttendance:
		return k, nil
	}
	return "", fmt.Errorf("unknown report type %q", s)
}

// Report is a printable table: title, a total line, headers and rows.
type Report struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	TotalLabel string   `json:"totalLabel"`
	Total      int      `json:"total"`
	Headers    []string `json:"headers"`
	Rows       [][]any  `json:"rows"`
}

type text struct{ ar, en string }

func (t text) in(lang models.Language) string {
	if lang == models.LanguageEnglish {
		return t.en
	}
	return t.ar
}

var (
	titles = map[Kind]text{
		KindStudents:   {"تقرير الطلاب", "Students Report"},
		KindTeachers:   {"تقرير المعلمين", "Teachers Report"},
		KindGrades:     {"تقرير الدرجات", "Grades Report"},
		KindAttendance: {"تقرير الحضور", "Attendance Report"},
	}
	totals = map[Kind]text{
		KindStudents:   {"إجمالي الطلاب", "Total Students"},
		KindTeachers:   {"إجمالي المعلمين", "Total Teachers"},
		KindGrades:     {"إجمالي الدرجات", "Total Grades"},
		KindAttendance: {"إجمالي السجلات", "Total Records"},
	}
	colName    = text{"الاسم", "Name"}
	colAge     = text{"العمر", "Age"}
	colClass   = text{"الصف", "Class"}
	colPhone   = text{"الهاتف", "Phone"}
	colSubject = text{"المادة", "Subject"}
	colEmail   = text{"البريد الإلكتروني", "Email"}
	colStudent = text{"الطالب", "Student"}
	colGrade   = text{"الدرجة", "Grade"}
	colDate    = text{"التاريخ", "Date"}
	colStatus  = text{"الحالة", "Status"}
	present    = text{"حاضر", "Present"}
	absent     = text{"غائب", "Absent"}
)

// Build renders a report from st. A non-empty class narrows the students,
// grades and attendance reports; the teachers report ignores it.
func Build(kind Kind, st models.State, class models.ClassLabel, lang models.Language) Report {
	r := Report{
		Kind:       kind,
		Title:      titles[kind].in(lang),
		TotalLabel: totals[kind].in(lang),
		Rows:       [][]any{},
	}
	switch kind {
	case KindStudents:
		r.Headers = headers(lang, colName, colAge, colClass, colPhone)
		for _, s := range query.Students(st.Students, query.StudentFilter{Class: class}) {
			r.Rows = append(r.Rows, []any{s.Name, s.Age, s.Class.Label(lang), s.Phone})
		}
	case KindTeachers:
		r.Headers = headers(lang, colName, colSubject, colPhone, colEmail)
		for _, t := range st.Teachers {
			r.Rows = append(r.Rows, []any{t.Name, t.Subject, t.Phone, t.Email})
		}
	case KindGrades:
		r.Headers = headers(lang, colStudent, colSubject, colGrade, colDate)
		names := query.StudentNames(st.Students)
		for _, g := range query.InClass(st.Grades, st.Students, class) {
			name, ok := names[g.StudentID]
			if !ok {
				name = query.UnknownStudent
			}
			r.Rows = append(r.Rows, []any{name, g.Subject, g.Grade, string(g.Date)})
		}
	case KindAttendance:
		r.Headers = headers(lang, colStudent, colDate, colStatus)
		for _, a := range query.Attendance(st.Attendance, st.Students, query.AttendanceFilter{Class: class}) {
			status := absent.in(lang)
			if a.Status == models.StatusPresent {
				status = present.in(lang)
			}
			r.Rows = append(r.Rows, []any{a.StudentName, string(a.Date), status})
		}
	}
	r.Total = len(r.Rows)
	return r
}

func headers(lang models.Language, cols ...text) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.in(lang)
	}
	return out
}

// headerRow is where the column headers go; rows follow it.
const headerRow = 4

// WriteXLSX writes r as a one-sheet workbook.
func (r Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := string(r.Kind)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", r.Title); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &[]any{r.TotalLabel, r.Total}); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return err
	}

	hdr := make([]any, len(r.Headers))
	for i, h := range r.Headers {
		hdr[i] = h
	}
	start := "A" + strconv.Itoa(headerRow)
	if err := f.SetSheetRow(sheet, start, &hdr); err != nil {
		return err
	}
	if len(r.Headers) > 0 {
		end, err := excelize.CoordinatesToCellName(len(r.Headers), headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, end, bold); err != nil {
			return err
		}
	}

	for i, row := range r.Rows {
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
