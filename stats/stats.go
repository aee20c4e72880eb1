// Package stats derives the dashboard counters and chart datasets from the
// entity lists. Nothing is cached; every call recomputes from its inputs.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"school-dashboard-go/models"
	"school-dashboard-go/query"
)

// DefaultTrendDays is the attendance window when none is requested.
const DefaultTrendDays = 30

// MaxTrendDays is the longest attendance window; longer requests are clamped.
const MaxTrendDays = 366

// TopSubjectsLimit caps the subject chart.
const TopSubjectsLimit = 5

// Series is one chart dataset.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Totals are the dashboard counters.
type Totals struct {
	Students       int `json:"totalStudents"`
	Teachers       int `json:"totalTeachers"`
	AverageGrade   int `json:"avgGrade"`
	AttendanceRate int `json:"attendanceRate"`
}

// round is half-up rounding for display values.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Dashboard computes the four counters. The attendance rate is present
// records over all records.
func Dashboard(st models.State) Totals {
	t := Totals{Students: len(st.Students), Teachers: len(st.Teachers)}
	if len(st.Grades) > 0 {
		var sum float64
		for _, g := range st.Grades {
			sum += g.Grade
		}
		t.AverageGrade = round(sum / float64(len(st.Grades)))
	}
	if len(st.Attendance) > 0 {
		present := 0
		for _, r := range st.Attendance {
			if r.Status == models.StatusPresent {
				present++
			}
		}
		t.AttendanceRate = round(float64(present) / float64(len(st.Attendance)) * 100)
	}
	return t
}

// ClassDistribution counts students per class in display order, zero-filled.
// Students with an unknown class label are not counted.
func ClassDistribution(students []models.Student, lang models.Language) Series {
	counts := make(map[models.ClassLabel]int, len(models.ClassLabels))
	for _, s := range students {
		counts[s.Class]++
	}
	out := Series{Labels: []string{}, Values: []int{}}
	for _, c := range models.ClassLabels {
		out.Labels = append(out.Labels, c.Label(lang))
		out.Values = append(out.Values, counts[c])
	}
	return out
}

// GradeDistribution buckets grades into the five bands. A non-empty class
// keeps only grades of students in that class.
func GradeDistribution(grades []models.Grade, students []models.Student, class models.ClassLabel, lang models.Language) Series {
	counts := make([]int, len(models.GradeBands))
	for _, g := range query.InClass(grades, students, class) {
		counts[models.BandOf(g.Grade)]++
	}
	out := Series{Labels: []string{}, Values: counts}
	for _, b := range models.GradeBands {
		out.Labels = append(out.Labels, b.Label(lang))
	}
	return out
}

// AttendanceTrend returns one point per day for the days ending at today.
// Each rate is present records that day over the current number of
// enrolled students, so a day with records but no enrolled students is 0.
func AttendanceTrend(records []models.AttendanceRecord, enrolled int, today time.Time, days int, lang models.Language) Series {
	if days <= 0 {
		days = DefaultTrendDays
	}
	days = min(days, MaxTrendDays)
	present := make(map[models.Date]int)
	for _, r := range records {
		if r.Status == models.StatusPresent {
			present[r.Date]++
		}
	}

	out := Series{Labels: make([]string, 0, days), Values: make([]int, 0, days)}
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		rate := 0
		if enrolled > 0 {
			rate = round(float64(present[models.DateOf(day)]) / float64(enrolled) * 100)
		}
		out.Labels = append(out.Labels, ChartDate(day, lang))
		out.Values = append(out.Values, rate)
	}
	return out
}

type subjectAverage struct {
	subject string
	sum     float64
	n       int
}

func (s subjectAverage) mean() float64 { return s.sum / float64(s.n) }

// TopSubjects averages grades per subject and keeps the highest limit
// subjects. Equal averages keep first-seen order.
func TopSubjects(grades []models.Grade, limit int) Series {
	if limit <= 0 {
		limit = TopSubjectsLimit
	}
	index := make(map[string]int)
	var subjects []subjectAverage
	for _, g := range grades {
		i, ok := index[g.Subject]
		if !ok {
			i = len(subjects)
			index[g.Subject] = i
			subjects = append(subjects, subjectAverage{subject: g.Subject})
		}
		subjects[i].sum += g.Grade
		subjects[i].n++
	}
	sort.SliceStable(subjects, func(a, b int) bool {
		return subjects[a].mean() > subjects[b].mean()
	})
	if len(subjects) > limit {
		subjects = subjects[:limit]
	}

	out := Series{Labels: []string{}, Values: []int{}}
	for _, s := range subjects {
		out.Labels = append(out.Labels, s.subject)
		out.Values = append(out.Values, round(s.mean()))
	}
	return out
}

var arabicMonths = [...]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"}

// ChartDate is the short day label used on the trend axis.
func ChartDate(t time.Time, lang models.Language) string {
	if lang == models.LanguageEnglish {
		return t.Format("Jan 2")
	}
	return fmt.Sprintf("%d %s", t.Day(), arabicMonths[t.Month()-1])
}
