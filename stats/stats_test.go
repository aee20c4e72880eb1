package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"school-dashboard-go/models"
)

func TestClassDistribution(t *testing.T) {
	empty := ClassDistribution(nil, models.LanguageArabic)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, empty.Values)
	assert.Equal(t, "الأول", empty.Labels[0])

	students := []models.Student{
		{ID: 1, Class: models.ClassFirst},
		{ID: 2, Class: models.ClassSecond},
		{ID: 3, Class: models.ClassFirst},
		{ID: 4, Class: models.ClassSecond},
		{ID: 5, Class: models.ClassFirst},
		{ID: 6, Class: "unknown"},
	}
	got := ClassDistribution(students, models.LanguageEnglish)
	assert.Equal(t, []int{3, 2, 0, 0, 0, 0}, got.Values)
	assert.Equal(t, []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth"}, got.Labels)
}

func TestGradeDistribution(t *testing.T) {
	var grades []models.Grade
	for i, v := range []float64{95, 85, 72, 61, 40} {
		grades = append(grades, models.Grade{ID: int64(i), StudentID: 1, Grade: v})
	}
	got := GradeDistribution(grades, nil, "", models.LanguageEnglish)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, got.Values)
	assert.Equal(t, "Excellent (90-100)", got.Labels[0])
	assert.Equal(t, "Poor (< 60)", got.Labels[4])

	boundaries := []models.Grade{{Grade: 90}, {Grade: 80}, {Grade: 100}, {Grade: 0}}
	got = GradeDistribution(boundaries, nil, "", models.LanguageArabic)
	assert.Equal(t, []int{2, 1, 0, 0, 1}, got.Values)
}

func TestGradeDistributionByClass(t *testing.T) {
	students := []models.Student{
		{ID: 1, Class: models.ClassFirst},
		{ID: 2, Class: models.ClassThird},
	}
	grades := []models.Grade{
		{StudentID: 1, Grade: 91},
		{StudentID: 2, Grade: 50},
		{StudentID: 3, Grade: 75}, // dangling
	}
	got := GradeDistribution(grades, students, models.ClassFirst, models.LanguageArabic)
	assert.Equal(t, []int{1, 0, 0, 0, 0}, got.Values)

	got = GradeDistribution(grades, students, "", models.LanguageArabic)
	assert.Equal(t, []int{1, 0, 1, 0, 1}, got.Values)
}

func TestAttendanceTrend(t *testing.T) {
	today := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		{StudentID: 1, Date: "2026-10-14", Status: models.StatusPresent},
		{StudentID: 2, Date: "2026-10-14", Status: models.StatusPresent},
		{StudentID: 1, Date: "2026-10-15", Status: models.StatusPresent},
		{StudentID: 2, Date: "2026-10-15", Status: models.StatusAbsent},
	}

	got := AttendanceTrend(records, 2, today, 3, models.LanguageEnglish)
	assert.Equal(t, []int{100, 50, 0}, got.Values)
	assert.Equal(t, []string{"Oct 14", "Oct 15", "Oct 16"}, got.Labels)

	ar := AttendanceTrend(records, 2, today, 3, models.LanguageArabic)
	assert.Equal(t, "16 أكتوبر", ar.Labels[2])
}

func TestAttendanceTrendNoEnrolledStudents(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	records := []models.AttendanceRecord{
		{StudentID: 7, Date: "2026-10-16", Status: models.StatusPresent},
	}
	got := AttendanceTrend(records, 0, today, 2, models.LanguageEnglish)
	assert.Equal(t, []int{0, 0}, got.Values)
}

func TestAttendanceTrendDefaultsAndRounding(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got := AttendanceTrend(nil, 5, today, 0, models.LanguageEnglish)
	assert.Len(t, got.Values, DefaultTrendDays)
	assert.Equal(t, "Mar 1", got.Labels[DefaultTrendDays-1])
	assert.Equal(t, "Jan 31", got.Labels[0])

	// 1 of 3 present is 33.3 -> 33, 2 of 3 is 66.7 -> 67
	records := []models.AttendanceRecord{
		{StudentID: 1, Date: "2026-02-28", Status: models.StatusPresent},
		{StudentID: 1, Date: "2026-03-01", Status: models.StatusPresent},
		{StudentID: 2, Date: "2026-03-01", Status: models.StatusPresent},
	}
	got = AttendanceTrend(records, 3, today, 2, models.LanguageEnglish)
	assert.Equal(t, []int{33, 67}, got.Values)
}

func TestAttendanceTrendClampsWindow(t *testing.T) {
	today := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	for _, days := range []int{MaxTrendDays + 1, 10_000_000, 1 << 62} {
		got := AttendanceTrend(nil, 1, today, days, models.LanguageEnglish)
		assert.Len(t, got.Labels, MaxTrendDays, "days %d", days)
		assert.Len(t, got.Values, MaxTrendDays, "days %d", days)
		assert.Equal(t, "Oct 16", got.Labels[MaxTrendDays-1])
	}
}

func TestTopSubjects(t *testing.T) {
	grades := []models.Grade{
		{Subject: "Math", Grade: 95},
		{Subject: "Science", Grade: 60},
		{Subject: "Art", Grade: 80},
		{Subject: "PE", Grade: 70},
		{Subject: "History", Grade: 88},
		{Subject: "Music", Grade: 50},
	}
	got := TopSubjects(grades, TopSubjectsLimit)
	assert.Equal(t, []string{"Math", "History", "Art", "PE", "Science"}, got.Labels)
	assert.Equal(t, []int{95, 88, 80, 70, 60}, got.Values)
}

func TestTopSubjectsAveragesAndTies(t *testing.T) {
	grades := []models.Grade{
		{Subject: "Art", Grade: 70},
		{Subject: "Math", Grade: 90},
		{Subject: "Art", Grade: 90},
		{Subject: "Math", Grade: 70},
		{Subject: "PE", Grade: 80.5},
	}
	got := TopSubjects(grades, 0)
	// Art and Math both average 80: first-seen order wins
	assert.Equal(t, []string{"PE", "Art", "Math"}, got.Labels)
	assert.Equal(t, []int{81, 80, 80}, got.Values)

	assert.Equal(t, Series{Labels: []string{}, Values: []int{}}, TopSubjects(nil, 5))
}

func TestDashboard(t *testing.T) {
	st := models.State{
		Students: []models.Student{{ID: 1}, {ID: 2}},
		Teachers: []models.Teacher{{ID: 3}},
		Grades:   []models.Grade{{Grade: 80}, {Grade: 85}},
		Attendance: []models.AttendanceRecord{
			{Status: models.StatusPresent},
			{Status: models.StatusPresent},
			{Status: models.StatusAbsent},
		},
	}
	assert.Equal(t, Totals{Students: 2, Teachers: 1, AverageGrade: 83, AttendanceRate: 67}, Dashboard(st))
	assert.Equal(t, Totals{}, Dashboard(models.State{}))
}
