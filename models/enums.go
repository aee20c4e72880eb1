package models

import "strings"

// ClassLabel is one of the six school classes. Values are the labels
// persisted by the dashboard.
type ClassLabel string

const (
	ClassFirst  ClassLabel = "الأول"
	ClassSecond ClassLabel = "الثاني"
	ClassThird  ClassLabel = "الثالث"
	ClassFourth ClassLabel = "الرابع"
	ClassFifth  ClassLabel = "الخامس"
	ClassSixth  ClassLabel = "السادس"
)

// ClassLabels lists the classes in display order.
var ClassLabels = []ClassLabel{ClassFirst, ClassSecond, ClassThird, ClassFourth, ClassFifth, ClassSixth}

var classEnglish = map[ClassLabel]string{
	ClassFirst:  "First",
	ClassSecond: "Second",
	ClassThird:  "Third",
	ClassFourth: "Fourth",
	ClassFifth:  "Fifth",
	ClassSixth:  "Sixth",
}

// Valid reports whether c is one of the six classes.
func (c ClassLabel) Valid() bool {
	_, ok := classEnglish[c]
	return ok
}

// Label returns the class name in the given language.
func (c ClassLabel) Label(lang Language) string {
	if lang == LanguageEnglish {
		if en, ok := classEnglish[c]; ok {
			return en
		}
	}
	return string(c)
}

// Role is the role of a signed-in user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// AttendanceStatus is present or absent.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// Valid reports whether s is present or absent.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Language selects label text. Arabic is the default.
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// ParseLanguage falls back to Arabic for anything but "en".
func ParseLanguage(s string) Language {
	if Language(s) == LanguageEnglish {
		return LanguageEnglish
	}
	return LanguageArabic
}

// Theme is the light or dark colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme falls back to light for anything but "dark".
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// GradeBand is one of the five score ranges of the grade histogram.
type GradeBand int

const (
	BandExcellent  GradeBand = iota // [90,100]
	BandVeryGood                    // [80,90)
	BandGood                        // [70,80)
	BandAcceptable                  // [60,70)
	BandPoor                        // [0,60)
)

// GradeBands lists the bands in histogram order.
var GradeBands = []GradeBand{BandExcellent, BandVeryGood, BandGood, BandAcceptable, BandPoor}

// BandOf places a score in its band. Lower bounds are inclusive.
func BandOf(score float64) GradeBand {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 80:
		return BandVeryGood
	case score >= 70:
		return BandGood
	case score >= 60:
		return BandAcceptable
	default:
		return BandPoor
	}
}

// Label returns the band name in the given language.
func (b GradeBand) Label(lang Language) string {
	ar := [...]string{"ممتاز (90-100)", "جيد جداً (80-89)", "جيد (70-79)", "مقبول (60-69)", "ضعيف (أقل من 60)"}
	en := [...]string{"Excellent (90-100)", "Very Good (80-89)", "Good (70-79)", "Acceptable (60-69)", "Poor (< 60)"}
	if b < BandExcellent || b > BandPoor {
		return ""
	}
	if lang == LanguageEnglish {
		return en[b]
	}
	return ar[b]
}

// String returns the short band key used in API payloads.
func (b GradeBand) String() string {
	switch b {
	case BandExcellent:
		return "excellent"
	case BandVeryGood:
		return "very-good"
	case BandGood:
		return "good"
	case BandAcceptable:
		return "acceptable"
	case BandPoor:
		return "poor"
	}
	return "unknown"
}

// ParseClassLabel accepts the stored label or its English name.
func ParseClassLabel(s string) (ClassLabel, bool) {
	if c := ClassLabel(s); c.Valid() {
		return c, true
	}
	for c, en := range classEnglish {
		if strings.EqualFold(en, s) {
			return c, true
		}
	}
	return "", false
}
