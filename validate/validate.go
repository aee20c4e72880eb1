// Package validate holds the field predicates applied to every form input
// and the struct validator that reports one message per failing field.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"school-dashboard-go/models"
)

// Message keys understood by the UI string table.
const (
	MsgFillFields   = "error_fill_fields"
	MsgInvalidAge   = "error_invalid_age"
	MsgInvalidPhone = "error_invalid_phone"
	MsgInvalidEmail = "error_invalid_email"
	MsgInvalidGrade = "error_invalid_grade"
)

var (
	phoneRegex = regexp.MustCompile(`^[0-9]{8,15}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	spaceRegex = regexp.MustCompile(`\s`)
)

// ValidName requires at least two characters after trimming.
func ValidName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= 2
}

// ValidAge accepts ages 5 through 25.
func ValidAge(age int) bool { return age >= 5 && age <= 25 }

// ValidPhone accepts 8 to 15 digits once whitespace is removed.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(spaceRegex.ReplaceAllString(phone, ""))
}

// ValidEmail checks a basic local@domain.tld shape.
func ValidEmail(email string) bool { return emailRegex.MatchString(email) }

// ValidGrade accepts scores 0 through 100.
func ValidGrade(grade float64) bool { return grade >= 0 && grade <= 100 }

// FieldError is a failed field and the message key to show next to it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned when one or more fields fail validation.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// tag -> message key
var tagMessages = map[string]string{
	"required":    MsgFillFields,
	"personname":  MsgFillFields,
	"classlabel":  MsgFillFields,
	"isodate":     MsgFillFields,
	"status":      MsgFillFields,
	"theme":       MsgFillFields,
	"age":         MsgInvalidAge,
	"phone":       MsgInvalidPhone,
	"simpleemail": MsgInvalidEmail,
	"score":       MsgInvalidGrade,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("age", func(fl validator.FieldLevel) bool {
		return ValidAge(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("score", func(fl validator.FieldLevel) bool {
		return ValidGrade(fl.Field().Float())
	})
	_ = v.RegisterValidation("classlabel", func(fl validator.FieldLevel) bool {
		return models.ClassLabel(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return models.Theme(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Struct validates s against its `validate` tags. A failure is always
// returned as Errors with one entry per field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe)
		if out.Has(field) {
			continue
		}
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = MsgFillFields
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldPath is the JSON path of the failing field below the validated
// struct, e.g. "marks[1].status".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
