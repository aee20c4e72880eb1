package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"school-dashboard-go/models"
	"school-dashboard-go/store"
	"school-dashboard-go/validate"
)

// ErrBadWorkbook is returned when the upload is not a readable workbook.
var ErrBadWorkbook = errors.New("invalid excel workbook")

// StudentAdder is the part of the store an import needs.
type StudentAdder interface {
	AddStudent(ctx context.Context, in store.StudentInput) (models.Student, error)
}

// RowIssue explains why a spreadsheet row was skipped.
type RowIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarises an import.
type ImportResult struct {
	Imported int        `json:"importedCount"`
	Skipped  []RowIssue `json:"skipped"`
}

// ImportStudents reads the first sheet of an Excel workbook and adds one
// student per row. Row 1 is a header; columns are name, age, class, phone
// and an optional country code. The class may be the stored label or its
// English name. Invalid rows are skipped and reported; a forbidden or
// persistence error stops the import.
func ImportStudents(ctx context.Context, file io.Reader, dst StudentAdder) (ImportResult, error) {
	res := ImportResult{Skipped: []RowIssue{}}

	f, err := excelize.OpenReader(file)
	if err != nil {
		log.Printf("Error opening Excel reader: %v", err)
		return res, fmt.Errorf("%w: %v", ErrBadWorkbook, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return res, fmt.Errorf("%w: no sheets", ErrBadWorkbook)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return res, fmt.Errorf("%w: reading sheet %s: %v", ErrBadWorkbook, sheetName, err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1
		if isBlank(row) {
			continue
		}

		in, reason := parseStudentRow(row)
		if reason != "" {
			res.Skipped = append(res.Skipped, RowIssue{Row: rowNum, Reason: reason})
			continue
		}
		if _, err := dst.AddStudent(ctx, in); err != nil {
			var verrs validate.Errors
			if errors.As(err, &verrs) {
				res.Skipped = append(res.Skipped, RowIssue{Row: rowNum, Reason: err.Error()})
				continue
			}
			return res, fmt.Errorf("row %d: %w", rowNum, err)
		}
		res.Imported++
	}

	log.Printf("Imported %d students from sheet %s, skipped %d rows", res.Imported, sheetName, len(res.Skipped))
	return res, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseStudentRow(row []string) (store.StudentInput, string) {
	in := store.StudentInput{
		Name:        cell(row, 0),
		Phone:       cell(row, 3),
		CountryCode: cell(row, 4),
	}
	age, err := strconv.Atoi(cell(row, 1))
	if err != nil {
		return in, fmt.Sprintf("invalid age %q", cell(row, 1))
	}
	in.Age = age
	class, ok := models.ParseClassLabel(cell(row, 2))
	if !ok {
		return in, fmt.Sprintf("unknown class %q", cell(row, 2))
	}
	in.Class = class
	return in, ""
}
