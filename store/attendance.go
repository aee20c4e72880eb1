package store

import (
	"context"
	"fmt"
	"slices"

	"school-dashboard-go/access"
	"school-dashboard-go/models"
	"school-dashboard-go/validate"
)

// SheetRow is one student on a class's attendance sheet.
type SheetRow struct {
	StudentID models.StudentID        `json:"studentId"`
	Name      string                  `json:"name"`
	Status    models.AttendanceStatus `json:"status"`
	Recorded  bool                    `json:"recorded"`
}

// AttendanceSheet lists the class's students with their status on date.
// Students without a record default to present.
func (s *Store) AttendanceSheet(class models.ClassLabel, date models.Date) ([]SheetRow, error) {
	if !class.Valid() {
		return nil, validate.Errors{{Field: "class", Message: validate.MsgFillFields}}
	}
	if _, err := models.ParseDate(string(date)); err != nil {
		return nil, validate.Errors{{Field: "date", Message: validate.MsgFillFields}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status := make(map[models.StudentID]models.AttendanceStatus)
	for _, r := range s.state.Attendance {
		if r.Date == date {
			status[r.StudentID] = r.Status
		}
	}
	rows := []SheetRow{}
	for _, st := range s.state.Students {
		if st.Class != class {
			continue
		}
		row := SheetRow{StudentID: st.ID, Name: st.Name, Status: models.StatusPresent}
		if v, ok := status[st.ID]; ok {
			row.Status = v
			row.Recorded = true
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveAttendance replaces the class's records for the day with in.Marks.
// Students of the class without a mark end up with no record that day.
func (s *Store) SaveAttendance(ctx context.Context, in AttendanceInput) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageAttendance); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	inClass := make(map[models.StudentID]bool)
	for _, st := range s.state.Students {
		if st.Class == in.Class {
			inClass[st.ID] = true
		}
	}
	marks := make(map[models.StudentID]models.AttendanceStatus, len(in.Marks))
	for _, m := range in.Marks {
		if !inClass[m.StudentID] {
			return nil, fmt.Errorf("%w: %d is not in class %s", ErrUnknownStudent, m.StudentID, in.Class)
		}
		marks[m.StudentID] = m.Status
	}

	next := s.state
	next.Attendance = filter(s.state.Attendance, func(r models.AttendanceRecord) bool {
		return !(inClass[r.StudentID] && r.Date == in.Date)
	})
	saved := []models.AttendanceRecord{}
	for _, st := range s.state.Students {
		status, ok := marks[st.ID]
		if !ok {
			continue
		}
		saved = append(saved, models.AttendanceRecord{
			ID:        s.nextID(),
			StudentID: st.ID,
			Date:      in.Date,
			Status:    status,
		})
	}
	next.Attendance = append(next.Attendance, saved...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return slices.Clone(saved), nil
}
