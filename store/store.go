// Package store owns the application state: the four entity lists, the
// preferences and the signed-in user. Every mutation is access-checked,
// validated and persisted as a full snapshot before it becomes visible.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"school-dashboard-go/access"
	"school-dashboard-go/db"
	"school-dashboard-go/models"
	"school-dashboard-go/validate"
)

var (
	ErrForbidden      = errors.New("operation not allowed for current role")
	ErrNotFound       = errors.New("record not found")
	ErrUnknownStudent = errors.New("unknown student")
)

// Store is the single owner of the application state. Operations are
// serialised by one mutex.
type Store struct {
	mu     sync.Mutex
	kv     db.KV
	creds  access.Credentials
	state  models.State
	prefs  models.Preferences
	now    func() time.Time
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for ids, default dates and trend windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the persisted snapshot and preferences from kv.
func Open(ctx context.Context, kv db.KV, creds access.Credentials, opts ...Option) (*Store, error) {
	s := &Store{kv: kv, creds: creds, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	st, err := db.LoadState(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	prefs, err := db.LoadPreferences(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	var dropped int
	st.Attendance, dropped = dedupeAttendance(st.Attendance)
	if dropped > 0 {
		log.Printf("Dropped %d duplicate attendance records on load", dropped)
	}

	s.state = st
	s.prefs = prefs
	s.lastID = maxID(st)
	log.Printf("Loaded %d students, %d teachers, %d grades, %d attendance records",
		len(st.Students), len(st.Teachers), len(st.Grades), len(st.Attendance))
	return s, nil
}

// dedupeAttendance keeps the last record per (student, date).
func dedupeAttendance(records []models.AttendanceRecord) ([]models.AttendanceRecord, int) {
	type key struct {
		id   models.StudentID
		date models.Date
	}
	last := make(map[key]int, len(records))
	for i, r := range records {
		last[key{r.StudentID, r.Date}] = i
	}
	if len(last) == len(records) {
		return records, 0
	}
	out := make([]models.AttendanceRecord, 0, len(last))
	for i, r := range records {
		if last[key{r.StudentID, r.Date}] == i {
			out = append(out, r)
		}
	}
	return out, len(records) - len(out)
}

func maxID(st models.State) int64 {
	var m int64
	for _, x := range st.Students {
		m = max(m, int64(x.ID))
	}
	for _, x := range st.Teachers {
		m = max(m, x.ID)
	}
	for _, x := range st.Grades {
		m = max(m, x.ID)
	}
	for _, x := range st.Attendance {
		m = max(m, x.ID)
	}
	return m
}

// nextID mints a millisecond timestamp id, bumped to stay strictly increasing.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) today() models.Date {
	return models.DateOf(s.Now())
}

// Now returns the store's clock reading in UTC. Calendar days, such as
// default grade dates and the trend window, are UTC days.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

func (s *Store) authorize(op access.Operation) error {
	if !access.Can(s.prefs.CurrentUser, op) {
		return fmt.Errorf("%w: %s", ErrForbidden, op)
	}
	return nil
}

// commit persists next and only then makes it the current state.
func (s *Store) commit(ctx context.Context, next models.State) error {
	if err := db.SaveState(ctx, s.kv, next); err != nil {
		log.Printf("Error persisting state: %v", err)
		return fmt.Errorf("failed to persist state: %w", err)
	}
	s.state = next
	return nil
}

func (s *Store) hasStudent(id models.StudentID) bool {
	return slices.ContainsFunc(s.state.Students, func(st models.Student) bool { return st.ID == id })
}

// State returns a copy of all entity lists.
func (s *Store) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.State{
		Students:   slices.Clone(s.state.Students),
		Teachers:   slices.Clone(s.state.Teachers),
		Grades:     slices.Clone(s.state.Grades),
		Attendance: slices.Clone(s.state.Attendance),
	}
}

// --- Students ---

// AddStudent validates in and appends a new student.
func (s *Store) AddStudent(ctx context.Context, in StudentInput) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageStudents); err != nil {
		return models.Student{}, err
	}
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return models.Student{}, err
	}

	st := models.Student{
		ID:    models.StudentID(s.nextID()),
		Name:  in.Name,
		Age:   in.Age,
		Class: in.Class,
		Phone: joinPhone(in.CountryCode, in.Phone),
	}
	next := s.state
	next.Students = append(slices.Clone(s.state.Students), st)
	if err := s.commit(ctx, next); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// UpdateStudent replaces every field of student id.
func (s *Store) UpdateStudent(ctx context.Context, id models.StudentID, in StudentInput) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageStudents); err != nil {
		return models.Student{}, err
	}
	i := slices.IndexFunc(s.state.Students, func(st models.Student) bool { return st.ID == id })
	if i < 0 {
		return models.Student{}, fmt.Errorf("%w: student %d", ErrNotFound, id)
	}
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return models.Student{}, err
	}

	next := s.state
	next.Students = slices.Clone(s.state.Students)
	st := &next.Students[i]
	st.Name = in.Name
	st.Age = in.Age
	st.Class = in.Class
	st.Phone = joinPhone(in.CountryCode, in.Phone)
	if err := s.commit(ctx, next); err != nil {
		return models.Student{}, err
	}
	return *st, nil
}

// DeleteStudent removes the student together with its grades and attendance.
func (s *Store) DeleteStudent(ctx context.Context, id models.StudentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageStudents); err != nil {
		return err
	}
	if !s.hasStudent(id) {
		return fmt.Errorf("%w: student %d", ErrNotFound, id)
	}
	return s.commit(ctx, cascadeStudent(s.state, id))
}

// cascadeStudent returns st without student id and anything referencing it.
func cascadeStudent(st models.State, id models.StudentID) models.State {
	next := st
	next.Students = filter(st.Students, func(x models.Student) bool { return x.ID != id })
	next.Grades = filter(st.Grades, func(g models.Grade) bool { return g.StudentID != id })
	next.Attendance = filter(st.Attendance, func(a models.AttendanceRecord) bool { return a.StudentID != id })
	return next
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, x := range list {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

// --- Teachers ---

// AddTeacher validates in and appends a new teacher.
func (s *Store) AddTeacher(ctx context.Context, in TeacherInput) (models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageTeachers); err != nil {
		return models.Teacher{}, err
	}
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return models.Teacher{}, err
	}

	t := models.Teacher{
		ID:      s.nextID(),
		Name:    in.Name,
		Subject: in.Subject,
		Phone:   joinPhone(in.CountryCode, in.Phone),
		Email:   in.Email,
	}
	next := s.state
	next.Teachers = append(slices.Clone(s.state.Teachers), t)
	if err := s.commit(ctx, next); err != nil {
		return models.Teacher{}, err
	}
	return t, nil
}

// UpdateTeacher replaces every field of teacher id.
func (s *Store) UpdateTeacher(ctx context.Context, id int64, in TeacherInput) (models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageTeachers); err != nil {
		return models.Teacher{}, err
	}
	i := slices.IndexFunc(s.state.Teachers, func(t models.Teacher) bool { return t.ID == id })
	if i < 0 {
		return models.Teacher{}, fmt.Errorf("%w: teacher %d", ErrNotFound, id)
	}
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return models.Teacher{}, err
	}

	next := s.state
	next.Teachers = slices.Clone(s.state.Teachers)
	t := &next.Teachers[i]
	t.Name = in.Name
	t.Subject = in.Subject
	t.Phone = joinPhone(in.CountryCode, in.Phone)
	t.Email = in.Email
	if err := s.commit(ctx, next); err != nil {
		return models.Teacher{}, err
	}
	return *t, nil
}

// DeleteTeacher removes teacher id.
func (s *Store) DeleteTeacher(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageTeachers); err != nil {
		return err
	}
	if !slices.ContainsFunc(s.state.Teachers, func(t models.Teacher) bool { return t.ID == id }) {
		return fmt.Errorf("%w: teacher %d", ErrNotFound, id)
	}
	next := s.state
	next.Teachers = filter(s.state.Teachers, func(t models.Teacher) bool { return t.ID != id })
	return s.commit(ctx, next)
}

// --- Grades ---

// AddGrade records a grade for an existing student.
func (s *Store) AddGrade(ctx context.Context, in GradeInput) (models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageGrades); err != nil {
		return models.Grade{}, err
	}
	in.Subject = strings.TrimSpace(in.Subject)
	if in.Date == "" {
		in.Date = s.today()
	}
	if err := validate.Struct(in); err != nil {
		return models.Grade{}, err
	}
	if !s.hasStudent(in.StudentID) {
		return models.Grade{}, fmt.Errorf("%w: %d", ErrUnknownStudent, in.StudentID)
	}

	g := models.Grade{
		ID:        s.nextID(),
		StudentID: in.StudentID,
		Subject:   in.Subject,
		Grade:     *in.Grade,
		Date:      in.Date,
	}
	next := s.state
	next.Grades = append(slices.Clone(s.state.Grades), g)
	if err := s.commit(ctx, next); err != nil {
		return models.Grade{}, err
	}
	return g, nil
}

// UpdateGrade changes subject, score and date of grade id. An empty date
// keeps the current one.
func (s *Store) UpdateGrade(ctx context.Context, id int64, in GradeUpdate) (models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageGrades); err != nil {
		return models.Grade{}, err
	}
	i := slices.IndexFunc(s.state.Grades, func(g models.Grade) bool { return g.ID == id })
	if i < 0 {
		return models.Grade{}, fmt.Errorf("%w: grade %d", ErrNotFound, id)
	}
	in.Subject = strings.TrimSpace(in.Subject)
	if in.Date == "" {
		in.Date = s.state.Grades[i].Date
	}
	if err := validate.Struct(in); err != nil {
		return models.Grade{}, err
	}

	next := s.state
	next.Grades = slices.Clone(s.state.Grades)
	g := &next.Grades[i]
	g.Subject = in.Subject
	g.Grade = *in.Grade
	g.Date = in.Date
	if err := s.commit(ctx, next); err != nil {
		return models.Grade{}, err
	}
	return *g, nil
}

// DeleteGrade removes grade id.
func (s *Store) DeleteGrade(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(access.ManageGrades); err != nil {
		return err
	}
	if !slices.ContainsFunc(s.state.Grades, func(g models.Grade) bool { return g.ID == id }) {
		return fmt.Errorf("%w: grade %d", ErrNotFound, id)
	}
	next := s.state
	next.Grades = filter(s.state.Grades, func(g models.Grade) bool { return g.ID != id })
	return s.commit(ctx, next)
}
