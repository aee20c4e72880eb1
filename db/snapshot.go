package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"school-dashboard-go/models"
)

// Persisted keys.
const (
	StudentsKey      = "students"
	TeachersKey      = "teachers"
	GradesKey        = "grades"
	AttendanceKey    = "attendance"
	SchemaVersionKey = "schemaVersion"
	LanguageKey      = "language"
	ThemeKey         = "theme"
	SidebarOpenKey   = "sidebarOpen"
	CurrentUserKey   = "currentUser"
)

// SchemaVersion is written with every save. Snapshots without a version
// are the unversioned layout, which is identical to version 1.
const SchemaVersion = 1

// ErrNewerSchema is returned when the substrate was written by a newer build.
var ErrNewerSchema = errors.New("snapshot schema is newer than supported")

// BatchWriter is implemented by substrates that can write several keys as a unit.
type BatchWriter interface {
	SetMany(ctx context.Context, pairs map[string]string) error
}

// LoadState reads the four entity snapshots. A missing or unparsable
// snapshot loads as an empty list; only substrate failures are errors.
func LoadState(ctx context.Context, kv KV) (models.State, error) {
	var st models.State

	version, err := loadVersion(ctx, kv)
	if err != nil {
		return st, err
	}
	if version > SchemaVersion {
		return st, fmt.Errorf("%w: found %d, supported %d", ErrNewerSchema, version, SchemaVersion)
	}

	if st.Students, err = loadList[models.Student](ctx, kv, StudentsKey); err != nil {
		return st, err
	}
	if st.Teachers, err = loadList[models.Teacher](ctx, kv, TeachersKey); err != nil {
		return st, err
	}
	if st.Grades, err = loadList[models.Grade](ctx, kv, GradesKey); err != nil {
		return st, err
	}
	if st.Attendance, err = loadList[models.AttendanceRecord](ctx, kv, AttendanceKey); err != nil {
		return st, err
	}
	return st, nil
}

func loadVersion(ctx context.Context, kv KV) (int, error) {
	raw, err := kv.Get(ctx, SchemaVersionKey)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring unreadable schema version %q", raw)
		return 0, nil
	}
	return v, nil
}

func loadList[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("Snapshot %s is malformed, loading it as empty: %v", key, err)
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// SaveState overwrites all four snapshots and the schema version.
func SaveState(ctx context.Context, kv KV, st models.State) error {
	pairs := make(map[string]string, 5)
	for key, list := range map[string]any{
		StudentsKey:   nonNil(st.Students),
		TeachersKey:   nonNil(st.Teachers),
		GradesKey:     nonNil(st.Grades),
		AttendanceKey: nonNil(st.Attendance),
	} {
		b, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to encode %s snapshot: %w", key, err)
		}
		pairs[key] = string(b)
	}
	pairs[SchemaVersionKey] = strconv.Itoa(SchemaVersion)

	if bw, ok := kv.(BatchWriter); ok {
		return bw.SetMany(ctx, pairs)
	}
	for _, key := range []string{StudentsKey, TeachersKey, GradesKey, AttendanceKey, SchemaVersionKey} {
		if err := kv.Set(ctx, key, pairs[key]); err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// LoadPreferences reads the scalar settings, falling back to defaults.
func LoadPreferences(ctx context.Context, kv KV) (models.Preferences, error) {
	prefs := models.DefaultPreferences()

	lang, err := getOptional(ctx, kv, LanguageKey)
	if err != nil {
		return prefs, err
	}
	if lang != "" {
		prefs.Language = models.ParseLanguage(lang)
	}

	theme, err := getOptional(ctx, kv, ThemeKey)
	if err != nil {
		return prefs, err
	}
	if theme != "" {
		prefs.Theme = models.ParseTheme(theme)
	}

	sidebar, err := getOptional(ctx, kv, SidebarOpenKey)
	if err != nil {
		return prefs, err
	}
	prefs.SidebarOpen = sidebar != "false"

	rawUser, err := getOptional(ctx, kv, CurrentUserKey)
	if err != nil {
		return prefs, err
	}
	if rawUser != "" && rawUser != "null" {
		var u models.User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil || !u.Role.Valid() {
			log.Printf("Ignoring malformed %s", CurrentUserKey)
		} else {
			prefs.CurrentUser = &u
		}
	}
	return prefs, nil
}

// SavePreferences writes the scalar settings. A nil CurrentUser removes the key.
func SavePreferences(ctx context.Context, kv KV, prefs models.Preferences) error {
	if err := kv.Set(ctx, LanguageKey, string(prefs.Language)); err != nil {
		return err
	}
	if err := kv.Set(ctx, ThemeKey, string(prefs.Theme)); err != nil {
		return err
	}
	if err := kv.Set(ctx, SidebarOpenKey, strconv.FormatBool(prefs.SidebarOpen)); err != nil {
		return err
	}
	if prefs.CurrentUser == nil {
		return kv.Remove(ctx, CurrentUserKey)
	}
	b, err := json.Marshal(prefs.CurrentUser)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", CurrentUserKey, err)
	}
	return kv.Set(ctx, CurrentUserKey, string(b))
}

func getOptional(ctx context.Context, kv KV, key string) (string, error) {
	v, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
