package store

import (
	"context"
	"fmt"

	"school-dashboard-go/db"
	"school-dashboard-go/models"
	"school-dashboard-go/validate"
)

// Login signs in through the credential store and persists the user.
func (s *Store) Login(ctx context.Context, role models.Role, username, password string) (*models.User, error) {
	u, err := s.creds.Authenticate(ctx, role, username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.prefs
	prefs.CurrentUser = u
	if err := s.savePrefs(ctx, prefs); err != nil {
		return nil, err
	}
	cp := *u
	return &cp, nil
}

// Logout clears the signed-in user.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.prefs
	prefs.CurrentUser = nil
	return s.savePrefs(ctx, prefs)
}

// CurrentUser returns the signed-in user, nil if anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.CurrentUser == nil {
		return nil
	}
	u := *s.prefs.CurrentUser
	return &u
}

// Preferences returns the current preferences.
func (s *Store) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.prefs
	if p.CurrentUser != nil {
		u := *p.CurrentUser
		p.CurrentUser = &u
	}
	return p
}

// UpdatePreferences applies the non-nil fields of in.
func (s *Store) UpdatePreferences(ctx context.Context, in PreferencesInput) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validate.Struct(in); err != nil {
		return models.Preferences{}, err
	}

	prefs := s.prefs
	if in.Language != nil {
		prefs.Language = models.ParseLanguage(string(*in.Language))
	}
	if in.Theme != nil {
		prefs.Theme = *in.Theme
	}
	if in.SidebarOpen != nil {
		prefs.SidebarOpen = *in.SidebarOpen
	}
	if err := s.savePrefs(ctx, prefs); err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

func (s *Store) savePrefs(ctx context.Context, prefs models.Preferences) error {
	if err := db.SavePreferences(ctx, s.kv, prefs); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	s.prefs = prefs
	return nil
}
