package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"school-dashboard-go/models"
)

func TestIsAllowed(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	teacher := &models.User{Role: models.RoleTeacher}
	student := &models.User{Role: models.RoleStudent}

	tests := []struct {
		name  string
		user  *models.User
		roles []models.Role
		want  bool
	}{
		{"anonymous, no roles", nil, nil, true},
		{"anonymous, admin only", nil, []models.Role{models.RoleAdmin}, true},
		{"admin in set", admin, []models.Role{models.RoleAdmin, models.RoleTeacher}, true},
		{"teacher not in set", teacher, []models.Role{models.RoleAdmin}, false},
		{"student not in set", student, []models.Role{models.RoleAdmin, models.RoleTeacher}, false},
		{"student in set", student, []models.Role{models.RoleStudent}, true},
		{"signed in, empty set", admin, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.user, tt.roles...))
		})
	}
}

func TestCan(t *testing.T) {
	teacher := &models.User{Role: models.RoleTeacher}
	assert.True(t, Can(teacher, ManageStudents))
	assert.True(t, Can(teacher, ManageGrades))
	assert.True(t, Can(teacher, ManageAttendance))
	assert.False(t, Can(teacher, ManageTeachers))
	assert.False(t, Can(teacher, Operation("payroll")))
	assert.True(t, Can(nil, ManageTeachers))

	assert.False(t, CanListStudents(&models.User{Role: models.RoleStudent}))
	assert.True(t, CanListStudents(teacher))
	assert.True(t, CanListStudents(nil))
}

func TestDemoCredentials(t *testing.T) {
	creds, err := NewDemoCredentials(bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	u, err := creds.Authenticate(ctx, models.RoleTeacher, "teacher", "teach123")
	require.NoError(t, err)
	assert.Equal(t, &models.User{Role: models.RoleTeacher, Username: "teacher", Name: "معلم"}, u)

	_, err = creds.Authenticate(ctx, models.RoleAdmin, "teacher", "teach123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = creds.Authenticate(ctx, models.RoleAdmin, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
