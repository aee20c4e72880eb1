// Package access decides which roles may run which mutations, and who may
// sign in.
//
// The policy is a display gate, not a trust boundary: with nobody signed in
// everything is allowed.
package access

import "school-dashboard-go/models"

// Operation is a gated mutation.
type Operation string

const (
	ManageStudents   Operation = "students"
	ManageTeachers   Operation = "teachers"
	ManageGrades     Operation = "grades"
	ManageAttendance Operation = "attendance"
)

var operationRoles = map[Operation][]models.Role{
	ManageStudents:   {models.RoleAdmin, models.RoleTeacher},
	ManageTeachers:   {models.RoleAdmin},
	ManageGrades:     {models.RoleAdmin, models.RoleTeacher},
	ManageAttendance: {models.RoleAdmin, models.RoleTeacher},
}

// IsAllowed is true when nobody is signed in or the user's role is in roles.
func IsAllowed(user *models.User, roles ...models.Role) bool {
	if user == nil {
		return true
	}
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}

// RolesFor returns the roles allowed to run op. Unknown operations allow nobody.
func RolesFor(op Operation) []models.Role {
	return operationRoles[op]
}

// Can reports whether user may run op.
func Can(user *models.User, op Operation) bool {
	return IsAllowed(user, RolesFor(op)...)
}

// CanListStudents hides the student roster from student accounts.
func CanListStudents(user *models.User) bool {
	return user == nil || user.Role != models.RoleStudent
}
