package access

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"school-dashboard-go/models"
)

// ErrInvalidCredentials is returned for any failed sign-in.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials resolves a sign-in attempt to a user.
type Credentials interface {
	Authenticate(ctx context.Context, role models.Role, username, password string) (*models.User, error)
}

type account struct {
	user models.User
	hash []byte
}

// DemoCredentials is the fixed set of demo accounts.
type DemoCredentials struct {
	accounts []account
}

// DemoAccount is a demo login as shown on the sign-in screen.
type DemoAccount struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
}

// DemoAccounts are the built-in logins.
var DemoAccounts = []DemoAccount{
	{Role: models.RoleAdmin, Username: "admin", Password: "admin123", Name: "المدير"},
	{Role: models.RoleTeacher, Username: "teacher", Password: "teach123", Name: "معلم"},
	{Role: models.RoleStudent, Username: "student", Password: "stud123", Name: "طالب"},
}

// NewDemoCredentials hashes the demo passwords with the given bcrypt cost.
// A cost of 0 uses bcrypt.DefaultCost.
func NewDemoCredentials(cost int) (*DemoCredentials, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	d := &DemoCredentials{accounts: make([]account, 0, len(DemoAccounts))}
	for _, a := range DemoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password for %s: %w", a.Username, err)
		}
		d.accounts = append(d.accounts, account{
			user: models.User{Role: a.Role, Username: a.Username, Name: a.Name},
			hash: hash,
		})
	}
	return d, nil
}

// Authenticate matches role, username and password together.
func (d *DemoCredentials) Authenticate(_ context.Context, role models.Role, username, password string) (*models.User, error) {
	for _, a := range d.accounts {
		if a.user.Role != role || a.user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		u := a.user
		return &u, nil
	}
	return nil, ErrInvalidCredentials
}
