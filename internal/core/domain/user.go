package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role distinguishes the three dashboard audiences.
type Role string

const (
	RoleAgent  Role = "agent"
	RoleOwner  Role = "owner"
	RoleTenant Role = "tenant"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAgent, RoleOwner, RoleTenant:
		return true
	}
	return false
}

// User is an account of any role. Agent-specific fields (Company, ReraBRN)
// stay empty for owners and tenants.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Name           string
	Phone          string
	Role           Role
	Company        string
	ReraBRN        string
	ReraVerifiedAt *time.Time
	Rating         float64
	CreatedAt      time.Time
}

// Claims are the fields embedded into a JWT token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// NewUser creates a user with a bcrypt-hashed password.
func NewUser(email, password, name, phone string, role Role) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Phone:        phone,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword compares a candidate password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword replaces the stored hash with a hash of the new password.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// VerifyRera marks the agent's broker registration number as verified.
func (u *User) VerifyRera(brn string, at time.Time) error {
	if u.Role != RoleAgent {
		return ErrForbidden
	}
	u.ReraBRN = brn
	t := at.UTC()
	u.ReraVerifiedAt = &t
	return nil
}
