package model

import (
	"time"
)

// User roles
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents a salon account. The store keys users by username;
// the admin is an ordinary row with RoleAdmin.
type User struct {
	ID            string    `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	BirthDate     string    `json:"birth_date" db:"birth_date"`
	Role          string    `json:"role" db:"role"`
	LoyaltyPoints int       `json:"loyalty_points" db:"loyalty_points"`
	TotalVisits   int       `json:"total_visits" db:"total_visits"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Birthday reports whether the account's birth month and day match the
// given date. A malformed or empty birth date is never a birthday.
func (u *User) Birthday(on time.Time) bool {
	if u.BirthDate == "" {
		return false
	}
	bd, err := time.Parse("2006-01-02", u.BirthDate)
	if err != nil {
		return false
	}
	return bd.Month() == on.Month() && bd.Day() == on.Day()
}

// RegisterRequest represents registration parameters
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birthDate" binding:"omitempty,bookingdate"`
}

// UpdateProfileRequest represents partial profile edits. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	NewPassword *string `json:"new_password" binding:"omitempty,min=6"`
	NewEmail    *string `json:"new_email" binding:"omitempty,email"`
	NewName     *string `json:"new_name"`
	NewPhone    *string `json:"new_phone"`
	NewUsername *string `json:"new_username"`
}

// ChangeCredentialsRequest replaces the admin credential pair.
type ChangeCredentialsRequest struct {
	NewUsername string `json:"new_username" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
