// internal/auth/models.go
// Data structures for the authentication system.

package auth

import (
	"time"
)

// Gender of an account holder. Matching only pairs users of the same gender,
// so this is load-bearing for the recommendation pipeline.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// User represents an account in the system
type User struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Gender          Gender    `json:"gender" db:"gender"`
	BirthDate       time.Time `json:"birth_date" db:"birth_date"`
	University      string    `json:"university" db:"university"`
	StudentVerified bool      `json:"student_verified" db:"student_verified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest is what the client sends to create an account
type SignupRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=100"`
	Gender     string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	BirthDate  string `json:"birth_date" validate:"required"` // YYYY-MM-DD
	University string `json:"university" validate:"required,min=1,max=200"`
}

// LoginRequest authenticates by email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries a token pair and the authenticated user
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
