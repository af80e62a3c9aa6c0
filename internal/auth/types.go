package auth

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// RegisterInput is the input to Service.Register.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginInput is the input to Service.Login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is the outcome of a successful registration or login:
// a signed access token plus the public view of the user.
type Result struct {
	AccessToken string
	User        *User
}

// Sentinel errors for auth operations.
var (
	// ErrAuthenticationFailed covers both unknown email and wrong
	// password. The two cases must stay indistinguishable to callers.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrTokenInvalid = errors.New("invalid token")
)
