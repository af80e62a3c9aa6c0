package auth

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is a pragmatic email format check: one @, non-empty local
// part, and a domain with at least one dot. Full RFC 5322 validation is
// deliberately out of scope — the inbox is the real validator.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field of a request. It is
// returned whole so API responses can enumerate all problems at once
// instead of stopping at the first.
type ValidationErrors struct {
	Fields []FieldError
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// add appends a field error.
func (v *ValidationErrors) add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// IsValidEmail checks whether an address passes the format check.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateRegistration checks all registration fields and returns every
// violation. Phone is optional and never validated.
func ValidateRegistration(in RegisterInput) *ValidationErrors {
	var errs ValidationErrors

	if !IsValidEmail(in.Email) {
		errs.add("email", "Invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		errs.add("password", "Password must be at least 8 characters")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		errs.add("firstName", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs.add("lastName", "Last name is required")
	}

	if len(errs.Fields) > 0 {
		return &errs
	}
	return nil
}

// ValidateLogin checks login fields and returns every violation.
func ValidateLogin(in LoginInput) *ValidationErrors {
	var errs ValidationErrors

	if !IsValidEmail(in.Email) {
		errs.add("email", "Invalid email format")
	}
	if in.Password == "" {
		errs.add("password", "Password is required")
	}

	if len(errs.Fields) > 0 {
		return &errs
	}
	return nil
}
