// Package validation provides field-level validators for request input.
// Each validator returns a *FieldError naming the offending field so handlers
// can surface structured 400 responses.
package validation

import (
	"fmt"
	"regexp"
)

// FieldError describes a validation failure for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	// MaxPhoneLength is the maximum phone length including the leading '+'.
	MaxPhoneLength = 16
	// AuthCodeLength is the length of an authentication code.
	AuthCodeLength = 4
	// InviteCodeLength is the length of an invite code.
	InviteCodeLength = 6
	// MaxUsernameLength matches the reference limit for usernames.
	MaxUsernameLength = 150
)

var (
	phoneRe         = regexp.MustCompile(`^\+\d{10,15}$`)
	digitsRe        = regexp.MustCompile(`^\d+$`)
	lettersDigitsRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	usernameRe      = regexp.MustCompile(`^[\w.@+-]+$`)
	emailRe         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Phone validates a phone number: '+' followed by 10–15 digits, at most 16 chars total.
func Phone(phone string) error {
	if phone == "" {
		return &FieldError{Field: "phone", Message: "phone is required"}
	}
	if len(phone) > MaxPhoneLength {
		return &FieldError{Field: "phone", Message: fmt.Sprintf("phone must be at most %d characters", MaxPhoneLength)}
	}
	if !phoneRe.MatchString(phone) {
		return &FieldError{Field: "phone", Message: "phone must match the format '+1234567890' (10-15 digits)"}
	}
	return nil
}

// AuthenticationCode validates a submitted authentication code: digits only, at most 4 characters.
func AuthenticationCode(code string) error {
	if code == "" {
		return &FieldError{Field: "authentication_code", Message: "authentication_code is required"}
	}
	if len(code) > AuthCodeLength {
		return &FieldError{Field: "authentication_code", Message: fmt.Sprintf("authentication_code must be at most %d characters", AuthCodeLength)}
	}
	if !digitsRe.MatchString(code) {
		return &FieldError{Field: "authentication_code", Message: "only digits are allowed"}
	}
	return nil
}

// InviteCode validates a submitted invite code: ASCII letters and digits only, at most 6 characters.
func InviteCode(code string) error {
	if code == "" {
		return &FieldError{Field: "invite_code", Message: "invite_code is required"}
	}
	if len(code) > InviteCodeLength {
		return &FieldError{Field: "invite_code", Message: fmt.Sprintf("invite_code must be at most %d characters", InviteCodeLength)}
	}
	if !lettersDigitsRe.MatchString(code) {
		return &FieldError{Field: "invite_code", Message: "only ASCII letters and digits are allowed"}
	}
	return nil
}

// Username validates an optional username: at most 150 characters,
// letters, digits and @/./+/-/_ only. Empty is allowed.
func Username(username string) error {
	if username == "" {
		return nil
	}
	if len(username) > MaxUsernameLength {
		return &FieldError{Field: "username", Message: fmt.Sprintf("username must be at most %d characters", MaxUsernameLength)}
	}
	if !usernameRe.MatchString(username) {
		return &FieldError{Field: "username", Message: "letters, digits and @/./+/-/_ only"}
	}
	return nil
}

// Email validates an optional email address. Empty is allowed.
func Email(email string) error {
	if email == "" {
		return nil
	}
	if !emailRe.MatchString(email) {
		return &FieldError{Field: "email", Message: "invalid email format"}
	}
	return nil
}
