package domain

import (
	"errors"
	"time"
)

// User is the core user entity. A user is created on the first auth-code
// request for an unseen phone number, or explicitly by the seed command.
type User struct {
	ID        string
	Phone     string // unique; format '+<10-15 digits>'; fixed at creation
	Username  string
	Email     string
	FirstName string
	LastName  string
	// AuthenticationCode is the outstanding one-time code, empty when unset.
	// Cleared on every verification attempt regardless of outcome.
	AuthenticationCode string
	// InviteCode is assigned exactly once at creation and never regenerated.
	InviteCode string
	// InvitedByID references the inviter; transitions from empty to set at most once.
	InvitedByID string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Phone == "" {
		return errors.New("phone is required")
	}
	if u.InviteCode == "" {
		return errors.New("invite code is required")
	}
	return nil
}

// Invited reports whether this user has already activated an invite code.
func (u *User) Invited() bool {
	return u.InvitedByID != ""
}
