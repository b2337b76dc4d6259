package repository

import (
	"context"
	"errors"

	"phone-auth-service/internal/user/domain"
)

// Duplicate-key errors surfaced from unique constraints so services can retry
// or translate them into field errors.
var (
	ErrDuplicatePhone      = errors.New("phone already registered")
	ErrDuplicateInviteCode = errors.New("invite code already in use")
	ErrDuplicateUsername   = errors.New("username already taken")
)

// ProfileUpdate carries a partial profile update. Nil fields are left untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// Empty reports whether the update carries no fields.
func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Email == nil && p.FirstName == nil && p.LastName == nil
}

// Repository defines persistence for users. Lookups return (nil, nil) when no
// row matches; errors are reserved for storage failures.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// SetAuthenticationCode overwrites the outstanding one-time code.
	SetAuthenticationCode(ctx context.Context, id, code string) error
	// ClearAuthenticationCode unsets the outstanding one-time code.
	ClearAuthenticationCode(ctx context.Context, id string) error
	// SetInvitedBy links the user to an inviter only when no inviter is set yet.
	// Returns false when the row was already linked (lost race or repeat activation).
	SetInvitedBy(ctx context.Context, id, inviterID string) (bool, error)
	// ListInvitedPhones returns the phones of all users invited by inviterID, ordered by creation time.
	ListInvitedPhones(ctx context.Context, inviterID string) ([]string, error)
	// UpdateProfile applies a partial profile update to the user.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
}
