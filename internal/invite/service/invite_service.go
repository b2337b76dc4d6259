// Package service implements one-time invite code activation.
package service

import (
	"context"
	"errors"

	userdomain "phone-auth-service/internal/user/domain"
	"phone-auth-service/internal/validation"
)

// Sentinel errors for the invite service; handler maps them to HTTP statuses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyActivated   = errors.New("invite code already activated")
	ErrInviteCodeNotFound = errors.New("invite code not found")
	ErrSelfReferral       = errors.New("cannot activate own invite code")
)

// UserRepo is the minimal user repository needed by the invite service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByInviteCode(ctx context.Context, code string) (*userdomain.User, error)
	SetInvitedBy(ctx context.Context, id, inviterID string) (bool, error)
}

// InviteService activates invite codes for authenticated users.
type InviteService struct {
	userRepo UserRepo
}

// NewInviteService returns an InviteService backed by the given repository.
func NewInviteService(userRepo UserRepo) *InviteService {
	return &InviteService{userRepo: userRepo}
}

// Activate records that the user identified by userID was invited by the
// owner of the given invite code. A user can activate at most one code, ever,
// and never their own. Checks run in a fixed order so the reported error is
// stable: already activated, then self referral, then unknown code. The final
// write is conditional on invited_by still being unset, which keeps
// activation one-time under concurrent requests.
func (s *InviteService) Activate(ctx context.Context, userID, code string) error {
	if err := validation.InviteCode(code); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Invited() {
		return ErrAlreadyActivated
	}
	if code == user.InviteCode {
		return ErrSelfReferral
	}
	inviter, err := s.userRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return err
	}
	if inviter == nil {
		return ErrInviteCodeNotFound
	}
	if inviter.ID == user.ID {
		return ErrSelfReferral
	}
	updated, err := s.userRepo.SetInvitedBy(ctx, user.ID, inviter.ID)
	if err != nil {
		return err
	}
	if !updated {
		// Another request won the race.
		return ErrAlreadyActivated
	}
	return nil
}
