// Package service implements the user profile projection: reading a profile
// with its referral details and applying partial profile updates.
package service

import (
	"context"
	"errors"
	"strings"

	"phone-auth-service/internal/policy/engine"
	"phone-auth-service/internal/user/domain"
	"phone-auth-service/internal/user/repository"
	"phone-auth-service/internal/validation"
)

// Sentinel errors for the profile service; handler maps them to HTTP statuses.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access denied")
)

// Profile is the outward projection of a user. Exactly one of InvitedByCode
// and ActivateInviteCode is set: the former once the user has activated an
// invite code, the latter with the activation endpoint URL until then.
type Profile struct {
	Phone              string   `json:"phone"`
	Username           string   `json:"username"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	InviteCode         string   `json:"invite_code"`
	InvitedByCode      *string  `json:"invited_by_code,omitempty"`
	ActivateInviteCode *string  `json:"activate_invite_code,omitempty"`
	InvitedUsers       []string `json:"invited_users"`
}

// UserRepo is the minimal user repository needed by the profile service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ListInvitedPhones(ctx context.Context, inviterID string) ([]string, error)
	UpdateProfile(ctx context.Context, id string, upd repository.ProfileUpdate) error
}

// ProfileService reads and updates user profiles, guarded by the profile
// access policy.
type ProfileService struct {
	userRepo UserRepo
	policy   engine.Evaluator
	// activateURL is the absolute URL of the invite activation endpoint,
	// shown on profiles that have not activated a code yet.
	activateURL string
}

// NewProfileService returns a ProfileService with the given dependencies.
// publicBaseURL is the externally visible base URL of the service.
func NewProfileService(userRepo UserRepo, policy engine.Evaluator, publicBaseURL string) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		policy:      policy,
		activateURL: strings.TrimRight(publicBaseURL, "/") + "/users/activate-invite-code",
	}
}

// Get returns the profile for the given phone number. Only the profile owner
// and admins may read a profile.
func (s *ProfileService) Get(ctx context.Context, requesterID, phone string) (*Profile, error) {
	target, err := s.authorize(ctx, requesterID, phone)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, target)
}

// Update applies a partial profile update and returns the refreshed profile.
// Phone and invite code are fixed at creation and cannot be changed here.
func (s *ProfileService) Update(ctx context.Context, requesterID, phone string, upd repository.ProfileUpdate) (*Profile, error) {
	target, err := s.authorize(ctx, requesterID, phone)
	if err != nil {
		return nil, err
	}
	if upd.Username != nil {
		if err := validation.Username(*upd.Username); err != nil {
			return nil, err
		}
	}
	if upd.Email != nil {
		if err := validation.Email(*upd.Email); err != nil {
			return nil, err
		}
	}
	if !upd.Empty() {
		if err := s.userRepo.UpdateProfile(ctx, target.ID, upd); err != nil {
			return nil, err
		}
		target, err = s.userRepo.GetByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, ErrUserNotFound
		}
	}
	return s.project(ctx, target)
}

// authorize loads the target user and checks the requester may access it.
// The not-found check runs before the policy check so admins get a proper
// 404 for unknown phones; non-owners get ErrForbidden either way.
func (s *ProfileService) authorize(ctx context.Context, requesterID, phone string) (*domain.User, error) {
	if err := validation.Phone(phone); err != nil {
		return nil, err
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrForbidden
	}
	target, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if target == nil {
		// Hide existence from non-admins: an unauthorized requester gets
		// ErrForbidden whether or not the phone exists.
		allowed, perr := s.policy.AllowProfileAccess(ctx, requester, "")
		if perr != nil {
			return nil, perr
		}
		if !allowed {
			return nil, ErrForbidden
		}
		return nil, ErrUserNotFound
	}
	allowed, err := s.policy.AllowProfileAccess(ctx, requester, target.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	return target, nil
}

// project builds the outward profile for a user.
func (s *ProfileService) project(ctx context.Context, u *domain.User) (*Profile, error) {
	invited, err := s.userRepo.ListInvitedPhones(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		Phone:        u.Phone,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		InviteCode:   u.InviteCode,
		InvitedUsers: invited,
	}
	if u.Invited() {
		inviter, err := s.userRepo.GetByID(ctx, u.InvitedByID)
		if err != nil {
			return nil, err
		}
		if inviter != nil {
			code := inviter.InviteCode
			p.InvitedByCode = &code
		}
	} else {
		url := s.activateURL
		p.ActivateInviteCode = &url
	}
	return p, nil
}
