// Package service implements the phone-based authentication flow: code
// request, code verification with token issuance, and access token refresh.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"phone-auth-service/internal/auth/sms"
	"phone-auth-service/internal/security"
	userdomain "phone-auth-service/internal/user/domain"
	userrepo "phone-auth-service/internal/user/repository"
	"phone-auth-service/internal/validation"
)

// Sentinel errors for the auth service; handler maps them to HTTP statuses.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
)

// inviteCodeAttempts bounds retries when a generated invite code collides
// with an existing one.
const inviteCodeAttempts = 3

// TokenPair holds the outcome of a successful verification.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       string
	Phone        string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByPhone(ctx context.Context, phone string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	SetAuthenticationCode(ctx context.Context, id, code string) error
	ClearAuthenticationCode(ctx context.Context, id string) error
}

// AuthService implements code request, verification, and refresh.
type AuthService struct {
	userRepo UserRepo
	sender   sms.Sender
	tokens   *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(userRepo UserRepo, sender sms.Sender, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sender:   sender,
		tokens:   tokens,
	}
}

// RequestCode finds or creates the user for the given phone number, stores a
// fresh four digit authentication code on it, and delivers the code via the
// configured sender. Returns the code so the handler can echo it when the
// service runs in test mode. A repeated request overwrites the previous code.
func (s *AuthService) RequestCode(ctx context.Context, phone string) (string, error) {
	if err := validation.Phone(phone); err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if user == nil {
		user, err = s.createUser(ctx, phone)
		if err != nil {
			return "", err
		}
	}
	code, err := security.GenerateAuthCode()
	if err != nil {
		return "", err
	}
	if err := s.userRepo.SetAuthenticationCode(ctx, user.ID, code); err != nil {
		return "", err
	}
	if err := s.sender.SendAuthCode(ctx, phone, code); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyAndIssueTokens checks the submitted code against the stored one and
// issues an access/refresh token pair on match. The stored code is cleared on
// every attempt, successful or not, so each code is usable at most once.
func (s *AuthService) VerifyAndIssueTokens(ctx context.Context, phone, code string) (*TokenPair, error) {
	if err := validation.Phone(phone); err != nil {
		return nil, err
	}
	if err := validation.AuthenticationCode(code); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	stored := user.AuthenticationCode
	if err := s.userRepo.ClearAuthenticationCode(ctx, user.ID); err != nil {
		return nil, err
	}
	if !security.CodeEqual(code, stored) {
		return nil, ErrAuthenticationFailed
	}
	refreshToken, _, _, err := s.tokens.IssueRefresh(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}
	accessToken, _, accessExp, err := s.tokens.IssueAccess(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
		UserID:       user.ID,
		Phone:        user.Phone,
	}, nil
}

// Refresh validates the refresh token and returns a new access token.
// Refresh tokens are stateless and are not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	userID, phone, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	accessToken, _, accessExp, err := s.tokens.IssueAccess(userID, phone)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken: accessToken,
		ExpiresAt:   accessExp,
		UserID:      userID,
		Phone:       phone,
	}, nil
}

// createUser inserts a new user with a generated invite code, retrying a few
// times if the code collides with an existing one.
func (s *AuthService) createUser(ctx context.Context, phone string) (*userdomain.User, error) {
	var lastErr error
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		inviteCode, err := security.GenerateInviteCode()
		if err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		user := &userdomain.User{
			ID:         uuid.New().String(),
			Phone:      phone,
			InviteCode: inviteCode,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := user.Validate(); err != nil {
			return nil, err
		}
		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, userrepo.ErrDuplicatePhone) {
			// Lost a create race with a concurrent request for the same phone.
			existing, getErr := s.userRepo.GetByPhone(ctx, phone)
			if getErr != nil {
				return nil, getErr
			}
			if existing != nil {
				return existing, nil
			}
			return nil, err
		}
		if !errors.Is(err, userrepo.ErrDuplicateInviteCode) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
