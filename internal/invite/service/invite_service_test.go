package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	userdomain "phone-auth-service/internal/user/domain"
	"phone-auth-service/internal/validation"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*userdomain.User // keyed by ID
}

func newFakeUserRepo(users ...*userdomain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*userdomain.User{}}
	for _, u := range users {
		copied := *u
		r.users[u.ID] = &copied
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByInviteCode(_ context.Context, code string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.InviteCode == code {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetInvitedBy(_ context.Context, id, inviterID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.InvitedByID != "" {
		return false, nil
	}
	u.InvitedByID = inviterID
	return true, nil
}

func testUsers() (alice, bob *userdomain.User) {
	alice = &userdomain.User{ID: "alice-id", Phone: "+12025550001", InviteCode: "abc123"}
	bob = &userdomain.User{ID: "bob-id", Phone: "+12025550002", InviteCode: "xyz789"}
	return alice, bob
}

func TestActivate_Success(t *testing.T) {
	alice, bob := testUsers()
	repo := newFakeUserRepo(alice, bob)
	svc := NewInviteService(repo)

	if err := svc.Activate(context.Background(), bob.ID, alice.InviteCode); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), bob.ID)
	if got.InvitedByID != alice.ID {
		t.Errorf("InvitedByID = %q, want %q", got.InvitedByID, alice.ID)
	}
}

func TestActivate_InvalidFormat(t *testing.T) {
	alice, bob := testUsers()
	svc := NewInviteService(newFakeUserRepo(alice, bob))

	for _, code := range []string{"", "abc1234", "abc-12"} {
		err := svc.Activate(context.Background(), bob.ID, code)
		var fieldErr *validation.FieldError
		if !errors.As(err, &fieldErr) {
			t.Errorf("code %q: err = %v, want FieldError", code, err)
		}
	}
}

func TestActivate_AlreadyActivated(t *testing.T) {
	alice, bob := testUsers()
	repo := newFakeUserRepo(alice, bob)
	svc := NewInviteService(repo)

	if err := svc.Activate(context.Background(), bob.ID, alice.InviteCode); err != nil {
		t.Fatalf("first Activate: %v", err)
	}
	err := svc.Activate(context.Background(), bob.ID, alice.InviteCode)
	if !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("err = %v, want ErrAlreadyActivated", err)
	}
}

func TestActivate_AlreadyActivatedBeforeCodeLookup(t *testing.T) {
	// An activated user submitting a nonexistent code gets the
	// already-activated error, not the unknown-code error.
	alice, bob := testUsers()
	bob.InvitedByID = alice.ID
	svc := NewInviteService(newFakeUserRepo(alice, bob))

	err := svc.Activate(context.Background(), bob.ID, "nosuch")
	if !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("err = %v, want ErrAlreadyActivated", err)
	}
}

func TestActivate_UnknownCode(t *testing.T) {
	alice, bob := testUsers()
	svc := NewInviteService(newFakeUserRepo(alice, bob))

	err := svc.Activate(context.Background(), bob.ID, "nosuch")
	if !errors.Is(err, ErrInviteCodeNotFound) {
		t.Fatalf("err = %v, want ErrInviteCodeNotFound", err)
	}
}

func TestActivate_SelfReferral(t *testing.T) {
	alice, bob := testUsers()
	repo := newFakeUserRepo(alice, bob)
	svc := NewInviteService(repo)

	err := svc.Activate(context.Background(), bob.ID, bob.InviteCode)
	if !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("err = %v, want ErrSelfReferral", err)
	}
	got, _ := repo.GetByID(context.Background(), bob.ID)
	if got.InvitedByID != "" {
		t.Error("self referral must not set InvitedByID")
	}
}

func TestActivate_UnknownUser(t *testing.T) {
	alice, _ := testUsers()
	svc := NewInviteService(newFakeUserRepo(alice))

	err := svc.Activate(context.Background(), "ghost-id", alice.InviteCode)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestActivate_ConcurrentLoser(t *testing.T) {
	// Simulate losing the conditional update race: invited_by gets set
	// between the read and the write.
	alice, bob := testUsers()
	carol := &userdomain.User{ID: "carol-id", Phone: "+12025550003", InviteCode: "def456"}
	repo := newFakeUserRepo(alice, bob, carol)
	svc := NewInviteService(&racingRepo{fakeUserRepo: repo, winnerInviter: carol.ID})

	err := svc.Activate(context.Background(), bob.ID, alice.InviteCode)
	if !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("err = %v, want ErrAlreadyActivated", err)
	}
	got, _ := repo.GetByID(context.Background(), bob.ID)
	if got.InvitedByID != carol.ID {
		t.Errorf("InvitedByID = %q, want winner %q", got.InvitedByID, carol.ID)
	}
}

// racingRepo lets a concurrent activation win just before SetInvitedBy runs.
type racingRepo struct {
	*fakeUserRepo
	winnerInviter string
	raced         bool
}

func (r *racingRepo) SetInvitedBy(ctx context.Context, id, inviterID string) (bool, error) {
	if !r.raced {
		r.raced = true
		if _, err := r.fakeUserRepo.SetInvitedBy(ctx, id, r.winnerInviter); err != nil {
			return false, err
		}
	}
	return r.fakeUserRepo.SetInvitedBy(ctx, id, inviterID)
}
