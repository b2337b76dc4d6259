package engine

import (
	"context"
	"testing"

	userdomain "phone-auth-service/internal/user/domain"
)

func TestHealthCheck(t *testing.T) {
	e := NewOPAEvaluator()
	if err := e.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestAllowProfileAccess(t *testing.T) {
	e := NewOPAEvaluator()

	owner := &userdomain.User{ID: "user-1"}
	admin := &userdomain.User{ID: "admin-1", IsAdmin: true}
	other := &userdomain.User{ID: "user-2"}

	tests := []struct {
		name      string
		requester *userdomain.User
		targetID  string
		want      bool
	}{
		{"owner reads own profile", owner, "user-1", true},
		{"admin reads any profile", admin, "user-1", true},
		{"other user denied", other, "user-1", false},
		{"nil requester denied", nil, "user-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.AllowProfileAccess(context.Background(), tt.requester, tt.targetID)
			if err != nil {
				t.Fatalf("AllowProfileAccess: %v", err)
			}
			if got != tt.want {
				t.Errorf("AllowProfileAccess = %v, want %v", got, tt.want)
			}
		})
	}
}
