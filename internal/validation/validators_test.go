package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestPhone(t *testing.T) {
	valid := []string{"+1234567890", "+123456789012345", "+15550000001"}
	for _, p := range valid {
		if err := Phone(p); err != nil {
			t.Errorf("Phone(%q): unexpected error %v", p, err)
		}
	}

	invalid := []string{
		"",
		"1234567890",        // missing '+'
		"+123456789",        // only 9 digits
		"+1234567890123456", // 16 digits, 17 chars total
		"+12345abc90",       // non-digits
		"+1 234567890",      // space
	}
	for _, p := range invalid {
		err := Phone(p)
		if err == nil {
			t.Errorf("Phone(%q): expected error", p)
			continue
		}
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != "phone" {
			t.Errorf("Phone(%q): expected FieldError on phone, got %v", p, err)
		}
	}
}

func TestAuthenticationCode(t *testing.T) {
	if err := AuthenticationCode("1234"); err != nil {
		t.Errorf("AuthenticationCode(1234): %v", err)
	}
	if err := AuthenticationCode("0"); err != nil {
		t.Errorf("AuthenticationCode(0): %v", err)
	}
	for _, c := range []string{"", "12345", "12a4", "12 4"} {
		if err := AuthenticationCode(c); err == nil {
			t.Errorf("AuthenticationCode(%q): expected error", c)
		}
	}
}

func TestInviteCode(t *testing.T) {
	if err := InviteCode("AB12cd"); err != nil {
		t.Errorf("InviteCode(AB12cd): %v", err)
	}
	for _, c := range []string{"", "ABCDEFG", "AB-2cd", "AB 2cd"} {
		if err := InviteCode(c); err == nil {
			t.Errorf("InviteCode(%q): expected error", c)
		}
	}
}

func TestUsername(t *testing.T) {
	for _, u := range []string{"", "john.doe", "user@host", "a_b+c-d"} {
		if err := Username(u); err != nil {
			t.Errorf("Username(%q): %v", u, err)
		}
	}
	if err := Username(strings.Repeat("a", MaxUsernameLength+1)); err == nil {
		t.Error("overlong username: expected error")
	}
	if err := Username("has space"); err == nil {
		t.Error("username with space: expected error")
	}
}

func TestEmail(t *testing.T) {
	for _, e := range []string{"", "user@example.com", "a.b+c@sub.domain.org"} {
		if err := Email(e); err != nil {
			t.Errorf("Email(%q): %v", e, err)
		}
	}
	for _, e := range []string{"not-an-email", "user@", "@example.com"} {
		if err := Email(e); err == nil {
			t.Errorf("Email(%q): expected error", e)
		}
	}
}
