package security

import (
	"strings"
	"testing"
)

func TestGenerateAuthCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateAuthCode()
		if err != nil {
			t.Fatalf("GenerateAuthCode: %v", err)
		}
		if len(code) != AuthCodeLength {
			t.Fatalf("code %q: want %d digits", code, AuthCodeLength)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
		seen[code] = true
	}
	// 50 draws from a 10^4 space collapsing to one value would mean a broken generator.
	if len(seen) < 2 {
		t.Error("expected varied auth codes")
	}
}

func TestGenerateInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode: %v", err)
		}
		if len(code) != InviteCodeLength {
			t.Fatalf("code %q: want length %d", code, InviteCodeLength)
		}
		if strings.Trim(code, lettersDigits) != "" {
			t.Fatalf("code %q contains characters outside digits and ASCII letters", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("expected varied invite codes")
	}
}

func TestGenerateCodeInvalidSpec(t *testing.T) {
	if _, err := generateCode(0, digits); err == nil {
		t.Error("length 0: expected error")
	}
	if _, err := generateCode(4, ""); err == nil {
		t.Error("empty alphabet: expected error")
	}
}

func TestCodeEqual(t *testing.T) {
	if !CodeEqual("1234", "1234") {
		t.Error("equal codes should match")
	}
	if CodeEqual("1234", "1235") {
		t.Error("different codes should not match")
	}
	if CodeEqual("", "") {
		t.Error("empty stored code must never match")
	}
	if CodeEqual("1234", "") {
		t.Error("empty stored code must never match")
	}
}
