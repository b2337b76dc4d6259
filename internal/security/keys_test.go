package security

import "testing"

func TestParseKeys_InlinePEM(t *testing.T) {
	if _, err := ParsePrivateKey(testPrivateKeyPEM); err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if _, err := ParsePublicKey(testPublicKeyPEM); err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
}

func TestParseKeys_Invalid(t *testing.T) {
	if _, err := ParsePrivateKey("not a key"); err == nil {
		t.Error("garbage private key: expected error")
	}
	if _, err := ParsePublicKey("-----BEGIN JUNK-----\nAAAA\n-----END JUNK-----"); err == nil {
		t.Error("wrong PEM type: expected error")
	}
	if _, err := LoadPEM(""); err != ErrInvalidKey {
		t.Errorf("empty input: want ErrInvalidKey, got %v", err)
	}
}
