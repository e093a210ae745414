package security

import (
	"testing"
	"time"
)

func TestTokenProvider_IssueAndValidate(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	sessionID, userID := "s1", "u1"

	token, jti, exp, err := p.Issue(sessionID, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" || jti == "" {
		t.Fatal("token or jti empty")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	sid, uid, err := p.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sid != sessionID || uid != userID {
		t.Errorf("Validate: got sessionID=%q userID=%q", sid, uid)
	}
}

func TestTokenProvider_ValidateGarbage(t *testing.T) {
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	if _, _, err := p.Validate("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestTokenProvider_ValidateWrongIssuer(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	issuing := NewTokenProvider(signer, pub, "other-issuer", "test-audience", time.Minute)
	token, _, _, err := issuing.Issue("s1", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	validating := NewTokenProvider(nil, pub, "test-issuer", "test-audience", time.Minute)
	if _, _, err := validating.Validate(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestTokenProvider_ValidateExpired(t *testing.T) {
	signer, err := ParsePrivateKey(testPrivateKeyPEM)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	p := NewTokenProvider(signer, pub, "test-issuer", "test-audience", -time.Minute)
	token, _, _, err := p.Issue("s1", "u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := p.Validate(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenProvider_IssueWithoutPrivateKey(t *testing.T) {
	pub, err := ParsePublicKey(testPublicKeyPEM)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	p := NewTokenProvider(nil, pub, "test-issuer", "test-audience", time.Minute)
	if _, _, _, err := p.Issue("s1", "u1"); err == nil {
		t.Fatal("expected error when issuing without a private key")
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4) // min cost for test speed
	hash, err := h.Hash([]byte("hunter2!"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Compare(hash, []byte("hunter2!")); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := h.Compare(hash, []byte("wrong")); err == nil {
		t.Error("Compare with wrong password should fail")
	}
}
