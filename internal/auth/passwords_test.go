package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NonDeterministic(t *testing.T) {
	p := "correct horse battery staple"
	h1, err := HashPassword(p)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword(p)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected different hashes for same password")
	}

	for _, h := range []string{h1, h2} {
		ok, err := VerifyPassword(h, p)
		if err != nil {
			t.Fatalf("VerifyPassword: %v", err)
		}
		if !ok {
			t.Fatalf("expected both salted hashes to verify")
		}
	}
}

func TestVerifyPassword(t *testing.T) {
	p := "correct horse battery staple"
	h, err := HashPassword(p)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword(h, p)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = VerifyPassword(h, "wrong password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("$argon2id$garbage", "x"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestVerifyPassword_LegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("Gym@123"), 10)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	h := string(legacy)

	if !NeedsRehash(h) {
		t.Fatalf("expected bcrypt hash to need rehash")
	}

	ok, err := VerifyPassword(h, "Gym@123")
	if err != nil || !ok {
		t.Fatalf("expected legacy hash to verify: ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword(h, "Gym@124")
	if err != nil || ok {
		t.Fatalf("expected legacy hash mismatch: ok=%v err=%v", ok, err)
	}

	fresh, err := HashPassword("Gym@123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(fresh) {
		t.Fatalf("argon2id hash should not need rehash")
	}
}
