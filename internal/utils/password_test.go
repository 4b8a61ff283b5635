package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("service-pistol-9", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "service-pistol-9" {
		t.Fatal("hash equals the plain password")
	}
	if !VerifyPassword(hash, "service-pistol-9") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Error("malformed hash accepted")
	}
}
