package auth

import "testing"

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("opensesame")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("opensesame", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("expected mismatch")
	}
}
