package session

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := IssueToken("user-1", "test_secret", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := VerifyToken(s, "test_secret", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("user mismatch: %q", got.UserID)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := IssueToken("user-1", "test_secret", time.Minute, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := VerifyToken(s, "test_secret", now.Add(2*time.Minute)); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s, err := IssueToken("user-1", "test_secret", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := VerifyToken(s, "other_secret", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
