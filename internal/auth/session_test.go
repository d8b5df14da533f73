package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSessionManager_RoundTrip(t *testing.T) {
	m, err := NewSessionManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := m.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.SessionID != "session-1" {
		t.Errorf("SessionID = %q, want %q", claims.SessionID, "session-1")
	}
}

func TestSessionManager_Rejects(t *testing.T) {
	m, err := NewSessionManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	other, err := NewSessionManager("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := m.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	foreign, err := other.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	expiring, err := NewSessionManager("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	expiring.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiring.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"signed with another secret", foreign},
		{"tampered signature", token[:len(token)-2] + flip(token[len(token)-2:])},
		{"expired", expired},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewSessionManager_RandomSecret(t *testing.T) {
	a, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	b, err := NewSessionManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	token, err := a.Generate("session-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := a.Validate(token); err != nil {
		t.Errorf("Validate with same manager failed: %v", err)
	}
	if _, err := b.Validate(token); err == nil {
		t.Error("Expected token from another random secret to be rejected")
	}
}

// flip swaps the case of the given base64url characters.
func flip(s string) string {
	if strings.ToUpper(s) != s {
		return strings.ToUpper(s)
	}
	return strings.ToLower(s) + "x"
}
