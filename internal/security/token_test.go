package security

import (
	"testing"
	"time"
)

func TestIssueAndValidateAPIToken(t *testing.T) {
	secret := "test-signing-secret"

	token, err := IssueAPIToken(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueAPIToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueAPIToken() returned empty token")
	}

	userID, err := ValidateAPIToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateAPIToken() error = %v", err)
	}
	if userID != int64(42) {
		t.Errorf("ValidateAPIToken() userID = %d, want 42", userID)
	}
}

func TestValidateAPITokenErrors(t *testing.T) {
	secret := "test-signing-secret"

	valid, err := IssueAPIToken(secret, 7, time.Hour)
	if err != nil {
		t.Fatalf("IssueAPIToken() error = %v", err)
	}

	expired, err := IssueAPIToken(secret, 7, -time.Hour)
	if err != nil {
		t.Fatalf("IssueAPIToken() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{
			name:   "wrong secret",
			secret: "another-secret",
			token:  valid,
		},
		{
			name:   "expired token",
			secret: secret,
			token:  expired,
		},
		{
			name:   "garbage token",
			secret: secret,
			token:  "not.a.token",
		},
		{
			name:   "empty token",
			secret: secret,
			token:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAPIToken(tt.secret, tt.token); err == nil {
				t.Error("ValidateAPIToken() expected error, got nil")
			}
		})
	}
}
