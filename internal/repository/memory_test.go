package repository

import (
	"context"
	"testing"
)

func TestMemoryVerify(t *testing.T) {
	repo := NewMemoryCredentialRepository(map[string]string{
		"user1": "pass123",
	})

	tests := []struct {
		name     string
		username string
		secret   string
		want     bool
	}{
		{"match", "user1", "pass123", true},
		{"wrong secret", "user1", "nope", false},
		{"unknown user", "ghost", "pass123", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Verify(context.Background(), tc.username, tc.secret)
			if err != nil {
				t.Fatalf("Verify returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Verify(%q, %q) = %v; want %v", tc.username, tc.secret, got, tc.want)
			}
		})
	}
}

func TestMemoryRegister_KeepsExisting(t *testing.T) {
	repo := NewMemoryCredentialRepository(map[string]string{"user1": "pass123"})

	if err := repo.Register(context.Background(), "user2", "pass456"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if ok, _ := repo.Verify(context.Background(), "user2", "pass456"); !ok {
		t.Error("registered user failed to verify")
	}

	// Re-registering an existing login leaves the original secret, same as
	// the Postgres backend's ON CONFLICT DO NOTHING.
	if err := repo.Register(context.Background(), "user1", "other"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if ok, _ := repo.Verify(context.Background(), "user1", "pass123"); !ok {
		t.Error("original secret stopped verifying after re-register")
	}
	if ok, _ := repo.Verify(context.Background(), "user1", "other"); ok {
		t.Error("re-register overwrote the existing secret")
	}
}
