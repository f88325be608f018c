package service

import (
	"context"
	"errors"
	"testing"

	"saves/internal/domain"
	"saves/internal/domain/repositories"
	"saves/internal/domain/services"
)

func TestCreateProfile(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"plain", "alice_42", false},
		{"mixed case stored lowercase", "Alice", false},
		{"too short", "ab", true},
		{"too long", "a_very_long_username_that_goes_on_and_on", true},
		{"illegal characters", "alice!", true},
		{"spaces", "alice smith", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{}
			svc := NewUserService(repo, testLogger)

			user, err := svc.CreateProfile(context.Background(), &services.CreateProfileRequest{
				UserID:   "u1",
				Username: tt.username,
			})
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, c := range user.Username {
				if c >= 'A' && c <= 'Z' {
					t.Errorf("username %q not stored lowercase", user.Username)
				}
			}
		})
	}
}

func TestCreateProfileUsernameCollision(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, testLogger)
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, &services.CreateProfileRequest{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("first profile: %v", err)
	}

	// The constraint, not a pre-check, resolves the race
	_, err := svc.CreateProfile(ctx, &services.CreateProfileRequest{UserID: "u2", Username: "alice"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate username: got %v, want conflict", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, testLogger)
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, &services.CreateProfileRequest{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := "   "
	if err := svc.UpdateProfile(ctx, "u1", &repositories.UserUpdate{Name: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank name: got %v, want validation error", err)
	}
	if err := svc.UpdateProfile(ctx, "u1", &repositories.UserUpdate{Username: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank username: got %v, want validation error", err)
	}

	bad := "no spaces!"
	if err := svc.UpdateProfile(ctx, "u1", &repositories.UserUpdate{Username: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid username: got %v, want validation error", err)
	}

	name := "Alice Smith"
	public := true
	if err := svc.UpdateProfile(ctx, "u1", &repositories.UserUpdate{Name: &name, IsPublic: &public}); err != nil {
		t.Fatalf("update: %v", err)
	}

	user, err := svc.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Name == nil || *user.Name != name {
		t.Errorf("name = %v, want %q", user.Name, name)
	}
	if !user.IsPublic {
		t.Error("is_public not applied")
	}
	if user.Username != "alice" {
		t.Errorf("username changed unexpectedly to %q", user.Username)
	}
}

func TestUsernameAvailable(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, testLogger)
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, &services.CreateProfileRequest{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		username string
		want     bool
	}{
		{"alice", false},
		{"bob", true},
		{"", false},
		{"not valid!", false}, // invalid reads as unavailable, not as an error
	}

	for _, tt := range tests {
		got, err := svc.UsernameAvailable(ctx, tt.username)
		if err != nil {
			t.Fatalf("UsernameAvailable(%q): %v", tt.username, err)
		}
		if got != tt.want {
			t.Errorf("UsernameAvailable(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}
