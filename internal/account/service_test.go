package account

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func registerAsha(t *testing.T, svc *Service) User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:       "Asha",
		Email:      "Asha@Example.com",
		Phone:      "9999900001",
		Password:   "s3cret-pass",
		BloodGroup: "o+",
		City:       "Jaipur",
		State:      "Rajasthan",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterHashesAndNormalizes(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	user := registerAsha(t, svc)

	if user.Email != "asha@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.BloodGroup != "O+" {
		t.Fatalf("expected uppercased blood group, got %s", user.BloodGroup)
	}
	if bytes.Contains(user.PasswordHash, []byte("s3cret-pass")) {
		t.Fatal("password stored in clear text")
	}
}

func TestRegisterMissingField(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Email: "asha@example.com", Phone: "9999900001",
	})
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "password" {
		t.Fatalf("expected field password, got %s", verr.Field)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	registerAsha(t, svc)

	// Same phone, different email.
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "other@example.com", Phone: "9999900001", Password: "pw123456",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	user := registerAsha(t, svc)

	authed, err := svc.Authenticate(context.Background(), Credentials{Email: "asha@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := svc.Authenticate(context.Background(), Credentials{Email: "asha@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), Credentials{Email: "nobody@example.com", Password: "s3cret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDonorVisibilityToggle(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	user := registerAsha(t, svc)

	if err := svc.SetDonorVisibility(context.Background(), user.ID, true); err != nil {
		t.Fatalf("enable donor: %v", err)
	}
	fetched, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !fetched.IsDonor {
		t.Fatal("expected donor flag set")
	}

	if err := svc.SetDonorVisibility(context.Background(), user.ID, false); err != nil {
		t.Fatalf("disable donor: %v", err)
	}
	fetched, _ = svc.Get(context.Background(), user.ID)
	if fetched.IsDonor {
		t.Fatal("expected donor flag cleared")
	}
}

func TestSetPhoto(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	user := registerAsha(t, svc)

	if err := svc.SetPhoto(context.Background(), user.ID, user.ID+".jpg"); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	fetched, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Photo != user.ID+".jpg" {
		t.Fatalf("expected photo reference stored, got %q", fetched.Photo)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	err := svc.UpdateProfile(context.Background(), "missing-id", Profile{Name: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
