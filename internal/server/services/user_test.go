package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUsers, *config.Config) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	usersRepo := newFakeUsers()
	rm := &fakeRepoManager{files: newFakeFiles(), perms: newFakePerms(), users: usersRepo}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewUserService(nil, rm, cfg, log), usersRepo, cfg
}

func seedAccount(t *testing.T, usersRepo *fakeUsers, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	user := &models.User{ID: "u1", Email: email, PasswordHash: hash, IsActive: active}
	usersRepo.byID[user.ID] = user
	return user
}

func TestRegister_CreatesInactiveUser(t *testing.T) {
	svc, usersRepo, _ := newUserFixture(t)

	user, err := svc.Register(context.Background(), " Alice@Example.com ", "correcthorse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.IsActive {
		t.Fatal("new accounts must start inactive")
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("correcthorse")) != nil {
		t.Fatal("stored hash does not match the password")
	}
	if _, ok := usersRepo.byID[user.ID]; !ok {
		t.Fatal("user was not persisted")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	cases := []struct{ email, password string }{
		{"", "correcthorse"},
		{"not-an-email", "correcthorse"},
		{"a@b.com", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.email, tc.password); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("(%q, %q): expected ErrorValidation, got %v", tc.email, tc.password, err)
		}
	}
}

func TestActivate(t *testing.T) {
	svc, usersRepo, _ := newUserFixture(t)
	seedAccount(t, usersRepo, "a@b.com", "correcthorse", false)

	if err := svc.Activate(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usersRepo.byID["u1"].IsActive {
		t.Fatal("user not activated")
	}

	if err := svc.Activate(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, usersRepo, cfg := newUserFixture(t)
	seedAccount(t, usersRepo, "a@b.com", "correcthorse", true)

	token, err := svc.Login(context.Background(), "a@b.com", "correcthorse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userID, err := auth.GetUserIDFromToken(token, []byte(cfg.SecretKey))
	if err != nil || userID != "u1" {
		t.Fatalf("token does not resolve to the user: id=%q err=%v", userID, err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, usersRepo, _ := newUserFixture(t)
	seedAccount(t, usersRepo, "a@b.com", "correcthorse", true)

	if _, err := svc.Login(context.Background(), "a@b.com", "wrong"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	if _, err := svc.Login(context.Background(), "ghost@b.com", "pw"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, usersRepo, _ := newUserFixture(t)
	seedAccount(t, usersRepo, "a@b.com", "correcthorse", false)

	if _, err := svc.Login(context.Background(), "a@b.com", "correcthorse"); !errors.Is(err, common.ErrorUserNotActive) {
		t.Fatalf("expected ErrorUserNotActive, got %v", err)
	}
}
