package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blogicum-next/internal/config"
)

func registerUser(t *testing.T, f *blogFixture, username string) (uint, string) {
	t.Helper()
	user, token, expiresAt, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("register should issue a token")
	}
	return user.ID, token
}

func TestRegisterAndLogin(t *testing.T) {
	f := newBlogFixture(t, 10)
	userID, token := registerUser(t, f, "alice")

	claims, err := f.auth.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != userID || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	user, err := f.auth.GetUserByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be normalised, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password must be hashed")
	}

	logged, loginToken, _, err := f.auth.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != userID || loginToken == "" {
		t.Fatalf("unexpected login result: %+v", logged)
	}
	if _, _, _, err := f.auth.Login(context.Background(), "alice", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := f.auth.Login(context.Background(), "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newBlogFixture(t, 10)
	registerUser(t, f, "taken")

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "bad username", input: RegisterInput{Username: "has space", Password: "secret123"}, want: ErrUsernameInvalid},
		{name: "duplicate username", input: RegisterInput{Username: "taken", Password: "secret123"}, want: ErrUsernameExists},
		{name: "bad email", input: RegisterInput{Username: "fresh", Email: "not-an-email", Password: "secret123"}, want: ErrEmailInvalid},
		{name: "short password", input: RegisterInput{Username: "fresh", Password: "abc1"}, want: ErrWeakPassword},
		{name: "no digit", input: RegisterInput{Username: "fresh", Password: "abcdefghij"}, want: ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := f.auth.Register(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error %v should be a validation error", err)
			}
		})
	}

	if _, _, _, err := f.auth.Register(context.Background(), RegisterInput{Username: "no.email+ok@x", Password: "secret123"}); err != nil {
		t.Fatalf("email is optional and username allows .@+-: %v", err)
	}
}

func TestParseUserJWTRejectsForeignSignature(t *testing.T) {
	f := newBlogFixture(t, 10)
	_, token := registerUser(t, f, "bob")

	other := NewUserAuthService(&config.Config{
		UserJWT: config.JWTConfig{SecretKey: "another-secret", ExpireHours: 1},
	}, f.userRepo)
	if _, err := other.ParseUserJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
	if _, err := f.auth.ParseUserJWT("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for garbage, got %v", err)
	}
}

func TestUpdateProfileBumpsTokenVersionOnRename(t *testing.T) {
	f := newBlogFixture(t, 10)
	userID, _ := registerUser(t, f, "carol")
	registerUser(t, f, "dave")

	first := "Carol"
	user, err := f.auth.UpdateProfile(context.Background(), userID, ProfileInput{FirstName: &first})
	if err != nil {
		t.Fatalf("update first name failed: %v", err)
	}
	if user.FirstName != "Carol" || user.TokenVersion != 0 {
		t.Fatalf("first name change must not bump token version: %+v", user)
	}

	taken := "dave"
	if _, err := f.auth.UpdateProfile(context.Background(), userID, ProfileInput{Username: &taken}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("want ErrUsernameExists, got %v", err)
	}

	renamed := "caroline"
	user, err = f.auth.UpdateProfile(context.Background(), userID, ProfileInput{Username: &renamed})
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if user.Username != "caroline" || user.TokenVersion != 1 {
		t.Fatalf("rename should bump token version: %+v", user)
	}

	state, err := f.auth.ResolveAuthState(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.Username != "caroline" || state.TokenVersion != 1 {
		t.Fatalf("unexpected auth state: %+v", state)
	}

	_, page, err := f.feeds.ListProfile(context.Background(), "caroline", f.user(t, "viewer"), 1)
	if err != nil || page.Total != 0 {
		t.Fatalf("renamed profile should resolve: %v", err)
	}
	if _, _, err := f.feeds.ListProfile(context.Background(), "carol", f.user(t, "viewer2"), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old username should be NotFound, got %v", err)
	}
}

func TestGetUserByIDMissing(t *testing.T) {
	f := newBlogFixture(t, 10)
	if _, err := f.auth.GetUserByID(context.Background(), 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := f.auth.ResolveAuthState(context.Background(), 77); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
