package services

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestRegisterUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	user, err := svc.RegisterUser("Alice", "alice@example.com", "supersecret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected user ID to be assigned")
	}
	if user.PasswordHash == "supersecret" {
		t.Error("password stored in plaintext")
	}
	if !CheckPassword(user.PasswordHash, "supersecret") {
		t.Error("stored hash does not match the password")
	}
}

func TestRegisterUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	cases := []struct {
		name, email, password string
	}{
		{"Al", "al@example.com", "supersecret"},
		{"Alice", "not-an-email", "supersecret"},
		{"Alice", "alice@example.com", "short"},
	}
	for _, c := range cases {
		_, err := svc.RegisterUser(c.name, c.email, c.password)
		assertErrorKind(t, err, KindValidation)
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	if _, err := svc.RegisterUser("Alice", "alice@example.com", "supersecret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.RegisterUser("Alicia", "alice@example.com", "differentpass")
	assertErrorKind(t, err, KindDuplicate)
}

func TestLoginUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	registered, err := svc.RegisterUser("Alice", "alice@example.com", "supersecret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.LoginUser("alice@example.com", "supersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		t.Fatalf("token has no subject: %v", err)
	}
	if sub != fmt.Sprintf("%d", registered.ID) {
		t.Errorf("expected subject %d, got %q", registered.ID, sub)
	}
}

func TestLoginUserRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)

	if _, err := svc.RegisterUser("Alice", "alice@example.com", "supersecret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.LoginUser("alice@example.com", "wrong-password")
	assertErrorKind(t, err, KindAuthorization)

	_, _, err = svc.LoginUser("nobody@example.com", "supersecret")
	assertErrorKind(t, err, KindAuthorization)
}
