package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := *user
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.byEmail[user.Email] = &created
	return &created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func TestAuthService_SignUp_HappyPath(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	token, user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "  Alice@Example.COM ",
		Password: "hunter2hunter2",
		FullName: "Alice",
		UserType: domain.UserTypePetOwner,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.ID == "" {
		t.Errorf("expected generated id")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Errorf("expected sub claim %q, got %v", user.ID, claims["sub"])
	}
	if claims["user_type"] != domain.UserTypePetOwner {
		t.Errorf("expected user_type claim, got %v", claims["user_type"])
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	input := ports.SignUpInput{Email: "bob@example.com", Password: "password123", FullName: "Bob"}
	if _, _, err := svc.SignUp(context.Background(), input); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got: %v", err)
	}
}

func TestAuthService_SignUp_InvalidUserType(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, _, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "carol@example.com",
		Password: "password123",
		FullName: "Carol",
		UserType: "dragon_keeper",
	})
	if !errors.Is(err, domain.ErrInvalidUserType) {
		t.Fatalf("expected ErrInvalidUserType, got: %v", err)
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	repo.byEmail["dave@example.com"] = &domain.User{
		ID:           "user_1",
		Email:        "dave@example.com",
		PasswordHash: string(hash),
	}
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "dave@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

// Unknown emails fail exactly like wrong passwords, so the error reveals
// nothing about which accounts exist.
func TestAuthService_SignIn_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_SignIn_HappyPath(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, created, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "erin@example.com",
		Password: "password123",
		FullName: "Erin",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.SignIn(context.Background(), "erin@example.com", "password123")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if token == "" {
		t.Errorf("expected token")
	}
	if user.ID != created.ID {
		t.Errorf("expected user %s, got %s", created.ID, user.ID)
	}
}
