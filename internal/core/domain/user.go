package domain

import (
	"errors"
	"time"
)

// Marketplace account roles.
const (
	UserTypePetOwner   = "pet_owner"
	UserTypePetSitter  = "pet_sitter"
	UserTypePetShelter = "pet_shelter"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// ValidUserType reports whether t names one of the three marketplace roles.
func ValidUserType(t string) bool {
	switch t {
	case UserTypePetOwner, UserTypePetSitter, UserTypePetShelter:
		return true
	}
	return false
}

// User models an authenticated end-user identity. UserType is the intent
// declared at signup; the authoritative role lives on the Profile row and is
// only fixed once profile setup completes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	UserType     string    `json:"user_type,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
