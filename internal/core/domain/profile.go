package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrRoleProfileNotFound = errors.New("role profile not found")
var ErrInvalidUserType = errors.New("invalid user type")

// Profile is the base per-user record carrying the role and the contact
// fields that decide completeness. Keyed 1:1 to the User by ID.
type Profile struct {
	ID        string    `json:"id"`
	UserType  string    `json:"user_type"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Address   string    `json:"address,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Complete reports whether the base profile satisfies the contact
// completeness rule: phone and city both non-empty.
func (p *Profile) Complete() bool {
	return p != nil && p.Phone != "" && p.City != ""
}

// SitterProfile is the sitter step-2 record. Its existence, not its field
// values, is the completeness signal for the sitter dashboard.
type SitterProfile struct {
	UserID          string    `json:"user_id"`
	HourlyRate      float64   `json:"hourly_rate"`
	ExperienceYears int       `json:"experience_years"`
	Services        []string  `json:"services"`
	AcceptsDogs     bool      `json:"accepts_dogs"`
	AcceptsCats     bool      `json:"accepts_cats"`
	CreatedAt       time.Time `json:"created_at"`
}

// ShelterProfile is the shelter step-2 record; existence gates the shelter
// dashboard the same way SitterProfile gates the sitter dashboard.
type ShelterProfile struct {
	UserID         string    `json:"user_id"`
	ShelterName    string    `json:"shelter_name"`
	Capacity       int       `json:"capacity"`
	Website        string    `json:"website,omitempty"`
	RegistrationID string    `json:"registration_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
