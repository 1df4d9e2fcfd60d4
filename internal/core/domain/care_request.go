package domain

import (
	"errors"
	"time"
)

// CareRequestStatus represents the lifecycle state of a care request.
type CareRequestStatus string

const (
	CareStatusPending   CareRequestStatus = "pending"
	CareStatusAccepted  CareRequestStatus = "accepted"
	CareStatusDeclined  CareRequestStatus = "declined"
	CareStatusCompleted CareRequestStatus = "completed"
	CareStatusCancelled CareRequestStatus = "cancelled"
)

// careTransitions defines the allowed state machine transitions. The owner
// may cancel anything still open; only the provider moves a request forward.
var careTransitions = map[CareRequestStatus][]CareRequestStatus{
	CareStatusPending:  {CareStatusAccepted, CareStatusDeclined, CareStatusCancelled},
	CareStatusAccepted: {CareStatusCompleted, CareStatusCancelled},
}

var ErrCareRequestNotFound = errors.New("care request not found")
var ErrInvalidCareTransition = errors.New("invalid care request status transition")

// CanTransitionTo reports whether a transition from s to next is valid.
func (s CareRequestStatus) CanTransitionTo(next CareRequestStatus) bool {
	for _, allowed := range careTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CareStatusHistoryEntry records a single status transition on a care request.
type CareStatusHistoryEntry struct {
	Status    CareRequestStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Notes     string            `json:"notes,omitempty"`
}

// CareRequest is an owner's booking request against a sitter or shelter.
type CareRequest struct {
	ID            string                   `json:"id"`
	OwnerID       string                   `json:"owner_id"`
	ProviderID    string                   `json:"provider_id"`
	ProviderType  string                   `json:"provider_type"` // pet_sitter or pet_shelter
	PetName       string                   `json:"pet_name"`
	PetType       string                   `json:"pet_type"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       time.Time                `json:"end_date"`
	Notes         string                   `json:"notes,omitempty"`
	Status        CareRequestStatus        `json:"status"`
	StatusHistory []CareStatusHistoryEntry `json:"status_history"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}
