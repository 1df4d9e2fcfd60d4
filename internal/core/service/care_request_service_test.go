package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubCareRepo struct {
	byID   map[string]*domain.CareRequest
	nextID int
}

func newStubCareRepo() *stubCareRepo {
	return &stubCareRepo{byID: make(map[string]*domain.CareRequest)}
}

func (r *stubCareRepo) Create(_ context.Context, cr *domain.CareRequest) error {
	r.nextID++
	cr.ID = "care_" + strconv.Itoa(r.nextID)
	stored := *cr
	r.byID[cr.ID] = &stored
	return nil
}

func (r *stubCareRepo) FindByID(_ context.Context, id string) (*domain.CareRequest, error) {
	cr, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCareRequestNotFound
	}
	copied := *cr
	return &copied, nil
}

func (r *stubCareRepo) List(_ context.Context, filter ports.CareRequestFilter) ([]*domain.CareRequest, int64, error) {
	var out []*domain.CareRequest
	for _, cr := range r.byID {
		if filter.OwnerID != "" && cr.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ProviderID != "" && cr.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && string(cr.Status) != filter.Status {
			continue
		}
		out = append(out, cr)
	}
	return out, int64(len(out)), nil
}

func (r *stubCareRepo) UpdateStatus(_ context.Context, id string, status domain.CareRequestStatus, entry domain.CareStatusHistoryEntry) error {
	cr, ok := r.byID[id]
	if !ok {
		return domain.ErrCareRequestNotFound
	}
	cr.Status = status
	cr.StatusHistory = append(cr.StatusHistory, entry)
	cr.UpdatedAt = entry.Timestamp
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newCareFixture() (*CareRequestService, *stubCareRepo, *stubProfileRepo) {
	requests := newStubCareRepo()
	profiles := newStubProfileRepo()
	profiles.profiles["sitter1"] = &domain.Profile{ID: "sitter1", UserType: domain.UserTypePetSitter, Phone: "555-0100", City: "Springfield"}
	profiles.profiles["shelter1"] = &domain.Profile{ID: "shelter1", UserType: domain.UserTypePetShelter, Phone: "555-0101", City: "Springfield"}
	profiles.profiles["owner2"] = &domain.Profile{ID: "owner2", UserType: domain.UserTypePetOwner, Phone: "555-0102", City: "Springfield"}
	return NewCareRequestService(requests, profiles, zerolog.Nop()), requests, profiles
}

func bookSitter(svc *CareRequestService) (*domain.CareRequest, error) {
	start := time.Now().UTC().Add(24 * time.Hour)
	return svc.Create(context.Background(), ports.CreateCareRequestInput{
		OwnerID:      "owner1",
		ProviderID:   "sitter1",
		ProviderType: domain.UserTypePetSitter,
		PetName:      "Rex",
		PetType:      "dog",
		StartDate:    start,
		EndDate:      start.Add(48 * time.Hour),
	})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCareRequestService_Create_HappyPath(t *testing.T) {
	svc, requests, _ := newCareFixture()

	cr, err := bookSitter(svc)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cr.Status != domain.CareStatusPending {
		t.Errorf("expected pending, got %s", cr.Status)
	}
	if len(cr.StatusHistory) != 1 || cr.StatusHistory[0].Status != domain.CareStatusPending {
		t.Errorf("expected single pending history entry, got %+v", cr.StatusHistory)
	}
	if _, ok := requests.byID[cr.ID]; !ok {
		t.Errorf("expected request persisted")
	}
}

func TestCareRequestService_Create_InvalidProviderType(t *testing.T) {
	svc, _, _ := newCareFixture()

	_, err := svc.Create(context.Background(), ports.CreateCareRequestInput{
		OwnerID:      "owner1",
		ProviderID:   "sitter1",
		ProviderType: "veterinarian",
		PetName:      "Rex",
		StartDate:    time.Now(),
		EndDate:      time.Now().Add(time.Hour),
	})
	if !errors.Is(err, domain.ErrInvalidUserType) {
		t.Fatalf("expected ErrInvalidUserType, got: %v", err)
	}
}

func TestCareRequestService_Create_InvalidBookingWindow(t *testing.T) {
	svc, _, _ := newCareFixture()
	start := time.Now().UTC().Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), ports.CreateCareRequestInput{
		OwnerID:      "owner1",
		ProviderID:   "sitter1",
		ProviderType: domain.UserTypePetSitter,
		PetName:      "Rex",
		StartDate:    start,
		EndDate:      start.Add(-time.Hour),
	})
	if !errors.Is(err, domain.ErrInvalidCareTransition) {
		t.Fatalf("expected booking window error, got: %v", err)
	}
}

// The declared provider type must match the provider's actual role, so an
// owner cannot be booked as a sitter.
func TestCareRequestService_Create_ProviderRoleMismatch(t *testing.T) {
	svc, _, _ := newCareFixture()
	start := time.Now().UTC().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), ports.CreateCareRequestInput{
		OwnerID:      "owner1",
		ProviderID:   "owner2",
		ProviderType: domain.UserTypePetSitter,
		PetName:      "Rex",
		StartDate:    start,
		EndDate:      start.Add(time.Hour),
	})
	if !errors.Is(err, domain.ErrInvalidUserType) {
		t.Fatalf("expected ErrInvalidUserType, got: %v", err)
	}
}

func TestCareRequestService_Create_UnknownProvider(t *testing.T) {
	svc, _, _ := newCareFixture()
	start := time.Now().UTC().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), ports.CreateCareRequestInput{
		OwnerID:      "owner1",
		ProviderID:   "ghost",
		ProviderType: domain.UserTypePetSitter,
		PetName:      "Rex",
		StartDate:    start,
		EndDate:      start.Add(time.Hour),
	})
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got: %v", err)
	}
}

func TestCareRequestService_Get_PartiesOnly(t *testing.T) {
	svc, _, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	if _, err := svc.Get(context.Background(), cr.ID, "owner1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), cr.ID, "sitter1"); err != nil {
		t.Fatalf("provider read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), cr.ID, "owner2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got: %v", err)
	}
}

func TestCareRequestService_Transition_OwnerCancelOnly(t *testing.T) {
	svc, _, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	_, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "owner1",
		Status:    domain.CareStatusAccepted,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for owner accepting, got: %v", err)
	}

	updated, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "owner1",
		Status:    domain.CareStatusCancelled,
	})
	if err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
	if updated.Status != domain.CareStatusCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}
}

func TestCareRequestService_Transition_ProviderCannotCancel(t *testing.T) {
	svc, _, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	_, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "sitter1",
		Status:    domain.CareStatusCancelled,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestCareRequestService_Transition_ProviderLifecycle(t *testing.T) {
	svc, requests, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	accepted, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "sitter1",
		Status:    domain.CareStatusAccepted,
	})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != domain.CareStatusAccepted {
		t.Errorf("expected accepted, got %s", accepted.Status)
	}

	completed, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "sitter1",
		Status:    domain.CareStatusCompleted,
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != domain.CareStatusCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}

	stored := requests.byID[cr.ID]
	if len(stored.StatusHistory) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(stored.StatusHistory))
	}
}

func TestCareRequestService_Transition_StrangerForbidden(t *testing.T) {
	svc, _, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	_, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "owner2",
		Status:    domain.CareStatusCancelled,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestCareRequestService_Transition_StateMachineRejects(t *testing.T) {
	svc, _, _ := newCareFixture()
	cr, _ := bookSitter(svc)

	// Pending cannot jump straight to completed.
	_, err := svc.Transition(context.Background(), ports.CareTransitionInput{
		RequestID: cr.ID,
		ActorID:   "sitter1",
		Status:    domain.CareStatusCompleted,
	})
	if !errors.Is(err, domain.ErrInvalidCareTransition) {
		t.Fatalf("expected ErrInvalidCareTransition, got: %v", err)
	}
}

func TestCareRequestService_List_ProviderSide(t *testing.T) {
	svc, _, _ := newCareFixture()
	if _, err := bookSitter(svc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := bookSitter(svc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	result, err := svc.List(context.Background(), ports.CareRequestFilter{ProviderID: "sitter1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("expected 2 requests for sitter1, got %d", result.Total)
	}

	result, err = svc.List(context.Background(), ports.CareRequestFilter{ProviderID: "shelter1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("expected no requests for shelter1, got %d", result.Total)
	}
}
