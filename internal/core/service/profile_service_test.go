package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

func TestProfileService_Save_InvalidRole(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), zerolog.Nop())

	_, err := svc.Save(context.Background(), ports.SaveProfileInput{
		UserID:   "u1",
		UserType: "wizard",
		Phone:    "555-0100",
		City:     "Springfield",
	})
	if !errors.Is(err, domain.ErrInvalidUserType) {
		t.Fatalf("expected ErrInvalidUserType, got: %v", err)
	}
}

func TestProfileService_Save_PreservesCreatedAt(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	first, err := svc.Save(context.Background(), ports.SaveProfileInput{
		UserID:   "u1",
		UserType: domain.UserTypePetOwner,
		Phone:    "555-0100",
		City:     "Springfield",
	})
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second, err := svc.Save(context.Background(), ports.SaveProfileInput{
		UserID:   "u1",
		UserType: domain.UserTypePetOwner,
		Phone:    "555-0199",
		City:     "Shelbyville",
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("expected CreatedAt preserved across updates")
	}
	if second.Phone != "555-0199" {
		t.Errorf("expected phone updated, got %q", second.Phone)
	}
}

func TestProfileService_SaveSitterProfile_RoleMismatch(t *testing.T) {
	repo := newStubProfileRepo()
	seedProfile(repo, domain.UserTypePetOwner, true, false)
	svc := NewProfileService(repo, zerolog.Nop())

	_, err := svc.SaveSitterProfile(context.Background(), ports.SaveSitterProfileInput{
		UserID:     "u1",
		HourlyRate: 25,
		Services:   []string{"walking"},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
}

func TestProfileService_SaveShelterProfile_HappyPath(t *testing.T) {
	repo := newStubProfileRepo()
	seedProfile(repo, domain.UserTypePetShelter, true, false)
	svc := NewProfileService(repo, zerolog.Nop())

	sp, err := svc.SaveShelterProfile(context.Background(), ports.SaveShelterProfileInput{
		UserID:      "u1",
		ShelterName: "Happy Paws",
		Capacity:    40,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if sp.ShelterName != "Happy Paws" {
		t.Errorf("unexpected shelter name %q", sp.ShelterName)
	}
	if _, ok := repo.shelters["u1"]; !ok {
		t.Errorf("expected shelter profile persisted")
	}
}

func TestProfileService_CompletionStatus_FreshUser(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), zerolog.Nop())

	status, err := svc.CompletionStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status.ProfileExists || status.ProfileComplete || status.RoleProfileExists {
		t.Errorf("expected zero report for fresh user, got %+v", status)
	}
	if status.Dashboard != domain.PathProfileSetup {
		t.Errorf("expected dashboard %s, got %s", domain.PathProfileSetup, status.Dashboard)
	}
}

func TestProfileService_CompletionStatus_SitterStages(t *testing.T) {
	repo := newStubProfileRepo()
	seedProfile(repo, domain.UserTypePetSitter, true, false)
	svc := NewProfileService(repo, zerolog.Nop())

	status, err := svc.CompletionStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !status.ProfileExists || !status.ProfileComplete {
		t.Errorf("expected complete base profile, got %+v", status)
	}
	if status.RoleProfileExists {
		t.Errorf("expected role profile missing")
	}
	if status.Dashboard != domain.PathProfileSetup {
		t.Errorf("expected dashboard %s, got %s", domain.PathProfileSetup, status.Dashboard)
	}

	repo.sitters["u1"] = &domain.SitterProfile{UserID: "u1"}
	status, _ = svc.CompletionStatus(context.Background(), "u1")
	if !status.RoleProfileExists || status.Dashboard != domain.PathSitterDashboard {
		t.Errorf("expected sitter dashboard after step 2, got %+v", status)
	}
}

func TestProfileService_CompletionStatus_OwnerSkipsStepTwo(t *testing.T) {
	repo := newStubProfileRepo()
	seedProfile(repo, domain.UserTypePetOwner, true, false)
	svc := NewProfileService(repo, zerolog.Nop())

	status, err := svc.CompletionStatus(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !status.RoleProfileExists {
		t.Errorf("owners have no step-2 record; expected RoleProfileExists true")
	}
	if status.Dashboard != domain.PathOwnerDashboard {
		t.Errorf("expected owner dashboard, got %s", status.Dashboard)
	}
}
