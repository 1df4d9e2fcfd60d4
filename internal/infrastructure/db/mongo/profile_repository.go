package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petconnect/marketplace/internal/core/domain"
)

const (
	collectionProfiles        = "profiles"
	collectionSitterProfiles  = "pet_sitter_profiles"
	collectionShelterProfiles = "pet_shelter_profiles"
)

// ProfileRepository persists base profiles plus the role-specific step-2
// records. Profiles are keyed by the user id (string _id), so upserts are
// natural replaces.
type ProfileRepository struct {
	profiles *mongo.Collection
	sitters  *mongo.Collection
	shelters *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		profiles: db.Collection(collectionProfiles),
		sitters:  db.Collection(collectionSitterProfiles),
		shelters: db.Collection(collectionShelterProfiles),
	}
}

type profileDoc struct {
	ID        string    `bson:"_id"`
	UserType  string    `bson:"user_type"`
	Phone     string    `bson:"phone"`
	City      string    `bson:"city"`
	Address   string    `bson:"address,omitempty"`
	Bio       string    `bson:"bio,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type sitterProfileDoc struct {
	UserID          string    `bson:"_id"`
	HourlyRate      float64   `bson:"hourly_rate"`
	ExperienceYears int       `bson:"experience_years"`
	Services        []string  `bson:"services,omitempty"`
	AcceptsDogs     bool      `bson:"accepts_dogs"`
	AcceptsCats     bool      `bson:"accepts_cats"`
	CreatedAt       time.Time `bson:"created_at"`
}

type shelterProfileDoc struct {
	UserID         string    `bson:"_id"`
	ShelterName    string    `bson:"shelter_name"`
	Capacity       int       `bson:"capacity"`
	Website        string    `bson:"website,omitempty"`
	RegistrationID string    `bson:"registration_id,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (r *ProfileRepository) FindByID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := r.profiles.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.Profile{
		ID:        doc.ID,
		UserType:  doc.UserType,
		Phone:     doc.Phone,
		City:      doc.City,
		Address:   doc.Address,
		Bio:       doc.Bio,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := profileDoc{
		ID:        p.ID,
		UserType:  p.UserType,
		Phone:     p.Phone,
		City:      p.City,
		Address:   p.Address,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	_, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindSitterProfile(ctx context.Context, userID string) (*domain.SitterProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sitterProfileDoc
	if err := r.sitters.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleProfileNotFound
		}
		return nil, fmt.Errorf("find sitter profile: %w", err)
	}

	return &domain.SitterProfile{
		UserID:          doc.UserID,
		HourlyRate:      doc.HourlyRate,
		ExperienceYears: doc.ExperienceYears,
		Services:        doc.Services,
		AcceptsDogs:     doc.AcceptsDogs,
		AcceptsCats:     doc.AcceptsCats,
		CreatedAt:       doc.CreatedAt,
	}, nil
}

func (r *ProfileRepository) UpsertSitterProfile(ctx context.Context, sp *domain.SitterProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sitterProfileDoc{
		UserID:          sp.UserID,
		HourlyRate:      sp.HourlyRate,
		ExperienceYears: sp.ExperienceYears,
		Services:        sp.Services,
		AcceptsDogs:     sp.AcceptsDogs,
		AcceptsCats:     sp.AcceptsCats,
		CreatedAt:       sp.CreatedAt,
	}

	_, err := r.sitters.ReplaceOne(ctx, bson.M{"_id": sp.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert sitter profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindShelterProfile(ctx context.Context, userID string) (*domain.ShelterProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shelterProfileDoc
	if err := r.shelters.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleProfileNotFound
		}
		return nil, fmt.Errorf("find shelter profile: %w", err)
	}

	return &domain.ShelterProfile{
		UserID:         doc.UserID,
		ShelterName:    doc.ShelterName,
		Capacity:       doc.Capacity,
		Website:        doc.Website,
		RegistrationID: doc.RegistrationID,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

func (r *ProfileRepository) UpsertShelterProfile(ctx context.Context, sp *domain.ShelterProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := shelterProfileDoc{
		UserID:         sp.UserID,
		ShelterName:    sp.ShelterName,
		Capacity:       sp.Capacity,
		Website:        sp.Website,
		RegistrationID: sp.RegistrationID,
		CreatedAt:      sp.CreatedAt,
	}

	_, err := r.shelters.ReplaceOne(ctx, bson.M{"_id": sp.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert shelter profile: %w", err)
	}
	return nil
}
