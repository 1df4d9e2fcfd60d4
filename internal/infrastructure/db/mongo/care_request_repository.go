package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

const collectionCareRequests = "care_requests"

type CareRequestRepository struct {
	coll *mongo.Collection
}

func NewCareRequestRepository(db *mongo.Database) *CareRequestRepository {
	return &CareRequestRepository{coll: db.Collection(collectionCareRequests)}
}

type careHistoryDoc struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Notes     string    `bson:"notes,omitempty"`
}

type careRequestDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID       string             `bson:"owner_id"`
	ProviderID    string             `bson:"provider_id"`
	ProviderType  string             `bson:"provider_type"`
	PetName       string             `bson:"pet_name"`
	PetType       string             `bson:"pet_type,omitempty"`
	StartDate     time.Time          `bson:"start_date"`
	EndDate       time.Time          `bson:"end_date"`
	Notes         string             `bson:"notes,omitempty"`
	Status        string             `bson:"status"`
	StatusHistory []careHistoryDoc   `bson:"status_history"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d careRequestDoc) toDomain() *domain.CareRequest {
	cr := &domain.CareRequest{
		ID:           d.ID.Hex(),
		OwnerID:      d.OwnerID,
		ProviderID:   d.ProviderID,
		ProviderType: d.ProviderType,
		PetName:      d.PetName,
		PetType:      d.PetType,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Notes:        d.Notes,
		Status:       domain.CareRequestStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, h := range d.StatusHistory {
		cr.StatusHistory = append(cr.StatusHistory, domain.CareStatusHistoryEntry{
			Status:    domain.CareRequestStatus(h.Status),
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}
	return cr
}

// Create inserts the care request and writes the generated id back onto cr.
func (r *CareRequestRepository) Create(ctx context.Context, cr *domain.CareRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := careRequestDoc{
		OwnerID:      cr.OwnerID,
		ProviderID:   cr.ProviderID,
		ProviderType: cr.ProviderType,
		PetName:      cr.PetName,
		PetType:      cr.PetType,
		StartDate:    cr.StartDate,
		EndDate:      cr.EndDate,
		Notes:        cr.Notes,
		Status:       string(cr.Status),
		CreatedAt:    cr.CreatedAt,
		UpdatedAt:    cr.UpdatedAt,
	}
	for _, h := range cr.StatusHistory {
		doc.StatusHistory = append(doc.StatusHistory, careHistoryDoc{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert care request: %w", err)
	}
	cr.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *CareRequestRepository) FindByID(ctx context.Context, id string) (*domain.CareRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCareRequestNotFound
	}

	var doc careRequestDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCareRequestNotFound
		}
		return nil, fmt.Errorf("find care request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CareRequestRepository) List(ctx context.Context, filter ports.CareRequestFilter) ([]*domain.CareRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.ProviderID != "" {
		query["provider_id"] = filter.ProviderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count care requests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list care requests: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.CareRequest
	for cur.Next(ctx) {
		var doc careRequestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode care request: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

// UpdateStatus atomically sets the new status and appends a history entry.
func (r *CareRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.CareRequestStatus, entry domain.CareStatusHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCareRequestNotFound
	}

	update := bson.M{
		"$set": bson.M{"status": string(status), "updated_at": entry.Timestamp},
		"$push": bson.M{"status_history": careHistoryDoc{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp,
			Notes:     entry.Notes,
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update care request status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCareRequestNotFound
	}
	return nil
}
