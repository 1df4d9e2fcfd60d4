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

const (
	collectionAdmins        = "admins"
	collectionAdminSessions = "admin_sessions"
	collectionAdminActivity = "admin_activity"
)

type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(collectionAdmins)}
}

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	IsSuperAdmin bool               `bson:"is_super_admin"`
	Permissions  []string           `bson:"permissions,omitempty"`
	CreatedBy    string             `bson:"created_by,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsSuperAdmin: d.IsSuperAdmin,
		Permissions:  d.Permissions,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := adminDoc{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		IsSuperAdmin: admin.IsSuperAdmin,
		Permissions:  admin.Permissions,
		CreatedBy:    admin.CreatedBy,
		CreatedAt:    admin.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	created := *admin
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique email index on the admins collection.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: uniqueIndex(),
	})
	return err
}

// AdminSessionRepository persists minted sessions keyed by their opaque token.
type AdminSessionRepository struct {
	coll *mongo.Collection
}

func NewAdminSessionRepository(db *mongo.Database) *AdminSessionRepository {
	return &AdminSessionRepository{coll: db.Collection(collectionAdminSessions)}
}

type sessionDoc struct {
	Token     string    `bson:"token"`
	AdminID   string    `bson:"admin_id"`
	IP        string    `bson:"ip,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (r *AdminSessionRepository) Insert(ctx context.Context, session *domain.AdminSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sessionDoc{
		Token:     session.Token,
		AdminID:   session.AdminID,
		IP:        session.IP,
		UserAgent: session.UserAgent,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *AdminSessionRepository) Find(ctx context.Context, token string) (*domain.AdminSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.AdminSession{
		Token:     doc.Token,
		AdminID:   doc.AdminID,
		IP:        doc.IP,
		UserAgent: doc.UserAgent,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// Delete removes a session. Deleting a missing token is not an error.
func (r *AdminSessionRepository) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// EnsureIndexes creates the token index and a TTL index so MongoDB reaps
// expired sessions even if validation never touches them again.
func (r *AdminSessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// ActivityRepository persists the admin audit trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(collectionAdminActivity)}
}

type activityDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AdminID    string             `bson:"admin_id"`
	Action     string             `bson:"action"`
	Details    string             `bson:"details,omitempty"`
	TargetType string             `bson:"target_type,omitempty"`
	TargetID   string             `bson:"target_id,omitempty"`
	LoggedAt   time.Time          `bson:"logged_at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		Details:    entry.Details,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		LoggedAt:   entry.LoggedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ActivityFilter) ([]domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AdminID != "" {
		query["admin_id"] = filter.AdminID
	}
	if filter.Action != "" {
		query["action"] = filter.Action
	}
	logged := bson.M{}
	if !filter.From.IsZero() {
		logged["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		logged["$lte"] = filter.To
	}
	if len(logged) > 0 {
		query["logged_at"] = logged
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "logged_at", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.ActivityEntry
	for cur.Next(ctx) {
		var doc activityDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, domain.ActivityEntry{
			ID:         doc.ID.Hex(),
			AdminID:    doc.AdminID,
			Action:     doc.Action,
			Details:    doc.Details,
			TargetType: doc.TargetType,
			TargetID:   doc.TargetID,
			LoggedAt:   doc.LoggedAt,
		})
	}
	return entries, cur.Err()
}
