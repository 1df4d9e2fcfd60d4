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
	collectionProducts = "products"
	collectionBanners  = "banners"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Stock       int                `bson:"stock"`
	ImageURL    string             `bson:"image_url,omitempty"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Stock:       d.Stock,
		ImageURL:    d.ImageURL,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDoc{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if filter.ActiveOnly {
		query["active"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"image_url":   p.ImageURL,
		"active":      p.Active,
		"updated_at":  p.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// BannerRepository persists promotional banners.
type BannerRepository struct {
	coll *mongo.Collection
}

func NewBannerRepository(db *mongo.Database) *BannerRepository {
	return &BannerRepository{coll: db.Collection(collectionBanners)}
}

type bannerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	ImageURL  string             `bson:"image_url"`
	LinkURL   string             `bson:"link_url,omitempty"`
	Position  int                `bson:"position"`
	Active    bool               `bson:"active"`
	StartsAt  time.Time          `bson:"starts_at,omitempty"`
	EndsAt    time.Time          `bson:"ends_at,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d bannerDoc) toDomain() *domain.Banner {
	return &domain.Banner{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		ImageURL:  d.ImageURL,
		LinkURL:   d.LinkURL,
		Position:  d.Position,
		Active:    d.Active,
		StartsAt:  d.StartsAt,
		EndsAt:    d.EndsAt,
		CreatedAt: d.CreatedAt,
	}
}

func (r *BannerRepository) Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bannerDoc{
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  b.Position,
		Active:    b.Active,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		CreatedAt: b.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert banner: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// ListActive returns banners that are active and inside their display window,
// ordered by position.
func (r *BannerRepository) ListActive(ctx context.Context) ([]*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	query := bson.M{
		"active": true,
		"$and": []bson.M{
			{"$or": []bson.M{{"starts_at": bson.M{"$exists": false}}, {"starts_at": bson.M{"$lte": now}}}},
			{"$or": []bson.M{{"ends_at": bson.M{"$exists": false}}, {"ends_at": bson.M{"$gte": now}}}},
		},
	}

	return r.find(ctx, query)
}

func (r *BannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{})
}

func (r *BannerRepository) find(ctx context.Context, query bson.M) ([]*domain.Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Banner
	for cur.Next(ctx) {
		var doc bannerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode banner: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *BannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrBannerNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":     b.Title,
		"image_url": b.ImageURL,
		"link_url":  b.LinkURL,
		"position":  b.Position,
		"active":    b.Active,
		"starts_at": b.StartsAt,
		"ends_at":   b.EndsAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBannerNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}
