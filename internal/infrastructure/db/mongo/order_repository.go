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

const collectionOrders = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collectionOrders)}
}

type orderItemDoc struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	UnitPrice float64 `bson:"unit_price"`
	Quantity  int     `bson:"quantity"`
}

type orderHistoryDoc struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Notes     string    `bson:"notes,omitempty"`
}

type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	Items         []orderItemDoc     `bson:"items"`
	Total         float64            `bson:"total"`
	PaymentRef    string             `bson:"payment_ref,omitempty"`
	Status        string             `bson:"status"`
	StatusHistory []orderHistoryDoc  `bson:"status_history"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d orderDoc) toDomain() *domain.Order {
	o := &domain.Order{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		Total:      d.Total,
		PaymentRef: d.PaymentRef,
		Status:     domain.OrderStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for _, item := range d.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	for _, h := range d.StatusHistory {
		o.StatusHistory = append(o.StatusHistory, domain.OrderStatusHistoryEntry{
			Status:    domain.OrderStatus(h.Status),
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}
	return o
}

func fromOrder(o *domain.Order) orderDoc {
	doc := orderDoc{
		UserID:     o.UserID,
		Total:      o.Total,
		PaymentRef: o.PaymentRef,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, orderItemDoc{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	for _, h := range o.StatusHistory {
		doc.StatusHistory = append(doc.StatusHistory, orderHistoryDoc{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			Notes:     h.Notes,
		})
	}
	return doc
}

// Create inserts the order and writes the generated id back onto o.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromOrder(o))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Order
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

// UpdateStatus atomically sets the new status and appends a history entry.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, entry domain.OrderStatusHistoryEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	update := bson.M{
		"$set": bson.M{"status": string(status), "updated_at": entry.Timestamp},
		"$push": bson.M{"status_history": orderHistoryDoc{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp,
			Notes:     entry.Notes,
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
