package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// OrderService implements checkout and order lifecycle management. Payment
// is simulated: checkout immediately transitions pending → paid with a
// generated payment reference.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, log: log}
}

// Checkout builds an order from catalog prices, never from client-supplied
// amounts, then simulates payment and persists the result.
func (s *OrderService) Checkout(ctx context.Context, input ports.CheckoutInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:    input.UserID,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		StatusHistory: []domain.OrderStatusHistoryEntry{
			{Status: domain.OrderStatusPending, Timestamp: now},
		},
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrEmptyOrder
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve item %s: %w", item.ProductID, err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		order.Total += product.Price * float64(item.Quantity)
	}

	// Simulated payment: the order is born pending and paid in one step.
	order.Status = domain.OrderStatusPaid
	order.PaymentRef = generatePaymentRef()
	order.StatusHistory = append(order.StatusHistory, domain.OrderStatusHistoryEntry{
		Status:    domain.OrderStatusPaid,
		Timestamp: now,
		Notes:     "simulated payment " + order.PaymentRef,
	})

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("user_id", input.UserID).Float64("total", order.Total).Msg("order created")
	return order, nil
}

// Get returns a single order, scoped to its owner unless admin is set.
func (s *OrderService) Get(ctx context.Context, id, actorID string, admin bool) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != actorID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter ports.OrderFilter) (*ports.OrderListResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.OrderListResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Transition applies a status change after validating the state machine and
// the actor. Customers may only cancel their own open orders; fulfilment
// transitions are admin-only.
func (s *OrderService) Transition(ctx context.Context, input ports.OrderTransitionInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if !input.Admin {
		if order.UserID != input.ActorID {
			return nil, domain.ErrForbidden
		}
		if input.Status != domain.OrderStatusCancelled {
			return nil, domain.ErrForbidden
		}
	}

	if !order.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidOrderTransition, order.Status, input.Status)
	}

	entry := domain.OrderStatusHistoryEntry{
		Status:    input.Status,
		Timestamp: time.Now().UTC(),
		Notes:     input.Notes,
	}
	if err := s.orders.UpdateStatus(ctx, order.ID, input.Status, entry); err != nil {
		return nil, err
	}

	order.Status = input.Status
	order.StatusHistory = append(order.StatusHistory, entry)
	order.UpdatedAt = entry.Timestamp
	return order, nil
}

// generatePaymentRef returns a fake payment reference in the format PC-XXXXXXXX.
func generatePaymentRef() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("PC-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("PC-%08X", b)
}
