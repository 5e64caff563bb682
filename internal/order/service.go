package order

import (
	"context"
	"time"

	"github.com/wichananm65/storefront-backend/internal/events"
	"github.com/wichananm65/storefront-backend/internal/user"
	"go.uber.org/zap"
)

// Service provides business logic for orders.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *zap.Logger
	timeout   time.Duration
}

// NewService builds the order service. timeout bounds the whole checkout
// transaction; zero disables the bound.
func NewService(repo Repository, publisher events.Publisher, logger *zap.Logger, timeout time.Duration) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher, logger: logger, timeout: timeout}
}

// PlaceOrder validates req, then persists the order, its line items, the
// stock decrements and the cart removal as one unit of work.
func (s *Service) PlaceOrder(ctx context.Context, userID int, req PlaceOrderRequest) (Order, error) {
	if userID <= 0 {
		return Order{}, ErrUnauthenticated
	}
	o, err := NewOrder(userID, req)
	if err != nil {
		return Order{}, err
	}

	txCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		txCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	created, err := s.repo.Create(txCtx, o)
	if err != nil {
		s.logger.Error("Failed to place order",
			zap.Int("user_id", userID),
			zap.Int("items", len(o.Items)),
			zap.Error(err))
		return Order{}, err
	}

	s.publish(ctx, events.New(events.OrderPlaced, created.ID, created.UserID, string(created.Status), created.TotalAmount))

	s.logger.Info("Order placed",
		zap.Int("order_id", created.ID),
		zap.Int("user_id", created.UserID),
		zap.String("total_amount", created.TotalAmount.String()))
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID, userID int) (Order, error) {
	return s.repo.GetByIDForUser(ctx, orderID, userID)
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll is restricted to administrators.
func (s *Service) ListAll(ctx context.Context, caller user.Identity) ([]Order, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

// UpdateStatus moves an order to status. The caller's role and the status
// token are both checked before anything is written.
func (s *Service) UpdateStatus(ctx context.Context, caller user.Identity, orderID int, status string) (Order, error) {
	if !caller.IsAdmin() {
		return Order{}, ErrForbidden
	}
	st, err := ParseStatus(status)
	if err != nil {
		return Order{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return Order{}, err
	}

	s.publish(ctx, events.New(events.OrderStatusChanged, updated.ID, updated.UserID, string(updated.Status), updated.TotalAmount))
	s.logger.Info("Order status updated",
		zap.Int("order_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("admin_id", caller.ID))
	return updated, nil
}

// publish never fails the caller: the write has already committed.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("event_type", string(e.Type)),
			zap.Int("order_id", e.OrderID),
			zap.Error(err))
	}
}
