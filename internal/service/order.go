package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/events"
	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/notifier"
	"github.com/discoshop/backend/internal/repo"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Mail     notifier.Sender
}

type OrderLineInput struct {
	ProductID uint
	Quantity  int
}

// CreateOrder turns cart lines into a priced, persisted order. Every
// referenced product must resolve or the whole order is rejected; unit
// prices are snapshotted from the catalog at this instant and the order is
// written together with its lines, all or nothing.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, lines []OrderLineInput) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}

	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		p, ok := byID[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %d", ErrInvalidLineItem, l.ProductID)
		}

		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}

		orderLines = append(orderLines, models.OrderLine{
			ProductID: p.ID,
			Quantity:  uint(qty),
			UnitPrice: p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	order := &models.Order{
		UserID: userID,
		Status: models.StatusPending,
		Total:  total,
		Lines:  orderLines,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	created, err := s.Repo.GetOrder(ctx, order.ID, userID)
	if err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx)
	event := map[string]any{
		"type":     "order_created",
		"order_id": created.ID,
		"user_id":  userID,
		"total":    created.Total,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(created.ID), event); err != nil {
		l.Warn("event_publish_failed", "topic", events.TopicOrderEvents, "error", err)
	}

	return created, nil
}

// UpdateStatus applies one transition of the order status machine. Any
// target is reachable from pending; repeating the current status is an
// idempotent success; everything else is rejected. The row is updated
// before any notification goes out, and a failed notification never rolls
// the transition back.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID uint, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	order, err := s.Repo.GetOrder(ctx, orderID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}

	if target == order.Status {
		return order, nil
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	order.Status = target

	s.notifyTransition(ctx, userID, order)

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

type OrderSummary struct {
	Count int64           `json:"order_count"`
	Total decimal.Decimal `json:"total_spent"`
}

func (s *OrderService) Summary(ctx context.Context, userID uint) (*OrderSummary, error) {
	count, total, err := s.Repo.OrderSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &OrderSummary{Count: count, Total: total}, nil
}

func (s *OrderService) notifyTransition(ctx context.Context, userID uint, order *models.Order) {
	l := logging.FromContext(ctx)

	event := map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"status":   order.Status,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Warn("event_publish_failed", "topic", events.TopicOrderEvents, "error", err)
	}

	subject, body, ok := notifier.StatusMail(order.ID, order.Status)
	if !ok {
		return
	}

	owner, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		l.Warn("status_mail_skipped", "order_id", order.ID, "error", err)
		return
	}
	if err := s.Mail.Send(ctx, owner.Email, subject, body); err != nil {
		l.Warn("status_mail_failed", "order_id", order.ID, "to", owner.Email, "error", err)
	}
}
