package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/niksmo/fashion-store/pkg/retry"
)

var _ port.OrderManager = (*OrderService)(nil)

const defaultPublishTimeout = 3 * time.Second

type OrderService struct {
	orders         port.OrdersStorage
	publisher      port.OrderEventPublisher
	tracker        port.OrderTracker
	now            Clock
	publishRC      retry.RetryConfig
	publishTimeout time.Duration
	inflight       *sync.WaitGroup
}

type OrderOpt func(*OrderService)

// WithPublishTimeout bounds the background publishing of one order event,
// retries included.
func WithPublishTimeout(d time.Duration) OrderOpt {
	return func(s *OrderService) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// NewOrders returns the order lifecycle service.
//
// A nil publisher disables order events, a nil tracker makes
// TrackOrder read from the storage.
func NewOrders(
	orders port.OrdersStorage,
	publisher port.OrderEventPublisher,
	tracker port.OrderTracker,
	opts ...OrderOpt,
) OrderService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	s := OrderService{
		orders:    orders,
		publisher: publisher,
		tracker:   tracker,
		now:       time.Now,
		publishRC: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(50 * time.Millisecond),
		},
		publishTimeout: defaultPublishTimeout,
		inflight:       new(sync.WaitGroup),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// CreateOrder persists a pending order and returns its identifier.
//
// Placing the same checkout reference twice returns the first order.
func (s OrderService) CreateOrder(
	ctx context.Context, p domain.NewOrderParams,
) (string, error) {
	const op = "OrderService.CreateOrder"

	if err := ctx.Err(); err != nil {
		return "", opErr(err, op)
	}

	if p.CheckoutRef == "" {
		p.CheckoutRef = uuid.NewString()
	}

	o, err := domain.NewOrder(p, s.now().UTC())
	if err != nil {
		return "", opErr(err, op)
	}

	stored, existed, err := s.orders.CreateOrder(ctx, o)
	if err != nil {
		return "", opErr(err, op)
	}

	if existed {
		slog.Info("order already placed", "op", op,
			"orderID", stored.ID, "checkoutRef", p.CheckoutRef)
		return stored.ID, nil
	}

	s.publish(ctx, domain.EventOrderPlaced, stored)
	return stored.ID, nil
}

func (s OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	const op = "OrderService.GetOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, opErr(err, op)
	}

	o, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, opErr(err, op)
	}
	return o, nil
}

// ListOrders returns orders newest first.
func (s OrderService) ListOrders(
	ctx context.Context, f domain.OrderFilter,
) ([]domain.Order, error) {
	const op = "OrderService.ListOrders"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	if f.Status != "" && !f.Status.Valid() {
		return nil, opErr(domain.Invalid("unknown order status %q", f.Status), op)
	}

	list, err := s.orders.ListOrders(ctx, f)
	if err != nil {
		return nil, opErr(err, op)
	}
	return list, nil
}

// UpdateOrderStatus moves the order along the lifecycle graph.
// Setting the current status again is a no-op.
func (s OrderService) UpdateOrderStatus(
	ctx context.Context, id string, next domain.OrderStatus,
) (domain.Order, error) {
	const op = "OrderService.UpdateOrderStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, opErr(err, op)
	}

	if !next.Valid() {
		return domain.Order{}, opErr(domain.Invalid("unknown order status %q", next), op)
	}

	o, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, opErr(err, op)
	}

	if o.Status == next {
		return o, nil
	}

	if !o.Status.CanTransitionTo(next) {
		err := domain.Invalid("order cannot move from %s to %s", o.Status, next)
		return domain.Order{}, opErr(err, op)
	}

	updated, err := s.orders.SetOrderStatus(ctx, id, o.Status, next, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.Invalid("order %s was changed concurrently, reload and retry", id)
		}
		return domain.Order{}, opErr(err, op)
	}

	s.publish(ctx, domain.EventOrderStatusChanged, updated)
	return updated, nil
}

// UpdatePaymentStatus lets an operator correct the reported payment
// status. It does not affect the order status.
func (s OrderService) UpdatePaymentStatus(
	ctx context.Context, id string, ps domain.PaymentStatus,
) (domain.Order, error) {
	const op = "OrderService.UpdatePaymentStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, opErr(err, op)
	}

	if !ps.Valid() {
		return domain.Order{}, opErr(domain.Invalid("unknown payment status %q", ps), op)
	}

	updated, err := s.orders.SetPaymentStatus(ctx, id, ps, s.now().UTC())
	if err != nil {
		return domain.Order{}, opErr(err, op)
	}

	s.publish(ctx, domain.EventPaymentStatusChanged, updated)
	return updated, nil
}

func (s OrderService) TrackOrder(
	ctx context.Context, id string,
) (domain.OrderTracking, error) {
	const op = "OrderService.TrackOrder"
	log := slog.With("op", op, "orderID", id)

	if err := ctx.Err(); err != nil {
		return domain.OrderTracking{}, opErr(err, op)
	}

	if s.tracker != nil {
		t, err := s.tracker.TrackOrder(ctx, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn("tracking view unavailable, fall back to storage", "err", err)
		}
	}

	o, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.OrderTracking{}, opErr(err, op)
	}
	return o.Tracking(), nil
}

// publish sends the event in the background. The order is already stored,
// so neither the caller nor its deadline waits for the broker.
func (s OrderService) publish(
	ctx context.Context, t domain.OrderEventType, o domain.Order,
) {
	const op = "OrderService.publish"

	evt := domain.NewOrderEvent(t, o, s.now().UTC())
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()

		err := retry.Do(pctx, s.publishRC, func() error {
			return s.publisher.PublishOrderEvent(pctx, evt)
		})
		if err != nil {
			slog.Error("failed to publish order event", "op", op,
				"event", t, "orderID", o.ID, "err", err)
		}
	}()
}

// Wait blocks until events handed to the background publisher are
// delivered or given up.
func (s OrderService) Wait() {
	s.inflight.Wait()
}
