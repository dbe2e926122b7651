package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/niksmo/fashion-store/pkg/schema"
)

var ErrViewRecovering = errors.New("view is recovering")

type viewGetter interface {
	Get(key string) (any, error)
	Recovered() bool
}

var _ port.OrderTrackingView = (*OrderTrackingView)(nil)

// An OrderTrackingView serves lookups from the tracker group table.
type OrderTrackingView struct {
	gv     *goka.View
	getter viewGetter
}

func NewOrderTrackingView(
	seedBrokers []string, group string, opts ...goka.ViewOption,
) (*OrderTrackingView, error) {
	const op = "NewOrderTrackingView"

	opts = append([]goka.ViewOption{withNonlogViewOpt()}, opts...)
	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		newTrackingCodec(),
		opts...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &OrderTrackingView{gv: gv, getter: gv}, nil
}

// Run blocks until ctx is done and marks wg done on return.
func (v *OrderTrackingView) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "OrderTrackingView.Run"
	log := slog.With("op", op)

	defer wg.Done()

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

func (v *OrderTrackingView) TrackOrder(
	ctx context.Context, orderID string,
) (domain.OrderTracking, error) {
	const op = "OrderTrackingView.TrackOrder"

	if err := ctx.Err(); err != nil {
		return domain.OrderTracking{}, opErr(err, op)
	}

	if !v.getter.Recovered() {
		return domain.OrderTracking{}, opErr(ErrViewRecovering, op)
	}

	val, err := v.getter.Get(orderID)
	if err != nil {
		return domain.OrderTracking{}, opErr(err, op)
	}
	if val == nil {
		return domain.OrderTracking{}, opErr(domain.ErrNotFound, op)
	}

	s, ok := val.(schema.OrderTrackingV1)
	if !ok {
		return domain.OrderTracking{}, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, val), op,
		)
	}
	return trackingToDomain(s), nil
}
