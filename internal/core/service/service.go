package service

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

type Clock func() time.Time

func opErr(err error, op string) error {
	return fmt.Errorf("%s: %w", op, err)
}

var _ port.OrderEventPublisher = nopPublisher{}

// nopPublisher is used when the app runs without a broker.
type nopPublisher struct{}

func (nopPublisher) PublishOrderEvent(context.Context, domain.OrderEvent) error {
	return nil
}
