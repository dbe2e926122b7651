package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrderParams(ref string) domain.NewOrderParams {
	return domain.NewOrderParams{
		CheckoutRef: ref,
		Customer: domain.DeliveryDetails{
			Name:    "Asha",
			Email:   "asha@example.com",
			Phone:   "9999999999",
			Address: "1 MG Road",
			City:    "Pune",
			Pincode: "411001",
		},
		Items: []domain.OrderItem{
			{ProductID: "a", ProductName: "Shirt", Size: "M", Color: "Black", Quantity: 1, Price: 699},
		},
		PaymentMethod: domain.PaymentUPI,
		Payment:       domain.PaymentConfirmation{Status: domain.PaymentCompleted},
	}
}

func TestOrderServiceCreateOrder(t *testing.T) {
	t.Run("Placed", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		publisher := new(MockPublisher)
		s := service.NewOrders(orders, publisher, nil)

		orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
			return o.Status == domain.OrderPending &&
				o.TotalAmount == 778 &&
				o.CheckoutRef == "ref-1"
		})).Return(domain.Order{ID: "o1", Status: domain.OrderPending}, false, nil)

		publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderPlaced && e.OrderID == "o1"
		})).Return(nil).Once()

		id, err := s.CreateOrder(t.Context(), testOrderParams("ref-1"))
		require.NoError(t, err)
		assert.Equal(t, "o1", id)

		s.Wait()
		publisher.AssertExpectations(t)
	})

	t.Run("AlreadyPlaced", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		publisher := new(MockPublisher)
		s := service.NewOrders(orders, publisher, nil)

		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(domain.Order{ID: "o1"}, true, nil)

		id, err := s.CreateOrder(t.Context(), testOrderParams("ref-1"))
		require.NoError(t, err)
		assert.Equal(t, "o1", id)

		s.Wait()
		publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
	})

	t.Run("DisputedKeepsReasonAndStaysPending", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		p := testOrderParams("ref-2")
		p.Payment = domain.PaymentConfirmation{
			Status:        domain.PaymentDisputed,
			DisputeReason: "amount debited twice",
		}

		orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
			return o.Status == domain.OrderPending &&
				o.PaymentStatus == domain.PaymentDisputed &&
				o.DisputeReason == "amount debited twice"
		})).Return(domain.Order{ID: "o2"}, false, nil)

		id, err := s.CreateOrder(t.Context(), p)
		require.NoError(t, err)
		assert.Equal(t, "o2", id)
		orders.AssertExpectations(t)
	})

	t.Run("PersistenceFailure", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(domain.Order{}, false, domain.ErrPersistence)

		_, err := s.CreateOrder(t.Context(), testOrderParams("ref-3"))
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})

	t.Run("NoItems", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		p := testOrderParams("ref-4")
		p.Items = nil

		_, err := s.CreateOrder(t.Context(), p)
		assert.ErrorIs(t, err, domain.ErrValidation)
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("PublishFailureIsNotFatal", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		publisher := new(MockPublisher)
		s := service.NewOrders(orders, publisher, nil)

		orders.On("CreateOrder", mock.Anything, mock.Anything).
			Return(domain.Order{ID: "o5"}, false, nil)
		publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		id, err := s.CreateOrder(t.Context(), testOrderParams("ref-5"))
		require.NoError(t, err)
		assert.Equal(t, "o5", id)
		s.Wait()
	})
}

func TestOrderServicePublishInBackground(t *testing.T) {
	orders := new(MockOrdersStorage)
	publisher := new(blockingPublisher)
	s := service.NewOrders(orders, publisher, nil,
		service.WithPublishTimeout(300*time.Millisecond))

	orders.On("CreateOrder", mock.Anything, mock.Anything).
		Return(domain.Order{ID: "o1", Status: domain.OrderPending}, false, nil)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	start := time.Now()
	id, err := s.CreateOrder(ctx, testOrderParams("ref-1"))
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Equal(t, "o1", id)
	assert.Less(t, elapsed, 300*time.Millisecond)
	require.NoError(t, ctx.Err())

	// the request ending must not cut the publish short
	cancel()
	s.Wait()

	errs := publisher.results()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.DeadlineExceeded)
}

func TestOrderServiceUpdateOrderStatus(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "o1").
			Return(domain.Order{ID: "o1", Status: domain.OrderPending}, nil)
		orders.On("SetOrderStatus", mock.Anything, "o1",
			domain.OrderPending, domain.OrderConfirmed, mock.Anything,
		).Return(domain.Order{ID: "o1", Status: domain.OrderConfirmed}, nil)

		o, err := s.UpdateOrderStatus(t.Context(), "o1", domain.OrderConfirmed)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderConfirmed, o.Status)
	})

	t.Run("SameStatusIsNoop", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "o1").
			Return(domain.Order{ID: "o1", Status: domain.OrderShipped}, nil)

		o, err := s.UpdateOrderStatus(t.Context(), "o1", domain.OrderShipped)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShipped, o.Status)
		orders.AssertNotCalled(t, "SetOrderStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Forbidden", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "o1").
			Return(domain.Order{ID: "o1", Status: domain.OrderDelivered}, nil)

		_, err := s.UpdateOrderStatus(t.Context(), "o1", domain.OrderPending)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown", func(t *testing.T) {
		s := service.NewOrders(new(MockOrdersStorage), nil, nil)

		_, err := s.UpdateOrderStatus(t.Context(), "o1", "lost")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ChangedConcurrently", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "o1").
			Return(domain.Order{ID: "o1", Status: domain.OrderPending}, nil)
		orders.On("SetOrderStatus", mock.Anything, "o1",
			domain.OrderPending, domain.OrderCancelled, mock.Anything,
		).Return(domain.Order{}, domain.ErrNotFound)

		_, err := s.UpdateOrderStatus(t.Context(), "o1", domain.OrderCancelled)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "nope").
			Return(domain.Order{}, domain.ErrNotFound)

		_, err := s.UpdateOrderStatus(t.Context(), "nope", domain.OrderConfirmed)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestOrderServicePaymentStatus(t *testing.T) {
	orders := new(MockOrdersStorage)
	publisher := new(MockPublisher)
	s := service.NewOrders(orders, publisher, nil)

	orders.On("SetPaymentStatus", mock.Anything, "o1", domain.PaymentCompleted, mock.Anything).
		Return(domain.Order{
			ID: "o1", Status: domain.OrderPending, PaymentStatus: domain.PaymentCompleted,
		}, nil)
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventPaymentStatusChanged
	})).Return(nil)

	o, err := s.UpdatePaymentStatus(t.Context(), "o1", domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, o.Status)

	_, err = s.UpdatePaymentStatus(t.Context(), "o1", "refunded")
	assert.ErrorIs(t, err, domain.ErrValidation)

	s.Wait()
	publisher.AssertExpectations(t)
}

func TestOrderServiceListOrders(t *testing.T) {
	orders := new(MockOrdersStorage)
	s := service.NewOrders(orders, nil, nil)

	f := domain.OrderFilter{Status: domain.OrderPending}
	orders.On("ListOrders", mock.Anything, f).
		Return([]domain.Order{{ID: "o2"}, {ID: "o1"}}, nil)

	os, err := s.ListOrders(t.Context(), f)
	require.NoError(t, err)
	assert.Len(t, os, 2)

	_, err = s.ListOrders(t.Context(), domain.OrderFilter{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderServiceTrackOrder(t *testing.T) {
	t.Run("FromTracker", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		tracker := new(MockTracker)
		s := service.NewOrders(orders, nil, tracker)

		tracker.On("TrackOrder", mock.Anything, "o1").
			Return(domain.OrderTracking{OrderID: "o1", Status: domain.OrderShipped}, nil)

		tr, err := s.TrackOrder(t.Context(), "o1")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShipped, tr.Status)
		orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("TrackerMissFallsBackToStorage", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		tracker := new(MockTracker)
		s := service.NewOrders(orders, nil, tracker)

		tracker.On("TrackOrder", mock.Anything, "o1").
			Return(domain.OrderTracking{}, domain.ErrNotFound)
		orders.On("GetOrder", mock.Anything, "o1").
			Return(domain.Order{ID: "o1", Status: domain.OrderConfirmed}, nil)

		tr, err := s.TrackOrder(t.Context(), "o1")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderConfirmed, tr.Status)
	})

	t.Run("NoTracker", func(t *testing.T) {
		orders := new(MockOrdersStorage)
		s := service.NewOrders(orders, nil, nil)

		orders.On("GetOrder", mock.Anything, "nope").
			Return(domain.Order{}, domain.ErrNotFound)

		_, err := s.TrackOrder(t.Context(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
