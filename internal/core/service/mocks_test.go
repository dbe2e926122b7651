package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductsStorage struct {
	mock.Mock
}

func (m *MockProductsStorage) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) ListProducts(
	ctx context.Context, f domain.ProductFilter,
) ([]domain.Product, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) ProductsByIDs(
	ctx context.Context, ids []string,
) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductsStorage) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductsStorage) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSectionsStorage struct {
	mock.Mock
}

func (m *MockSectionsStorage) CreateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockSectionsStorage) GetSection(
	ctx context.Context, id string,
) (domain.Section, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockSectionsStorage) ListSections(ctx context.Context) ([]domain.Section, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Section), args.Error(1)
}

func (m *MockSectionsStorage) UpdateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockSectionsStorage) DeleteSection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSettingsStorage struct {
	mock.Mock
}

func (m *MockSettingsStorage) GetSettings(
	ctx context.Context, keys []domain.SettingKey,
) (map[domain.SettingKey]string, error) {
	args := m.Called(ctx, keys)
	return args.Get(0).(map[domain.SettingKey]string), args.Error(1)
}

func (m *MockSettingsStorage) SetSettings(
	ctx context.Context, s map[domain.SettingKey]string,
) error {
	return m.Called(ctx, s).Error(0)
}

type MockOrdersStorage struct {
	mock.Mock
}

func (m *MockOrdersStorage) CreateOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, bool, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(domain.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrdersStorage) GetOrder(
	ctx context.Context, id string,
) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) ListOrders(
	ctx context.Context, f domain.OrderFilter,
) ([]domain.Order, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) SetOrderStatus(
	ctx context.Context, id string, from, to domain.OrderStatus, at time.Time,
) (domain.Order, error) {
	args := m.Called(ctx, id, from, to, at)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) SetPaymentStatus(
	ctx context.Context, id string, s domain.PaymentStatus, at time.Time,
) (domain.Order, error) {
	args := m.Called(ctx, id, s, at)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) OrderStats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderEvent(ctx context.Context, e domain.OrderEvent) error {
	return m.Called(ctx, e).Error(0)
}

// blockingPublisher holds every publish until its context ends,
// like a producer facing unreachable brokers.
type blockingPublisher struct {
	mu   sync.Mutex
	errs []error
}

func (p *blockingPublisher) PublishOrderEvent(ctx context.Context, _ domain.OrderEvent) error {
	<-ctx.Done()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, ctx.Err())
	return ctx.Err()
}

func (p *blockingPublisher) results() []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.errs)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) TrackOrder(
	ctx context.Context, id string,
) (domain.OrderTracking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderTracking), args.Error(1)
}

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) SaveImage(
	ctx context.Context, prefix string, img domain.Image,
) (string, error) {
	args := m.Called(ctx, prefix, img)
	return args.String(0), args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Verify(
	ctx context.Context, c domain.Credentials,
) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Validate(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthenticator) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockOrderManager struct {
	mock.Mock
}

func (m *MockOrderManager) CreateOrder(
	ctx context.Context, p domain.NewOrderParams,
) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockOrderManager) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderManager) ListOrders(
	ctx context.Context, f domain.OrderFilter,
) ([]domain.Order, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderManager) UpdateOrderStatus(
	ctx context.Context, id string, s domain.OrderStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderManager) UpdatePaymentStatus(
	ctx context.Context, id string, s domain.PaymentStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrderManager) TrackOrder(
	ctx context.Context, id string,
) (domain.OrderTracking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderTracking), args.Error(1)
}

// memSessions is an in-memory session store.
type memSessions struct {
	mu        sync.Mutex
	bags      map[string]domain.Bag
	checkouts map[string]domain.Checkout
	failSave  error
}

func newMemSessions() *memSessions {
	return &memSessions{
		bags:      make(map[string]domain.Bag),
		checkouts: make(map[string]domain.Checkout),
	}
}

func (s *memSessions) LoadBag(ctx context.Context, sid string) (domain.Bag, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bag{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bags[sid]
	return domain.Bag{Items: slices.Clone(b.Items)}, nil
}

func (s *memSessions) SaveBag(ctx context.Context, sid string, b domain.Bag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.bags[sid] = domain.Bag{Items: slices.Clone(b.Items)}
	return nil
}

func (s *memSessions) LoadCheckout(
	ctx context.Context, sid string,
) (domain.Checkout, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Checkout{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.checkouts[sid]
	return c, ok, nil
}

func (s *memSessions) SaveCheckout(ctx context.Context, sid string, c domain.Checkout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.checkouts[sid] = c
	return nil
}

func (s *memSessions) CompleteCheckout(
	ctx context.Context, sid string, c domain.Checkout,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.checkouts[sid] = c
	delete(s.bags, sid)
	return nil
}

func testProduct(id string, price, original int64) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product " + id,
		Brand:         "Brand",
		Price:         price,
		OriginalPrice: original,
		Images:        []string{"/uploads/" + id + ".jpg"},
		Sizes:         []string{"S", "M", "L"},
		Colors:        []string{"Black", "White"},
		Category:      domain.CategoryMen,
	}
}
