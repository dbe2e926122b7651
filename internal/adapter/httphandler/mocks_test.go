package httphandler_test

import (
	"context"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListProducts(
	ctx context.Context, f domain.ProductFilter,
) ([]domain.Product, error) {
	args := m.Called(ctx, f)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) ListActiveSections(ctx context.Context) ([]domain.Section, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]domain.Section)
	return ss, args.Error(1)
}

func (m *MockCatalog) Home(ctx context.Context) ([]domain.HomeSection, error) {
	args := m.Called(ctx)
	hs, _ := args.Get(0).([]domain.HomeSection)
	return hs, args.Error(1)
}

func (m *MockCatalog) GetBankDetails(ctx context.Context) (domain.BankDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BankDetails), args.Error(1)
}

func (m *MockCatalog) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalog) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) ListSections(ctx context.Context) ([]domain.Section, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]domain.Section)
	return ss, args.Error(1)
}

func (m *MockCatalog) GetSection(ctx context.Context, id string) (domain.Section, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockCatalog) CreateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockCatalog) UpdateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *MockCatalog) DeleteSection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) UpdateBankDetails(
	ctx context.Context, u domain.BankDetailsUpdate,
) (domain.BankDetails, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(domain.BankDetails), args.Error(1)
}

type MockBag struct {
	mock.Mock
}

func (m *MockBag) Bag(ctx context.Context, sid string) (domain.Bag, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Bag), args.Error(1)
}

func (m *MockBag) AddItem(
	ctx context.Context, sid, productID, size, color string,
) (domain.Bag, error) {
	args := m.Called(ctx, sid, productID, size, color)
	return args.Get(0).(domain.Bag), args.Error(1)
}

func (m *MockBag) UpdateQuantity(
	ctx context.Context, sid string, index, quantity int,
) (domain.Bag, error) {
	args := m.Called(ctx, sid, index, quantity)
	return args.Get(0).(domain.Bag), args.Error(1)
}

func (m *MockBag) RemoveItem(ctx context.Context, sid string, index int) (domain.Bag, error) {
	args := m.Called(ctx, sid, index)
	return args.Get(0).(domain.Bag), args.Error(1)
}

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) State(
	ctx context.Context, sid string,
) (domain.Checkout, domain.BagTotals, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Checkout), args.Get(1).(domain.BagTotals), args.Error(2)
}

func (m *MockCheckout) Start(ctx context.Context, sid string) (domain.Checkout, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) SubmitDetails(
	ctx context.Context, sid string, d domain.DeliveryDetails,
) (domain.Checkout, error) {
	args := m.Called(ctx, sid, d)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) SelectPaymentMethod(
	ctx context.Context, sid string, pm domain.PaymentMethod,
) (domain.Checkout, error) {
	args := m.Called(ctx, sid, pm)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) PaymentInstructions(
	ctx context.Context, sid string,
) (domain.PaymentInstructions, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.PaymentInstructions), args.Error(1)
}

func (m *MockCheckout) ConfirmPaid(ctx context.Context, sid string) (domain.Checkout, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) Back(ctx context.Context, sid string) (domain.Checkout, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) PlaceOrder(
	ctx context.Context, sid string, p domain.PaymentConfirmation,
) (domain.Checkout, error) {
	args := m.Called(ctx, sid, p)
	return args.Get(0).(domain.Checkout), args.Error(1)
}

func (m *MockCheckout) UploadPaymentProof(
	ctx context.Context, sid string, img domain.Image,
) (string, error) {
	args := m.Called(ctx, sid, img)
	return args.String(0), args.Error(1)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) CreateOrder(ctx context.Context, p domain.NewOrderParams) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockOrders) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) ListOrders(
	ctx context.Context, f domain.OrderFilter,
) ([]domain.Order, error) {
	args := m.Called(ctx, f)
	os, _ := args.Get(0).([]domain.Order)
	return os, args.Error(1)
}

func (m *MockOrders) UpdateOrderStatus(
	ctx context.Context, id string, s domain.OrderStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) UpdatePaymentStatus(
	ctx context.Context, id string, s domain.PaymentStatus,
) (domain.Order, error) {
	args := m.Called(ctx, id, s)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrders) TrackOrder(ctx context.Context, id string) (domain.OrderTracking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderTracking), args.Error(1)
}

type MockAdmin struct {
	mock.Mock
}

func (m *MockAdmin) Login(ctx context.Context, c domain.Credentials) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockAdmin) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAdmin) Authorize(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAdmin) Stats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

func (m *MockAdmin) UploadImage(ctx context.Context, img domain.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}
