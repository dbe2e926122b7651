package port

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

////////////////////////////////////////////////////////
///////////////          DRIVEN           //////////////
////////////////////////////////////////////////////////

type ProductsStorage interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(context.Context, domain.ProductFilter) ([]domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CountProducts(context.Context) (int, error)
}

// SectionsStorage lists sections in insertion order.
type SectionsStorage interface {
	CreateSection(context.Context, domain.Section) (domain.Section, error)
	GetSection(ctx context.Context, id string) (domain.Section, error)
	ListSections(context.Context) ([]domain.Section, error)
	UpdateSection(context.Context, domain.Section) (domain.Section, error)
	DeleteSection(ctx context.Context, id string) error
}

type SettingsStorage interface {
	GetSettings(context.Context, []domain.SettingKey) (map[domain.SettingKey]string, error)
	SetSettings(context.Context, map[domain.SettingKey]string) error
}

// OrdersStorage assigns order identifiers on insert.
//
// CreateOrder returns the already stored order and existed=true when an
// order with the same checkout reference exists.
type OrdersStorage interface {
	CreateOrder(context.Context, domain.Order) (o domain.Order, existed bool, err error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(context.Context, domain.OrderFilter) ([]domain.Order, error)
	SetOrderStatus(
		ctx context.Context, id string, from, to domain.OrderStatus, at time.Time,
	) (domain.Order, error)
	SetPaymentStatus(
		ctx context.Context, id string, s domain.PaymentStatus, at time.Time,
	) (domain.Order, error)
	OrderStats(context.Context) (domain.DashboardStats, error)
}

// SessionStore keeps per-session state. Sessions never share state.
type SessionStore interface {
	LoadBag(ctx context.Context, sessionID string) (domain.Bag, error)
	SaveBag(ctx context.Context, sessionID string, bag domain.Bag) error
	LoadCheckout(ctx context.Context, sessionID string) (domain.Checkout, bool, error)
	SaveCheckout(ctx context.Context, sessionID string, c domain.Checkout) error

	// CompleteCheckout stores the finished checkout and empties the bag
	// in one atomic step.
	CompleteCheckout(ctx context.Context, sessionID string, c domain.Checkout) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(context.Context, domain.OrderEvent) error
}

type OrderTracker interface {
	TrackOrder(ctx context.Context, orderID string) (domain.OrderTracking, error)
}

type ImageStorage interface {
	SaveImage(ctx context.Context, prefix string, img domain.Image) (url string, err error)
}

type Authenticator interface {
	Verify(context.Context, domain.Credentials) (token string, err error)
	Validate(ctx context.Context, token string) error
	Revoke(ctx context.Context, token string) error
}

type OrderTrackerProcessor interface {
	runnerContextWg
	closer
}

type OrderTrackingView interface {
	OrderTracker
	Run(context.Context, *sync.WaitGroup)
}

////////////////////////////////////////////////////////
///////////////          DRIVING          //////////////
////////////////////////////////////////////////////////

type Catalog interface {
	ListProducts(context.Context, domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListActiveSections(context.Context) ([]domain.Section, error)
	Home(context.Context) ([]domain.HomeSection, error)
	GetBankDetails(context.Context) (domain.BankDetails, error)
}

type CatalogAdmin interface {
	CreateProduct(context.Context, domain.Product) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListSections(context.Context) ([]domain.Section, error)
	GetSection(ctx context.Context, id string) (domain.Section, error)
	CreateSection(context.Context, domain.Section) (domain.Section, error)
	UpdateSection(context.Context, domain.Section) (domain.Section, error)
	DeleteSection(ctx context.Context, id string) error
	GetBankDetails(context.Context) (domain.BankDetails, error)
	UpdateBankDetails(context.Context, domain.BankDetailsUpdate) (domain.BankDetails, error)
}

type BagManager interface {
	Bag(ctx context.Context, sessionID string) (domain.Bag, error)
	AddItem(ctx context.Context, sessionID, productID, size, color string) (domain.Bag, error)
	UpdateQuantity(ctx context.Context, sessionID string, index, quantity int) (domain.Bag, error)
	RemoveItem(ctx context.Context, sessionID string, index int) (domain.Bag, error)
}

type CheckoutWorkflow interface {
	State(ctx context.Context, sessionID string) (domain.Checkout, domain.BagTotals, error)
	Start(ctx context.Context, sessionID string) (domain.Checkout, error)
	SubmitDetails(ctx context.Context, sessionID string, d domain.DeliveryDetails) (domain.Checkout, error)
	SelectPaymentMethod(ctx context.Context, sessionID string, m domain.PaymentMethod) (domain.Checkout, error)
	PaymentInstructions(ctx context.Context, sessionID string) (domain.PaymentInstructions, error)
	ConfirmPaid(ctx context.Context, sessionID string) (domain.Checkout, error)
	Back(ctx context.Context, sessionID string) (domain.Checkout, error)
	PlaceOrder(ctx context.Context, sessionID string, p domain.PaymentConfirmation) (domain.Checkout, error)
	UploadPaymentProof(ctx context.Context, sessionID string, img domain.Image) (string, error)
}

type OrderManager interface {
	CreateOrder(context.Context, domain.NewOrderParams) (string, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListOrders(context.Context, domain.OrderFilter) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, s domain.OrderStatus) (domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, s domain.PaymentStatus) (domain.Order, error)
	TrackOrder(ctx context.Context, id string) (domain.OrderTracking, error)
}

type AdminConsole interface {
	Login(context.Context, domain.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	Authorize(ctx context.Context, token string) error
	Stats(context.Context) (domain.DashboardStats, error)
	UploadImage(context.Context, domain.Image) (string, error)
}
