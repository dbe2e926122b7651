package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.CheckoutWorkflow = (*CheckoutService)(nil)

// A CheckoutService drives the per-session checkout wizard:
// details, payment method, payment instructions, payment status, success.
type CheckoutService struct {
	sessions port.SessionStore
	orders   port.OrderManager
	settings port.SettingsStorage
	images   port.ImageStorage
	newRef   func() string
}

func NewCheckout(
	sessions port.SessionStore,
	orders port.OrderManager,
	settings port.SettingsStorage,
	images port.ImageStorage,
) CheckoutService {
	return CheckoutService{
		sessions: sessions,
		orders:   orders,
		settings: settings,
		images:   images,
		newRef:   uuid.NewString,
	}
}

// State returns the current wizard state with the bag totals.
// A session without a checkout gets a fresh one that is not stored.
func (s CheckoutService) State(
	ctx context.Context, sessionID string,
) (domain.Checkout, domain.BagTotals, error) {
	const op = "CheckoutService.State"

	if err := ctx.Err(); err != nil {
		return domain.Checkout{}, domain.BagTotals{}, opErr(err, op)
	}

	bag, err := s.sessions.LoadBag(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, domain.BagTotals{}, opErr(err, op)
	}

	c, ok, err := s.sessions.LoadCheckout(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, domain.BagTotals{}, opErr(err, op)
	}
	if !ok {
		c = domain.NewCheckout("")
	}
	return c, bag.Totals(), nil
}

// Start opens the wizard. An unfinished checkout is resumed,
// a finished or missing one is replaced.
func (s CheckoutService) Start(
	ctx context.Context, sessionID string,
) (domain.Checkout, error) {
	const op = "CheckoutService.Start"

	if err := ctx.Err(); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	bag, err := s.sessions.LoadBag(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, opErr(err, op)
	}
	if bag.IsEmpty() {
		return domain.Checkout{}, opErr(domain.ErrEmptyBag, op)
	}

	c, ok, err := s.sessions.LoadCheckout(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, opErr(err, op)
	}
	if ok && !c.Done() {
		return c, nil
	}

	c = domain.NewCheckout(s.newRef())
	if err := s.sessions.SaveCheckout(ctx, sessionID, c); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}
	return c, nil
}

func (s CheckoutService) SubmitDetails(
	ctx context.Context, sessionID string, d domain.DeliveryDetails,
) (domain.Checkout, error) {
	const op = "CheckoutService.SubmitDetails"

	return s.step(ctx, sessionID, op, func(c *domain.Checkout) error {
		return c.SubmitDetails(d)
	})
}

func (s CheckoutService) SelectPaymentMethod(
	ctx context.Context, sessionID string, m domain.PaymentMethod,
) (domain.Checkout, error) {
	const op = "CheckoutService.SelectPaymentMethod"

	return s.step(ctx, sessionID, op, func(c *domain.Checkout) error {
		return c.SelectPaymentMethod(m)
	})
}

func (s CheckoutService) ConfirmPaid(
	ctx context.Context, sessionID string,
) (domain.Checkout, error) {
	const op = "CheckoutService.ConfirmPaid"

	return s.step(ctx, sessionID, op, func(c *domain.Checkout) error {
		return c.ConfirmPaid()
	})
}

func (s CheckoutService) Back(
	ctx context.Context, sessionID string,
) (domain.Checkout, error) {
	const op = "CheckoutService.Back"

	return s.step(ctx, sessionID, op, func(c *domain.Checkout) error {
		return c.Back()
	})
}

// PaymentInstructions shows where to pay the current bag total.
func (s CheckoutService) PaymentInstructions(
	ctx context.Context, sessionID string,
) (domain.PaymentInstructions, error) {
	const op = "CheckoutService.PaymentInstructions"

	if err := ctx.Err(); err != nil {
		return domain.PaymentInstructions{}, opErr(err, op)
	}

	bag, c, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.PaymentInstructions{}, opErr(err, op)
	}

	if !paymentStep(c.Step) {
		return domain.PaymentInstructions{}, opErr(domain.ErrInvalidStep, op)
	}

	m, err := s.settings.GetSettings(ctx, domain.BankSettingKeys)
	if err != nil {
		return domain.PaymentInstructions{}, opErr(err, op)
	}

	return domain.NewPaymentInstructions(
		c.PaymentMethod, bag.Totals().Total, domain.BankDetailsFromSettings(m),
	), nil
}

// PlaceOrder persists the order and only then completes the checkout,
// clearing the bag. On failure the bag and the wizard stay untouched.
func (s CheckoutService) PlaceOrder(
	ctx context.Context, sessionID string, p domain.PaymentConfirmation,
) (domain.Checkout, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	bag, c, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	if err := c.PreparePayment(p); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	orderID, err := s.orders.CreateOrder(ctx, c.OrderParams(bag))
	if err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	if err := c.Complete(orderID); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	if err := s.sessions.CompleteCheckout(ctx, sessionID, c); err != nil {
		log.Error("order placed but checkout not completed",
			"orderID", orderID, "checkoutRef", c.Ref, "err", err)
		return domain.Checkout{}, opErr(err, op)
	}

	log.Info("order placed", "orderID", orderID, "checkoutRef", c.Ref)
	return c, nil
}

// UploadPaymentProof stores a payment screenshot and attaches it to the
// checkout. It is allowed once payment instructions are shown.
func (s CheckoutService) UploadPaymentProof(
	ctx context.Context, sessionID string, img domain.Image,
) (string, error) {
	const op = "CheckoutService.UploadPaymentProof"

	if err := ctx.Err(); err != nil {
		return "", opErr(err, op)
	}

	_, c, err := s.load(ctx, sessionID)
	if err != nil {
		return "", opErr(err, op)
	}

	if !paymentStep(c.Step) {
		return "", opErr(domain.ErrInvalidStep, op)
	}

	if err := img.Validate(); err != nil {
		return "", opErr(err, op)
	}

	url, err := s.images.SaveImage(ctx, "payment", img)
	if err != nil {
		return "", opErr(err, op)
	}

	c.Payment.ScreenshotURL = url
	if err := s.sessions.SaveCheckout(ctx, sessionID, c); err != nil {
		return "", opErr(err, op)
	}
	return url, nil
}

func (s CheckoutService) step(
	ctx context.Context, sessionID, op string, fn func(*domain.Checkout) error,
) (domain.Checkout, error) {
	if err := ctx.Err(); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	_, c, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	if err := fn(&c); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}

	if err := s.sessions.SaveCheckout(ctx, sessionID, c); err != nil {
		return domain.Checkout{}, opErr(err, op)
	}
	return c, nil
}

// load returns the bag and an unfinished checkout. A checkout is started
// implicitly when the session has none.
func (s CheckoutService) load(
	ctx context.Context, sessionID string,
) (domain.Bag, domain.Checkout, error) {
	bag, err := s.sessions.LoadBag(ctx, sessionID)
	if err != nil {
		return domain.Bag{}, domain.Checkout{}, err
	}

	c, ok, err := s.sessions.LoadCheckout(ctx, sessionID)
	if err != nil {
		return domain.Bag{}, domain.Checkout{}, err
	}

	switch {
	case ok && c.Done():
		return domain.Bag{}, domain.Checkout{}, domain.ErrInvalidStep
	case bag.IsEmpty():
		return domain.Bag{}, domain.Checkout{}, domain.ErrEmptyBag
	case !ok:
		c = domain.NewCheckout(s.newRef())
	}
	return bag, c, nil
}

func paymentStep(step domain.CheckoutStep) bool {
	return step == domain.StepPaymentInstructions || step == domain.StepPaymentStatus
}
