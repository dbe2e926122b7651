package domain

import "strings"

type CheckoutStep string

const (
	StepDetails             CheckoutStep = "details"
	StepPaymentMethod       CheckoutStep = "payment_method"
	StepPaymentInstructions CheckoutStep = "payment_instructions"
	StepPaymentStatus       CheckoutStep = "payment_status"
	StepSuccess             CheckoutStep = "success"
)

var previousStep = map[CheckoutStep]CheckoutStep{
	StepPaymentMethod:       StepDetails,
	StepPaymentInstructions: StepPaymentMethod,
	StepPaymentStatus:       StepPaymentInstructions,
}

type (
	DeliveryDetails struct {
		Name    string
		Email   string
		Phone   string
		Address string
		City    string
		Pincode string
	}

	PaymentConfirmation struct {
		Status        PaymentStatus
		DisputeReason string
		TransactionID string
		ScreenshotURL string
	}

	// A Checkout is the wizard state of one session.
	//
	// Ref identifies the checkout attempt and makes order placement
	// idempotent.
	Checkout struct {
		Ref           string
		Step          CheckoutStep
		Details       DeliveryDetails
		PaymentMethod PaymentMethod
		Payment       PaymentConfirmation
		OrderID       string
	}

	PaymentInstructions struct {
		Method      PaymentMethod
		AmountDue   int64
		UPIID       string
		UPIQRCode   string
		BankDetails BankDetails
	}
)

// Validate checks presence of every field only.
func (d DeliveryDetails) Validate() error {
	fields := []struct{ name, value string }{
		{"name", d.Name},
		{"phone", d.Phone},
		{"email", d.Email},
		{"address", d.Address},
		{"city", d.City},
		{"pincode", d.Pincode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Invalid("%s is required", f.name)
		}
	}
	return nil
}

func (d DeliveryDetails) normalized() DeliveryDetails {
	return DeliveryDetails{
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		Phone:   strings.TrimSpace(d.Phone),
		Address: strings.TrimSpace(d.Address),
		City:    strings.TrimSpace(d.City),
		Pincode: strings.TrimSpace(d.Pincode),
	}
}

// Validate accepts only the statuses a customer can report.
func (p PaymentConfirmation) Validate() error {
	if p.Status != PaymentCompleted && p.Status != PaymentDisputed {
		return Invalid("payment status must be %q or %q", PaymentCompleted, PaymentDisputed)
	}
	return nil
}

func NewCheckout(ref string) Checkout {
	return Checkout{
		Ref:           ref,
		Step:          StepDetails,
		PaymentMethod: PaymentUPI,
		Payment:       PaymentConfirmation{Status: PaymentCompleted},
	}
}

func (c Checkout) Done() bool {
	return c.Step == StepSuccess
}

func (c *Checkout) SubmitDetails(d DeliveryDetails) error {
	if err := c.expect(StepDetails); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	c.Details = d.normalized()
	c.Step = StepPaymentMethod
	return nil
}

// SelectPaymentMethod keeps the current method when m is empty.
func (c *Checkout) SelectPaymentMethod(m PaymentMethod) error {
	if err := c.expect(StepPaymentMethod); err != nil {
		return err
	}
	if m != "" {
		if !m.Valid() {
			return Invalid("unknown payment method %q", m)
		}
		c.PaymentMethod = m
	}
	c.Step = StepPaymentInstructions
	return nil
}

func (c *Checkout) ConfirmPaid() error {
	if err := c.expect(StepPaymentInstructions); err != nil {
		return err
	}
	c.Step = StepPaymentStatus
	return nil
}

func (c *Checkout) Back() error {
	prev, ok := previousStep[c.Step]
	if !ok {
		return ErrInvalidStep
	}
	c.Step = prev
	return nil
}

// PreparePayment records the reported payment status before the order
// is placed. The wizard stays on the payment status step until Complete.
// The screenshot always comes from the uploaded payment proof.
func (c *Checkout) PreparePayment(p PaymentConfirmation) error {
	if err := c.expect(StepPaymentStatus); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = c.Payment.Status
	}
	p.ScreenshotURL = c.Payment.ScreenshotURL
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status != PaymentDisputed {
		p.DisputeReason = ""
	}
	c.Payment = p
	return nil
}

func (c *Checkout) Complete(orderID string) error {
	if err := c.expect(StepPaymentStatus); err != nil {
		return err
	}
	c.OrderID = orderID
	c.Step = StepSuccess
	return nil
}

func (c Checkout) OrderParams(bag Bag) NewOrderParams {
	return NewOrderParams{
		CheckoutRef:   c.Ref,
		Customer:      c.Details,
		Items:         bag.OrderItems(),
		PaymentMethod: c.PaymentMethod,
		Payment:       c.Payment,
	}
}

func (c Checkout) expect(step CheckoutStep) error {
	if c.Step != step {
		return ErrInvalidStep
	}
	return nil
}

// NewPaymentInstructions shows UPI details or bank account details
// depending on the selected method.
func NewPaymentInstructions(m PaymentMethod, amount int64, bd BankDetails) PaymentInstructions {
	pi := PaymentInstructions{Method: m, AmountDue: amount}
	if m == PaymentUPI {
		pi.UPIID = bd.UPIID
		pi.UPIQRCode = bd.UPIQRCodeURL
		return pi
	}
	pi.BankDetails = BankDetails{
		BankName:      bd.BankName,
		AccountHolder: bd.AccountHolder,
		AccountNumber: bd.AccountNumber,
		IFSCCode:      bd.IFSCCode,
	}
	return pi
}
