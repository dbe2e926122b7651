package domain_test

import (
	"testing"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() domain.DeliveryDetails {
	return domain.DeliveryDetails{
		Name:    " Asha ",
		Email:   "asha@example.com",
		Phone:   "9999999999",
		Address: "1 MG Road",
		City:    "Pune",
		Pincode: "411001",
	}
}

func TestCheckoutWizard(t *testing.T) {
	c := domain.NewCheckout("ref")
	assert.Equal(t, domain.StepDetails, c.Step)
	assert.Equal(t, domain.PaymentUPI, c.PaymentMethod)

	require.NoError(t, c.SubmitDetails(details()))
	assert.Equal(t, domain.StepPaymentMethod, c.Step)
	assert.Equal(t, "Asha", c.Details.Name)

	assert.ErrorIs(t, c.SelectPaymentMethod("cod"), domain.ErrValidation)
	require.NoError(t, c.SelectPaymentMethod(domain.PaymentBankTransfer))
	assert.Equal(t, domain.StepPaymentInstructions, c.Step)

	require.NoError(t, c.ConfirmPaid())
	assert.Equal(t, domain.StepPaymentStatus, c.Step)

	require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{
		Status:        domain.PaymentCompleted,
		DisputeReason: "ignored",
	}))
	assert.Empty(t, c.Payment.DisputeReason)
	assert.Equal(t, domain.StepPaymentStatus, c.Step)

	require.NoError(t, c.Complete("o1"))
	assert.True(t, c.Done())
	assert.Equal(t, "o1", c.OrderID)

	assert.ErrorIs(t, c.Back(), domain.ErrInvalidStep)
}

func TestCheckoutSubmitDetailsMissingField(t *testing.T) {
	fields := map[string]func(*domain.DeliveryDetails){
		"name":    func(d *domain.DeliveryDetails) { d.Name = "" },
		"email":   func(d *domain.DeliveryDetails) { d.Email = "" },
		"phone":   func(d *domain.DeliveryDetails) { d.Phone = "  " },
		"address": func(d *domain.DeliveryDetails) { d.Address = "" },
		"city":    func(d *domain.DeliveryDetails) { d.City = "" },
		"pincode": func(d *domain.DeliveryDetails) { d.Pincode = "" },
	}

	for name, clear := range fields {
		t.Run(name, func(t *testing.T) {
			c := domain.NewCheckout("ref")
			d := details()
			clear(&d)

			err := c.SubmitDetails(d)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), name)
			assert.Equal(t, domain.StepDetails, c.Step)
		})
	}
}

func TestCheckoutSelectDefaultMethod(t *testing.T) {
	c := domain.NewCheckout("ref")
	require.NoError(t, c.SubmitDetails(details()))
	require.NoError(t, c.SelectPaymentMethod(""))
	assert.Equal(t, domain.PaymentUPI, c.PaymentMethod)
}

func TestCheckoutPreparePayment(t *testing.T) {
	atStatus := func(t *testing.T) domain.Checkout {
		t.Helper()
		c := domain.NewCheckout("ref")
		require.NoError(t, c.SubmitDetails(details()))
		require.NoError(t, c.SelectPaymentMethod(""))
		require.NoError(t, c.ConfirmPaid())
		return c
	}

	t.Run("DefaultCompleted", func(t *testing.T) {
		c := atStatus(t)
		require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{}))
		assert.Equal(t, domain.PaymentCompleted, c.Payment.Status)
	})

	t.Run("DisputedKeepsReason", func(t *testing.T) {
		c := atStatus(t)
		require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{
			Status:        domain.PaymentDisputed,
			DisputeReason: "charged twice",
		}))
		assert.Equal(t, "charged twice", c.Payment.DisputeReason)
	})

	t.Run("PendingRejected", func(t *testing.T) {
		c := atStatus(t)
		err := c.PreparePayment(domain.PaymentConfirmation{Status: domain.PaymentPending})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("KeepsUploadedScreenshot", func(t *testing.T) {
		c := atStatus(t)
		c.Payment.ScreenshotURL = "/uploads/p.png"
		require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{}))
		assert.Equal(t, "/uploads/p.png", c.Payment.ScreenshotURL)
	})

	t.Run("IgnoresReportedScreenshot", func(t *testing.T) {
		c := atStatus(t)
		require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{
			ScreenshotURL: "https://elsewhere.example/fake.png",
		}))
		assert.Empty(t, c.Payment.ScreenshotURL)

		c = atStatus(t)
		c.Payment.ScreenshotURL = "/uploads/p.png"
		require.NoError(t, c.PreparePayment(domain.PaymentConfirmation{
			ScreenshotURL: "https://elsewhere.example/fake.png",
		}))
		assert.Equal(t, "/uploads/p.png", c.Payment.ScreenshotURL)
	})

	t.Run("WrongStep", func(t *testing.T) {
		c := domain.NewCheckout("ref")
		err := c.PreparePayment(domain.PaymentConfirmation{})
		assert.ErrorIs(t, err, domain.ErrInvalidStep)
		assert.ErrorIs(t, c.Complete("o1"), domain.ErrInvalidStep)
	})
}

func TestNewPaymentInstructions(t *testing.T) {
	bd := domain.BankDetails{
		BankName:      "HDFC",
		AccountHolder: "Store",
		AccountNumber: "123",
		IFSCCode:      "HDFC0001",
		UPIID:         "store@upi",
		UPIQRCodeURL:  "/uploads/qr.png",
	}

	upi := domain.NewPaymentInstructions(domain.PaymentUPI, 778, bd)
	assert.Equal(t, int64(778), upi.AmountDue)
	assert.Equal(t, "store@upi", upi.UPIID)
	assert.Equal(t, "/uploads/qr.png", upi.UPIQRCode)
	assert.Zero(t, upi.BankDetails)

	bank := domain.NewPaymentInstructions(domain.PaymentBankTransfer, 778, bd)
	assert.Empty(t, bank.UPIID)
	assert.Equal(t, "123", bank.BankDetails.AccountNumber)
	assert.Empty(t, bank.BankDetails.UPIID)
}
