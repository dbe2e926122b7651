package redisstore

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
)

var errCorrupt = errors.New("corrupt session record")

type (
	productRecord struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Brand           string    `json:"brand"`
		Description     string    `json:"description,omitempty"`
		Price           int64     `json:"price"`
		OriginalPrice   int64     `json:"original_price"`
		DiscountPercent int       `json:"discount_percent"`
		Images          []string  `json:"images"`
		Sizes           []string  `json:"sizes"`
		Colors          []string  `json:"colors"`
		Category        string    `json:"category"`
		Subcategory     string    `json:"subcategory,omitempty"`
		Stock           int       `json:"stock"`
		Rating          float64   `json:"rating"`
		ReviewsCount    int       `json:"reviews_count"`
		CreatedAt       time.Time `json:"created_at"`
	}

	bagItemRecord struct {
		Product  productRecord `json:"product"`
		Size     string        `json:"size"`
		Color    string        `json:"color"`
		Quantity int           `json:"quantity"`
	}

	bagRecord struct {
		Items []bagItemRecord `json:"items"`
	}

	deliveryRecord struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
		Pincode string `json:"pincode"`
	}

	paymentRecord struct {
		Status        string `json:"status"`
		DisputeReason string `json:"dispute_reason,omitempty"`
		TransactionID string `json:"transaction_id,omitempty"`
		ScreenshotURL string `json:"screenshot_url,omitempty"`
	}

	checkoutRecord struct {
		Ref           string         `json:"ref"`
		Step          string         `json:"step"`
		Details       deliveryRecord `json:"details"`
		PaymentMethod string         `json:"payment_method"`
		Payment       paymentRecord  `json:"payment"`
		OrderID       string         `json:"order_id,omitempty"`
	}
)

func encodeBag(b domain.Bag) ([]byte, error) {
	rec := bagRecord{Items: make([]bagItemRecord, len(b.Items))}
	for i, it := range b.Items {
		p := it.Product
		rec.Items[i] = bagItemRecord{
			Product: productRecord{
				ID:              it.ProductID,
				Name:            p.Name,
				Brand:           p.Brand,
				Description:     p.Description,
				Price:           p.Price,
				OriginalPrice:   p.OriginalPrice,
				DiscountPercent: p.DiscountPercent,
				Images:          p.Images,
				Sizes:           p.Sizes,
				Colors:          p.Colors,
				Category:        string(p.Category),
				Subcategory:     p.Subcategory,
				Stock:           p.Stock,
				Rating:          p.Rating,
				ReviewsCount:    p.ReviewsCount,
				CreatedAt:       p.CreatedAt,
			},
			Size:     it.Size,
			Color:    it.Color,
			Quantity: it.Quantity,
		}
	}
	return json.Marshal(rec)
}

// decodeBag rejects records that could not have been produced by a bag.
func decodeBag(data []byte) (domain.Bag, error) {
	var rec bagRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Bag{}, errors.Join(errCorrupt, err)
	}

	var b domain.Bag
	for _, it := range rec.Items {
		if it.Product.ID == "" || it.Quantity < 1 || it.Product.Price < 0 {
			return domain.Bag{}, errCorrupt
		}
		p := it.Product
		b.Items = append(b.Items, domain.BagItem{
			ProductID: p.ID,
			Product: domain.Product{
				ID:              p.ID,
				Name:            p.Name,
				Brand:           p.Brand,
				Description:     p.Description,
				Price:           p.Price,
				OriginalPrice:   p.OriginalPrice,
				DiscountPercent: p.DiscountPercent,
				Images:          p.Images,
				Sizes:           p.Sizes,
				Colors:          p.Colors,
				Category:        domain.Category(p.Category),
				Subcategory:     p.Subcategory,
				Stock:           p.Stock,
				Rating:          p.Rating,
				ReviewsCount:    p.ReviewsCount,
				CreatedAt:       p.CreatedAt,
			},
			Size:     it.Size,
			Color:    it.Color,
			Quantity: it.Quantity,
		})
	}
	return b, nil
}

func encodeCheckout(c domain.Checkout) ([]byte, error) {
	return json.Marshal(checkoutRecord{
		Ref:  c.Ref,
		Step: string(c.Step),
		Details: deliveryRecord{
			Name:    c.Details.Name,
			Email:   c.Details.Email,
			Phone:   c.Details.Phone,
			Address: c.Details.Address,
			City:    c.Details.City,
			Pincode: c.Details.Pincode,
		},
		PaymentMethod: string(c.PaymentMethod),
		Payment: paymentRecord{
			Status:        string(c.Payment.Status),
			DisputeReason: c.Payment.DisputeReason,
			TransactionID: c.Payment.TransactionID,
			ScreenshotURL: c.Payment.ScreenshotURL,
		},
		OrderID: c.OrderID,
	})
}

func decodeCheckout(data []byte) (domain.Checkout, error) {
	var rec checkoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Checkout{}, errors.Join(errCorrupt, err)
	}

	switch domain.CheckoutStep(rec.Step) {
	case domain.StepDetails, domain.StepPaymentMethod, domain.StepPaymentInstructions,
		domain.StepPaymentStatus, domain.StepSuccess:
	default:
		return domain.Checkout{}, errCorrupt
	}
	if rec.Ref == "" {
		return domain.Checkout{}, errCorrupt
	}

	return domain.Checkout{
		Ref:  rec.Ref,
		Step: domain.CheckoutStep(rec.Step),
		Details: domain.DeliveryDetails{
			Name:    rec.Details.Name,
			Email:   rec.Details.Email,
			Phone:   rec.Details.Phone,
			Address: rec.Details.Address,
			City:    rec.Details.City,
			Pincode: rec.Details.Pincode,
		},
		PaymentMethod: domain.PaymentMethod(rec.PaymentMethod),
		Payment: domain.PaymentConfirmation{
			Status:        domain.PaymentStatus(rec.Payment.Status),
			DisputeReason: rec.Payment.DisputeReason,
			TransactionID: rec.Payment.TransactionID,
			ScreenshotURL: rec.Payment.ScreenshotURL,
		},
		OrderID: rec.OrderID,
	}, nil
}
