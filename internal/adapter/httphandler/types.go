package httphandler

import (
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
)

////// CATALOG //////

type (
	Product struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Brand           string    `json:"brand"`
		Description     string    `json:"description"`
		Price           int64     `json:"price"`
		OriginalPrice   int64     `json:"original_price"`
		DiscountPercent int       `json:"discount_percent"`
		Images          []string  `json:"images"`
		Sizes           []string  `json:"sizes"`
		Colors          []string  `json:"colors"`
		Category        string    `json:"category"`
		Subcategory     string    `json:"subcategory"`
		Stock           int       `json:"stock"`
		Rating          float64   `json:"rating"`
		ReviewsCount    int       `json:"reviews_count"`
		CreatedAt       time.Time `json:"created_at"`
	}

	ProductInput struct {
		Name          string   `json:"name"`
		Brand         string   `json:"brand"`
		Description   string   `json:"description"`
		Price         int64    `json:"price"`
		OriginalPrice int64    `json:"original_price"`
		Images        []string `json:"images"`
		Sizes         []string `json:"sizes"`
		Colors        []string `json:"colors"`
		Category      string   `json:"category"`
		Subcategory   string   `json:"subcategory"`
		Stock         int      `json:"stock"`
		Rating        float64  `json:"rating"`
		ReviewsCount  int      `json:"reviews_count"`
	}

	Section struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Subtitle     string    `json:"subtitle,omitempty"`
		Type         string    `json:"type"`
		Category     string    `json:"category,omitempty"`
		ProductIDs   []string  `json:"product_ids"`
		DisplayOrder int       `json:"display_order"`
		IsActive     bool      `json:"is_active"`
		DiscountText string    `json:"discount_text,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	SectionInput struct {
		Title        string   `json:"title"`
		Subtitle     string   `json:"subtitle"`
		Type         string   `json:"type"`
		Category     string   `json:"category"`
		ProductIDs   []string `json:"product_ids"`
		DisplayOrder int      `json:"display_order"`
		IsActive     bool     `json:"is_active"`
		DiscountText string   `json:"discount_text"`
	}

	HomeSection struct {
		Section
		Products []Product `json:"products"`
	}

	BankDetails struct {
		BankName      string `json:"bank_name"`
		AccountHolder string `json:"account_holder"`
		AccountNumber string `json:"account_number"`
		IFSCCode      string `json:"ifsc_code"`
		UPIID         string `json:"upi_id"`
		UPIQRCodeURL  string `json:"upi_qr_code_url"`
	}

	BankDetailsInput struct {
		BankName      *string `json:"bank_name"`
		AccountHolder *string `json:"account_holder"`
		AccountNumber *string `json:"account_number"`
		IFSCCode      *string `json:"ifsc_code"`
		UPIID         *string `json:"upi_id"`
		UPIQRCodeURL  *string `json:"upi_qr_code_url"`
	}
)

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent,
		Images:          nonNil(p.Images),
		Sizes:           nonNil(p.Sizes),
		Colors:          nonNil(p.Colors),
		Category:        string(p.Category),
		Subcategory:     p.Subcategory,
		Stock:           p.Stock,
		Rating:          p.Rating,
		ReviewsCount:    p.ReviewsCount,
		CreatedAt:       p.CreatedAt,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = productFromDomain(p)
	}
	return out
}

func (in ProductInput) toDomain(id string) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          in.Name,
		Brand:         in.Brand,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Images:        in.Images,
		Sizes:         in.Sizes,
		Colors:        in.Colors,
		Category:      domain.Category(in.Category),
		Subcategory:   in.Subcategory,
		Stock:         in.Stock,
		Rating:        in.Rating,
		ReviewsCount:  in.ReviewsCount,
	}
}

func sectionFromDomain(s domain.Section) Section {
	return Section{
		ID:           s.ID,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		Type:         string(s.Type),
		Category:     s.Category,
		ProductIDs:   nonNil(s.ProductIDs),
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
		DiscountText: s.DiscountText,
		CreatedAt:    s.CreatedAt,
	}
}

func sectionsFromDomain(ss []domain.Section) []Section {
	out := make([]Section, len(ss))
	for i, s := range ss {
		out[i] = sectionFromDomain(s)
	}
	return out
}

func (in SectionInput) toDomain(id string) domain.Section {
	return domain.Section{
		ID:           id,
		Title:        in.Title,
		Subtitle:     in.Subtitle,
		Type:         domain.SectionType(in.Type),
		Category:     in.Category,
		ProductIDs:   in.ProductIDs,
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
		DiscountText: in.DiscountText,
	}
}

func bankDetailsFromDomain(bd domain.BankDetails) BankDetails {
	return BankDetails(bd)
}

func (in BankDetailsInput) toDomain() domain.BankDetailsUpdate {
	return domain.BankDetailsUpdate(in)
}

////// BAG //////

type (
	BagItem struct {
		Index     int     `json:"index"`
		ProductID string  `json:"product_id"`
		Product   Product `json:"product"`
		Size      string  `json:"size"`
		Color     string  `json:"color"`
		Quantity  int     `json:"quantity"`
	}

	Totals struct {
		Subtotal    int64 `json:"subtotal"`
		Discount    int64 `json:"discount"`
		DeliveryFee int64 `json:"delivery_fee"`
		Total       int64 `json:"total"`
	}

	Bag struct {
		Items  []BagItem `json:"items"`
		Totals Totals    `json:"totals"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}
)

func totalsFromDomain(t domain.BagTotals) Totals {
	return Totals(t)
}

func bagFromDomain(b domain.Bag) Bag {
	items := make([]BagItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = BagItem{
			Index:     i,
			ProductID: it.ProductID,
			Product:   productFromDomain(it.Product),
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
		}
	}
	return Bag{Items: items, Totals: totalsFromDomain(b.Totals())}
}

////// CHECKOUT //////

type (
	DeliveryDetails struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
		Pincode string `json:"pincode"`
	}

	Payment struct {
		Status        string `json:"status"`
		DisputeReason string `json:"dispute_reason,omitempty"`
		TransactionID string `json:"transaction_id,omitempty"`
		ScreenshotURL string `json:"screenshot_url,omitempty"`
	}

	// PlaceOrderRequest has no screenshot field, the screenshot is
	// attached by the payment proof upload only.
	PlaceOrderRequest struct {
		Status        string `json:"status"`
		DisputeReason string `json:"dispute_reason,omitempty"`
		TransactionID string `json:"transaction_id,omitempty"`
	}

	Checkout struct {
		Ref           string          `json:"ref"`
		Step          string          `json:"step"`
		Details       DeliveryDetails `json:"details"`
		PaymentMethod string          `json:"payment_method"`
		Payment       Payment         `json:"payment"`
		OrderID       string          `json:"order_id,omitempty"`
		Totals        *Totals         `json:"totals,omitempty"`
	}

	PaymentMethodRequest struct {
		PaymentMethod string `json:"payment_method"`
	}

	PaymentInstructions struct {
		Method      string       `json:"method"`
		AmountDue   int64        `json:"amount_due"`
		UPIID       string       `json:"upi_id,omitempty"`
		UPIQRCode   string       `json:"upi_qr_code,omitempty"`
		BankDetails *BankDetails `json:"bank_details,omitempty"`
	}

	UploadResponse struct {
		URL string `json:"url"`
	}
)

func checkoutFromDomain(c domain.Checkout) Checkout {
	return Checkout{
		Ref:           c.Ref,
		Step:          string(c.Step),
		Details:       DeliveryDetails(c.Details),
		PaymentMethod: string(c.PaymentMethod),
		Payment: Payment{
			Status:        string(c.Payment.Status),
			DisputeReason: c.Payment.DisputeReason,
			TransactionID: c.Payment.TransactionID,
			ScreenshotURL: c.Payment.ScreenshotURL,
		},
		OrderID: c.OrderID,
	}
}

func (p PlaceOrderRequest) toDomain() domain.PaymentConfirmation {
	return domain.PaymentConfirmation{
		Status:        domain.PaymentStatus(p.Status),
		DisputeReason: p.DisputeReason,
		TransactionID: p.TransactionID,
	}
}

func instructionsFromDomain(pi domain.PaymentInstructions) PaymentInstructions {
	out := PaymentInstructions{
		Method:    string(pi.Method),
		AmountDue: pi.AmountDue,
		UPIID:     pi.UPIID,
		UPIQRCode: pi.UPIQRCode,
	}
	if pi.Method == domain.PaymentBankTransfer {
		bd := bankDetailsFromDomain(pi.BankDetails)
		out.BankDetails = &bd
	}
	return out
}

////// ORDERS //////

type (
	OrderItem struct {
		ProductID   string `json:"product_id"`
		ProductName string `json:"product_name"`
		Size        string `json:"size"`
		Color       string `json:"color"`
		Quantity    int    `json:"quantity"`
		Price       int64  `json:"price"`
	}

	Order struct {
		ID            string      `json:"id"`
		CustomerName  string      `json:"customer_name"`
		Email         string      `json:"email"`
		Phone         string      `json:"phone"`
		Address       string      `json:"address"`
		City          string      `json:"city"`
		Pincode       string      `json:"pincode"`
		Items         []OrderItem `json:"items"`
		TotalAmount   int64       `json:"total_amount"`
		Status        string      `json:"status"`
		PaymentMethod string      `json:"payment_method"`
		PaymentStatus string      `json:"payment_status"`
		DisputeReason string      `json:"dispute_reason,omitempty"`
		TransactionID string      `json:"transaction_id,omitempty"`
		ScreenshotURL string      `json:"screenshot_url,omitempty"`
		CreatedAt     time.Time   `json:"created_at"`
		UpdatedAt     time.Time   `json:"updated_at"`
	}

	OrderTracking struct {
		OrderID       string    `json:"order_id"`
		Status        string    `json:"status"`
		PaymentStatus string    `json:"payment_status"`
		TotalAmount   int64     `json:"total_amount"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	StatusRequest struct {
		Status string `json:"status"`
	}
)

func orderFromDomain(o domain.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItem(it)
	}
	return Order{
		ID:            o.ID,
		CustomerName:  o.Customer.Name,
		Email:         o.Customer.Email,
		Phone:         o.Customer.Phone,
		Address:       o.Customer.Address,
		City:          o.Customer.City,
		Pincode:       o.Customer.Pincode,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		DisputeReason: o.DisputeReason,
		TransactionID: o.TransactionID,
		ScreenshotURL: o.ScreenshotURL,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func trackingFromDomain(t domain.OrderTracking) OrderTracking {
	return OrderTracking{
		OrderID:       t.OrderID,
		Status:        string(t.Status),
		PaymentStatus: string(t.PaymentStatus),
		TotalAmount:   t.TotalAmount,
		UpdatedAt:     t.UpdatedAt,
	}
}

////// ADMIN //////

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	Stats struct {
		TotalProducts int   `json:"total_products"`
		TotalOrders   int   `json:"total_orders"`
		TotalRevenue  int64 `json:"total_revenue"`
		PendingOrders int   `json:"pending_orders"`
	}
)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
