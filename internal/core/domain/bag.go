package domain

const (
	FreeDeliveryThreshold int64 = 799
	DeliveryFee           int64 = 79

	defaultColor = "Default"
)

type (
	// A BagItem holds a product snapshot taken when the item was added.
	// Later catalog changes do not affect it.
	BagItem struct {
		ProductID string
		Product   Product
		Size      string
		Color     string
		Quantity  int
	}

	Bag struct {
		Items []BagItem
	}

	BagTotals struct {
		Subtotal    int64
		Discount    int64
		DeliveryFee int64
		Total       int64
	}
)

// DeliveryFeeFor returns the flat delivery fee for subtotals
// below [FreeDeliveryThreshold].
func DeliveryFeeFor(subtotal int64) int64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return DeliveryFee
}

func (b Bag) IsEmpty() bool {
	return len(b.Items) == 0
}

// Add increments the quantity of the line with the same product and size,
// or appends a new line with quantity 1.
//
// Empty size and color fall back to the product's first option.
func (b *Bag) Add(p Product, size, color string) {
	if size == "" && len(p.Sizes) != 0 {
		size = p.Sizes[0]
	}
	if color == "" {
		color = defaultColor
		if len(p.Colors) != 0 {
			color = p.Colors[0]
		}
	}

	for i := range b.Items {
		if b.Items[i].ProductID == p.ID && b.Items[i].Size == size {
			b.Items[i].Quantity++
			return
		}
	}

	b.Items = append(b.Items, BagItem{
		ProductID: p.ID,
		Product:   p,
		Size:      size,
		Color:     color,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of the line at index.
// Quantities below 1 are ignored, the line is not removed.
func (b *Bag) UpdateQuantity(index, quantity int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if quantity < 1 {
		return nil
	}
	b.Items[index].Quantity = quantity
	return nil
}

func (b *Bag) Remove(index int) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	b.Items = append(b.Items[:index], b.Items[index+1:]...)
	return nil
}

func (b Bag) Totals() (t BagTotals) {
	for _, it := range b.Items {
		qty := int64(it.Quantity)
		t.Subtotal += it.Product.Price * qty
		t.Discount += (it.Product.OriginalPrice - it.Product.Price) * qty
	}
	t.DeliveryFee = DeliveryFeeFor(t.Subtotal)
	t.Total = t.Subtotal + t.DeliveryFee
	return t
}

// OrderItems denormalizes the bag into order line items.
func (b Bag) OrderItems() []OrderItem {
	items := make([]OrderItem, len(b.Items))
	for i, it := range b.Items {
		items[i] = OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Size:        it.Size,
			Color:       it.Color,
			Quantity:    it.Quantity,
			Price:       it.Product.Price,
		}
	}
	return items
}

func (b Bag) checkIndex(index int) error {
	if index < 0 || index >= len(b.Items) {
		return Invalid("no bag item at index %d", index)
	}
	return nil
}
