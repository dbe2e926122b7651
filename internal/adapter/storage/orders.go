package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

const orderColumns = `
	id, checkout_ref, customer_name, email, phone, address, city, pincode,
	total_amount, status, payment_method, payment_status, dispute_reason,
	transaction_id, screenshot_url, created_at, updated_at`

type (
	orderRow struct {
		ID            string    `db:"id"`
		CheckoutRef   string    `db:"checkout_ref"`
		CustomerName  string    `db:"customer_name"`
		Email         string    `db:"email"`
		Phone         string    `db:"phone"`
		Address       string    `db:"address"`
		City          string    `db:"city"`
		Pincode       string    `db:"pincode"`
		TotalAmount   int64     `db:"total_amount"`
		Status        string    `db:"status"`
		PaymentMethod string    `db:"payment_method"`
		PaymentStatus string    `db:"payment_status"`
		DisputeReason string    `db:"dispute_reason"`
		TransactionID string    `db:"transaction_id"`
		ScreenshotURL string    `db:"screenshot_url"`
		CreatedAt     time.Time `db:"created_at"`
		UpdatedAt     time.Time `db:"updated_at"`
	}

	orderItemRow struct {
		OrderID     string `db:"order_id"`
		Line        int    `db:"line"`
		ProductID   string `db:"product_id"`
		ProductName string `db:"product_name"`
		Size        string `db:"size"`
		Color       string `db:"color"`
		Quantity    int    `db:"quantity"`
		Price       int64  `db:"price"`
	}
)

func newOrderRow(o domain.Order) orderRow {
	return orderRow{
		ID:            o.ID,
		CheckoutRef:   o.CheckoutRef,
		CustomerName:  o.Customer.Name,
		Email:         o.Customer.Email,
		Phone:         o.Customer.Phone,
		Address:       o.Customer.Address,
		City:          o.Customer.City,
		Pincode:       o.Customer.Pincode,
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

func (r orderRow) toDomain(items []domain.OrderItem) domain.Order {
	return domain.Order{
		ID:          r.ID,
		CheckoutRef: r.CheckoutRef,
		Customer: domain.DeliveryDetails{
			Name:    r.CustomerName,
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address,
			City:    r.City,
			Pincode: r.Pincode,
		},
		Items:         items,
		TotalAmount:   r.TotalAmount,
		Status:        domain.OrderStatus(r.Status),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		PaymentStatus: domain.PaymentStatus(r.PaymentStatus),
		DisputeReason: r.DisputeReason,
		TransactionID: r.TransactionID,
		ScreenshotURL: r.ScreenshotURL,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func (r orderItemRow) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Size:        r.Size,
		Color:       r.Color,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

type OrdersRepository struct {
	db *sqlx.DB
}

func NewOrdersRepository(db SQLDB) OrdersRepository {
	return OrdersRepository{db.DB}
}

// CreateOrder inserts the order with its items in one transaction.
// The checkout reference is unique, a repeated insert returns the
// stored order with existed set.
func (r OrdersRepository) CreateOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, bool, error) {
	const op = "OrdersRepository.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, false, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Order{}, false, storageErr(op, err)
	}
	defer rollback(op, tx)

	o.ID = uuid.NewString()

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES (
			:id, :checkout_ref, :customer_name, :email, :phone, :address,
			:city, :pincode, :total_amount, :status, :payment_method,
			:payment_status, :dispute_reason, :transaction_id,
			:screenshot_url, :created_at, :updated_at
		)
		ON CONFLICT (checkout_ref) DO NOTHING;`

	res, err := tx.NamedExecContext(ctx, query, newOrderRow(o))
	if err != nil {
		return domain.Order{}, false, storageErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, false, storageErr(op, err)
	}

	if n == 0 {
		rollback(op, tx)
		stored, err := r.orderByRef(ctx, o.CheckoutRef)
		if err != nil {
			return domain.Order{}, false, fmt.Errorf("%s: %w", op, err)
		}
		return stored, true, nil
	}

	itemsQuery := `
		INSERT INTO order_items (
			order_id, line, product_id, product_name, size, color, quantity, price
		)
		VALUES (
			:order_id, :line, :product_id, :product_name, :size, :color,
			:quantity, :price
		);`

	for i, it := range o.Items {
		row := orderItemRow{
			OrderID:     o.ID,
			Line:        i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Color:       it.Color,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
		if _, err := tx.NamedExecContext(ctx, itemsQuery, row); err != nil {
			return domain.Order{}, false, storageErr(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, false, storageErr(op, err)
	}
	return o, false, nil
}

func (r OrdersRepository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	const op = "OrdersRepository.GetOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	o, err := r.getOrder(ctx, `id = $1`, id)
	if err != nil {
		return domain.Order{}, storageErr(op, err)
	}
	return o, nil
}

// ListOrders returns the newest orders first.
func (r OrdersRepository) ListOrders(
	ctx context.Context, f domain.OrderFilter,
) ([]domain.Order, error) {
	const op = "OrdersRepository.ListOrders"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id;`

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, string(f.Status)); err != nil {
		return nil, storageErr(op, err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	items, err := loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, storageErr(op, err)
	}

	os := make([]domain.Order, len(rows))
	for i, row := range rows {
		os[i] = row.toDomain(items[row.ID])
	}
	return os, nil
}

// SetOrderStatus updates the status only if it still equals from.
// A lost race is reported as [domain.ErrNotFound].
func (r OrdersRepository) SetOrderStatus(
	ctx context.Context, id string, from, to domain.OrderStatus, at time.Time,
) (domain.Order, error) {
	const op = "OrdersRepository.SetOrderStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE orders SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2;`

	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return domain.Order{}, storageErr(op, err)
	}
	if err := affectedOne(op, res); err != nil {
		return domain.Order{}, err
	}

	o, err := r.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (r OrdersRepository) SetPaymentStatus(
	ctx context.Context, id string, s domain.PaymentStatus, at time.Time,
) (domain.Order, error) {
	const op = "OrdersRepository.SetPaymentStatus"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE orders SET payment_status = $2, updated_at = $3 WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, query, id, string(s), at)
	if err != nil {
		return domain.Order{}, storageErr(op, err)
	}
	if err := affectedOne(op, res); err != nil {
		return domain.Order{}, err
	}

	o, err := r.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// OrderStats leaves TotalProducts to the products storage.
// Revenue excludes cancelled orders.
func (r OrdersRepository) OrderStats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "OrdersRepository.OrderStats"

	if err := ctx.Err(); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			count(*) AS total_orders,
			COALESCE(SUM(total_amount) FILTER (WHERE status <> $1), 0) AS total_revenue,
			count(*) FILTER (WHERE status = $2) AS pending_orders
		FROM orders;`

	var row struct {
		TotalOrders   int   `db:"total_orders"`
		TotalRevenue  int64 `db:"total_revenue"`
		PendingOrders int   `db:"pending_orders"`
	}
	err := r.db.GetContext(ctx, &row, query,
		string(domain.OrderCancelled), string(domain.OrderPending))
	if err != nil {
		return domain.DashboardStats{}, storageErr(op, err)
	}

	return domain.DashboardStats{
		TotalOrders:   row.TotalOrders,
		TotalRevenue:  row.TotalRevenue,
		PendingOrders: row.PendingOrders,
	}, nil
}

func (r OrdersRepository) orderByRef(ctx context.Context, ref string) (domain.Order, error) {
	const op = "OrdersRepository.orderByRef"

	o, err := r.getOrder(ctx, `checkout_ref = $1`, ref)
	if err != nil {
		return domain.Order{}, storageErr(op, err)
	}
	return o, nil
}

func (r OrdersRepository) getOrder(
	ctx context.Context, where string, arg any,
) (domain.Order, error) {
	var row orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where + `;`
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return domain.Order{}, err
	}

	items, err := loadItems(ctx, r.db, []string{row.ID})
	if err != nil {
		return domain.Order{}, err
	}
	return row.toDomain(items[row.ID]), nil
}

// loadItems groups the items of the given orders by order id
// keeping the line order.
func loadItems(
	ctx context.Context, q dbtx, orderIDs []string,
) (map[string][]domain.OrderItem, error) {
	items := make(map[string][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(`
		SELECT order_id, line, product_id, product_name, size, color, quantity, price
		FROM order_items
		WHERE order_id::text IN (?)
		ORDER BY order_id, line;`, orderIDs)
	if err != nil {
		return nil, err
	}

	var rows []orderItemRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		items[row.OrderID] = append(items[row.OrderID], row.toDomain())
	}
	return items, nil
}
