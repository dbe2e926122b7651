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

var _ port.ProductsStorage = (*ProductsRepository)(nil)

const productColumns = `
	id, name, brand, description, price, original_price, discount_percent,
	images, sizes, colors, category, subcategory, stock, rating,
	reviews_count, created_at`

type productRow struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Brand           string     `db:"brand"`
	Description     string     `db:"description"`
	Price           int64      `db:"price"`
	OriginalPrice   int64      `db:"original_price"`
	DiscountPercent int        `db:"discount_percent"`
	Images          stringList `db:"images"`
	Sizes           stringList `db:"sizes"`
	Colors          stringList `db:"colors"`
	Category        string     `db:"category"`
	Subcategory     string     `db:"subcategory"`
	Stock           int        `db:"stock"`
	Rating          float64    `db:"rating"`
	ReviewsCount    int        `db:"reviews_count"`
	CreatedAt       time.Time  `db:"created_at"`
}

func newProductRow(p domain.Product) productRow {
	return productRow{
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
		Category:        string(p.Category),
		Subcategory:     p.Subcategory,
		Stock:           p.Stock,
		Rating:          p.Rating,
		ReviewsCount:    p.ReviewsCount,
		CreatedAt:       p.CreatedAt,
	}
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:              r.ID,
		Name:            r.Name,
		Brand:           r.Brand,
		Description:     r.Description,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice,
		DiscountPercent: r.DiscountPercent,
		Images:          r.Images,
		Sizes:           r.Sizes,
		Colors:          r.Colors,
		Category:        domain.Category(r.Category),
		Subcategory:     r.Subcategory,
		Stock:           r.Stock,
		Rating:          r.Rating,
		ReviewsCount:    r.ReviewsCount,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

type ProductsRepository struct {
	db *sqlx.DB
}

func NewProductsRepository(db SQLDB) ProductsRepository {
	return ProductsRepository{db.DB}
}

func (r ProductsRepository) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = uuid.NewString()

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (
			:id, :name, :brand, :description, :price, :original_price,
			:discount_percent, :images, :sizes, :colors, :category,
			:subcategory, :stock, :rating, :reviews_count, :created_at
		);`

	if _, err := r.db.NamedExecContext(ctx, query, newProductRow(p)); err != nil {
		return domain.Product{}, storageErr(op, err)
	}
	return p, nil
}

func (r ProductsRepository) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return domain.Product{}, storageErr(op, err)
	}
	return row.toDomain(), nil
}

// ListProducts returns the newest products first.
func (r ProductsRepository) ListProducts(
	ctx context.Context, f domain.ProductFilter,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
			AND ($2 = '' OR subcategory = $2)
		ORDER BY created_at DESC, id;`

	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, query, string(f.Category), f.Subcategory)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return toProducts(rows), nil
}

// ProductsByIDs returns the existing products among ids in no
// particular order.
func (r ProductsRepository) ProductsByIDs(
	ctx context.Context, ids []string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ProductsByIDs"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+productColumns+` FROM products WHERE id::text IN (?);`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, storageErr(op, err)
	}
	return toProducts(rows), nil
}

// UpdateProduct keeps the stored creation time.
func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE products SET
			name = :name,
			brand = :brand,
			description = :description,
			price = :price,
			original_price = :original_price,
			discount_percent = :discount_percent,
			images = :images,
			sizes = :sizes,
			colors = :colors,
			category = :category,
			subcategory = :subcategory,
			stock = :stock,
			rating = :rating,
			reviews_count = :reviews_count
		WHERE id = :id;`

	res, err := r.db.NamedExecContext(ctx, query, newProductRow(p))
	if err != nil {
		return domain.Product{}, storageErr(op, err)
	}
	if err := affectedOne(op, res); err != nil {
		return domain.Product{}, err
	}

	updated, err := r.GetProduct(ctx, p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (r ProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return storageErr(op, err)
	}
	return affectedOne(op, res)
}

func (r ProductsRepository) CountProducts(ctx context.Context) (int, error) {
	const op = "ProductsRepository.CountProducts"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM products;`); err != nil {
		return 0, storageErr(op, err)
	}
	return n, nil
}

func toProducts(rows []productRow) []domain.Product {
	ps := make([]domain.Product, len(rows))
	for i, row := range rows {
		ps[i] = row.toDomain()
	}
	return ps
}
