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

var _ port.SectionsStorage = (*SectionsRepository)(nil)

const sectionColumns = `
	id, title, subtitle, type, category, product_ids, display_order,
	is_active, discount_text, created_at`

type sectionRow struct {
	ID           string     `db:"id"`
	Title        string     `db:"title"`
	Subtitle     string     `db:"subtitle"`
	Type         string     `db:"type"`
	Category     string     `db:"category"`
	ProductIDs   stringList `db:"product_ids"`
	DisplayOrder int        `db:"display_order"`
	IsActive     bool       `db:"is_active"`
	DiscountText string     `db:"discount_text"`
	CreatedAt    time.Time  `db:"created_at"`
}

func newSectionRow(s domain.Section) sectionRow {
	return sectionRow{
		ID:           s.ID,
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		Type:         string(s.Type),
		Category:     s.Category,
		ProductIDs:   s.ProductIDs,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
		DiscountText: s.DiscountText,
		CreatedAt:    s.CreatedAt,
	}
}

func (r sectionRow) toDomain() domain.Section {
	return domain.Section{
		ID:           r.ID,
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Type:         domain.SectionType(r.Type),
		Category:     r.Category,
		ProductIDs:   r.ProductIDs,
		DisplayOrder: r.DisplayOrder,
		IsActive:     r.IsActive,
		DiscountText: r.DiscountText,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type SectionsRepository struct {
	db *sqlx.DB
}

func NewSectionsRepository(db SQLDB) SectionsRepository {
	return SectionsRepository{db.DB}
}

func (r SectionsRepository) CreateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	const op = "SectionsRepository.CreateSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, fmt.Errorf("%s: %w", op, err)
	}

	s.ID = uuid.NewString()

	query := `
		INSERT INTO sections (` + sectionColumns + `)
		VALUES (
			:id, :title, :subtitle, :type, :category, :product_ids,
			:display_order, :is_active, :discount_text, :created_at
		);`

	if _, err := r.db.NamedExecContext(ctx, query, newSectionRow(s)); err != nil {
		return domain.Section{}, storageErr(op, err)
	}
	return s, nil
}

func (r SectionsRepository) GetSection(
	ctx context.Context, id string,
) (domain.Section, error) {
	const op = "SectionsRepository.GetSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, fmt.Errorf("%s: %w", op, err)
	}

	var row sectionRow
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1;`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return domain.Section{}, storageErr(op, err)
	}
	return row.toDomain(), nil
}

func (r SectionsRepository) ListSections(ctx context.Context) ([]domain.Section, error) {
	const op = "SectionsRepository.ListSections"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rows []sectionRow
	query := `SELECT ` + sectionColumns + ` FROM sections ORDER BY seq;`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storageErr(op, err)
	}

	ss := make([]domain.Section, len(rows))
	for i, row := range rows {
		ss[i] = row.toDomain()
	}
	return ss, nil
}

func (r SectionsRepository) UpdateSection(
	ctx context.Context, s domain.Section,
) (domain.Section, error) {
	const op = "SectionsRepository.UpdateSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		UPDATE sections SET
			title = :title,
			subtitle = :subtitle,
			type = :type,
			category = :category,
			product_ids = :product_ids,
			display_order = :display_order,
			is_active = :is_active,
			discount_text = :discount_text
		WHERE id = :id;`

	res, err := r.db.NamedExecContext(ctx, query, newSectionRow(s))
	if err != nil {
		return domain.Section{}, storageErr(op, err)
	}
	if err := affectedOne(op, res); err != nil {
		return domain.Section{}, err
	}

	updated, err := r.GetSection(ctx, s.ID)
	if err != nil {
		return domain.Section{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (r SectionsRepository) DeleteSection(ctx context.Context, id string) error {
	const op = "SectionsRepository.DeleteSection"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1;`, id)
	if err != nil {
		return storageErr(op, err)
	}
	return affectedOne(op, res)
}
