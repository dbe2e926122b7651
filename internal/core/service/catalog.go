package service

import (
	"context"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.Catalog = (*CatalogService)(nil)
var _ port.CatalogAdmin = (*CatalogService)(nil)

type CatalogService struct {
	products port.ProductsStorage
	sections port.SectionsStorage
	settings port.SettingsStorage
	now      Clock
}

func NewCatalog(
	products port.ProductsStorage,
	sections port.SectionsStorage,
	settings port.SettingsStorage,
) CatalogService {
	return CatalogService{
		products: products,
		sections: sections,
		settings: settings,
		now:      time.Now,
	}
}

func (s CatalogService) ListProducts(
	ctx context.Context, f domain.ProductFilter,
) ([]domain.Product, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	if f.Category != "" && !f.Category.Valid() {
		return nil, opErr(domain.Invalid("unknown category %q", f.Category), op)
	}

	ps, err := s.products.ListProducts(ctx, f)
	if err != nil {
		return nil, opErr(err, op)
	}
	return ps, nil
}

func (s CatalogService) GetProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogService.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, opErr(err, op)
	}

	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, opErr(err, op)
	}
	return p, nil
}

func (s CatalogService) CreateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, opErr(err, op)
	}

	if err := p.Validate(); err != nil {
		return domain.Product{}, opErr(err, op)
	}

	p.ID = ""
	p.DiscountPercent = domain.DiscountPercent(p.Price, p.OriginalPrice)
	p.CreatedAt = s.now().UTC()

	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, opErr(err, op)
	}
	return created, nil
}

// UpdateProduct replaces every field except the identifier and the
// creation time.
func (s CatalogService) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.UpdateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, opErr(err, op)
	}

	if err := p.Validate(); err != nil {
		return domain.Product{}, opErr(err, op)
	}
	p.DiscountPercent = domain.DiscountPercent(p.Price, p.OriginalPrice)

	updated, err := s.products.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, opErr(err, op)
	}
	return updated, nil
}

func (s CatalogService) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogService.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s CatalogService) ListSections(
	ctx context.Context,
) ([]domain.Section, error) {
	const op = "CatalogService.ListSections"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	ss, err := s.sections.ListSections(ctx)
	if err != nil {
		return nil, opErr(err, op)
	}
	return ss, nil
}

func (s CatalogService) ListActiveSections(
	ctx context.Context,
) ([]domain.Section, error) {
	const op = "CatalogService.ListActiveSections"

	ss, err := s.ListSections(ctx)
	if err != nil {
		return nil, opErr(err, op)
	}
	return domain.ActiveSections(ss), nil
}

// Home resolves the products of every active section.
// Unknown product ids are skipped.
func (s CatalogService) Home(ctx context.Context) ([]domain.HomeSection, error) {
	const op = "CatalogService.Home"

	ss, err := s.ListActiveSections(ctx)
	if err != nil {
		return nil, opErr(err, op)
	}

	var ids []string
	for _, sec := range ss {
		ids = append(ids, sec.ProductIDs...)
	}

	byID := make(map[string]domain.Product)
	if len(ids) != 0 {
		ps, err := s.products.ProductsByIDs(ctx, ids)
		if err != nil {
			return nil, opErr(err, op)
		}
		for _, p := range ps {
			byID[p.ID] = p
		}
	}

	home := make([]domain.HomeSection, len(ss))
	for i, sec := range ss {
		home[i].Section = sec
		home[i].Products = make([]domain.Product, 0, len(sec.ProductIDs))
		for _, id := range sec.ProductIDs {
			if p, ok := byID[id]; ok {
				home[i].Products = append(home[i].Products, p)
			}
		}
	}
	return home, nil
}

func (s CatalogService) GetSection(
	ctx context.Context, id string,
) (domain.Section, error) {
	const op = "CatalogService.GetSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, opErr(err, op)
	}

	sec, err := s.sections.GetSection(ctx, id)
	if err != nil {
		return domain.Section{}, opErr(err, op)
	}
	return sec, nil
}

func (s CatalogService) CreateSection(
	ctx context.Context, sec domain.Section,
) (domain.Section, error) {
	const op = "CatalogService.CreateSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, opErr(err, op)
	}

	if err := sec.Validate(); err != nil {
		return domain.Section{}, opErr(err, op)
	}
	sec.ID = ""
	sec.CreatedAt = s.now().UTC()

	created, err := s.sections.CreateSection(ctx, sec)
	if err != nil {
		return domain.Section{}, opErr(err, op)
	}
	return created, nil
}

func (s CatalogService) UpdateSection(
	ctx context.Context, sec domain.Section,
) (domain.Section, error) {
	const op = "CatalogService.UpdateSection"

	if err := ctx.Err(); err != nil {
		return domain.Section{}, opErr(err, op)
	}

	if err := sec.Validate(); err != nil {
		return domain.Section{}, opErr(err, op)
	}

	updated, err := s.sections.UpdateSection(ctx, sec)
	if err != nil {
		return domain.Section{}, opErr(err, op)
	}
	return updated, nil
}

func (s CatalogService) DeleteSection(ctx context.Context, id string) error {
	const op = "CatalogService.DeleteSection"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	if err := s.sections.DeleteSection(ctx, id); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s CatalogService) GetBankDetails(
	ctx context.Context,
) (domain.BankDetails, error) {
	const op = "CatalogService.GetBankDetails"

	if err := ctx.Err(); err != nil {
		return domain.BankDetails{}, opErr(err, op)
	}

	m, err := s.settings.GetSettings(ctx, domain.BankSettingKeys)
	if err != nil {
		return domain.BankDetails{}, opErr(err, op)
	}
	return domain.BankDetailsFromSettings(m), nil
}

func (s CatalogService) UpdateBankDetails(
	ctx context.Context, u domain.BankDetailsUpdate,
) (domain.BankDetails, error) {
	const op = "CatalogService.UpdateBankDetails"

	if err := ctx.Err(); err != nil {
		return domain.BankDetails{}, opErr(err, op)
	}

	if m := u.Settings(); len(m) != 0 {
		if err := s.settings.SetSettings(ctx, m); err != nil {
			return domain.BankDetails{}, opErr(err, op)
		}
	}

	bd, err := s.GetBankDetails(ctx)
	if err != nil {
		return domain.BankDetails{}, opErr(err, op)
	}
	return bd, nil
}
