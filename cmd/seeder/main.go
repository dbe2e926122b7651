package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/niksmo/fashion-store/config"
	"github.com/niksmo/fashion-store/internal/adapter/storage"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/niksmo/fashion-store/internal/core/service"
	"github.com/niksmo/fashion-store/pkg/sigctx"
	"github.com/spf13/pflag"
)

const defaultSeedFile = "./seed/demo.json"

type seedProduct struct {
	Key           string   `json:"key"`
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

type seedSection struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	ProductKeys  []string `json:"product_keys"`
	DisplayOrder int      `json:"display_order"`
	IsActive     bool     `json:"is_active"`
	DiscountText string   `json:"discount_text"`
}

type seedBank struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	UPIID         string `json:"upi_id"`
	UPIQRCodeURL  string `json:"upi_qr_code_url"`
}

type seedFile struct {
	Products    []seedProduct `json:"products"`
	Sections    []seedSection `json:"sections"`
	BankDetails *seedBank     `json:"bank_details"`
}

// usage: seeder [--config config.yaml] [seed.json]
func main() {
	_ = godotenv.Load()

	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel},
	)))

	seed, err := readSeed(seedPath())
	if err != nil {
		fallDown(err)
	}

	db, err := storage.NewSQLDB(sigCtx, cfg.SQLDB)
	if err != nil {
		fallDown(err)
	}
	defer db.Close()

	catalog := service.NewCatalog(
		storage.NewProductsRepository(db),
		storage.NewSectionsRepository(db),
		storage.NewSettingsRepository(db),
	)

	if err := run(sigCtx, catalog, seed); err != nil {
		fallDown(err)
	}
}

func seedPath() string {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	fs.String("config", "", "config file")
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return defaultSeedFile
}

func readSeed(path string) (seedFile, error) {
	const op = "readSeed"

	b, err := os.ReadFile(path)
	if err != nil {
		return seedFile{}, fmt.Errorf("%s: %w", op, err)
	}

	var s seedFile
	if err := json.Unmarshal(b, &s); err != nil {
		return seedFile{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func run(ctx context.Context, catalog port.CatalogAdmin, seed seedFile) error {
	const op = "run"
	log := slog.With("op", op)

	ids := make(map[string]string, len(seed.Products))
	for _, sp := range seed.Products {
		p, err := catalog.CreateProduct(ctx, sp.toDomain())
		if err != nil {
			return fmt.Errorf("%s: product %q: %w", op, sp.Name, err)
		}
		if sp.Key != "" {
			ids[sp.Key] = p.ID
		}
		log.Info("product created", "id", p.ID, "name", p.Name)
	}

	for _, ss := range seed.Sections {
		sec, err := ss.toDomain(ids)
		if err != nil {
			return fmt.Errorf("%s: section %q: %w", op, ss.Title, err)
		}
		sec, err = catalog.CreateSection(ctx, sec)
		if err != nil {
			return fmt.Errorf("%s: section %q: %w", op, ss.Title, err)
		}
		log.Info("section created", "id", sec.ID, "title", sec.Title)
	}

	if seed.BankDetails != nil {
		if _, err := catalog.UpdateBankDetails(ctx, seed.BankDetails.toDomain()); err != nil {
			return fmt.Errorf("%s: bank details: %w", op, err)
		}
		log.Info("bank details updated")
	}

	return nil
}

func (sp seedProduct) toDomain() domain.Product {
	return domain.Product{
		Name:          sp.Name,
		Brand:         sp.Brand,
		Description:   sp.Description,
		Price:         sp.Price,
		OriginalPrice: sp.OriginalPrice,
		Images:        sp.Images,
		Sizes:         sp.Sizes,
		Colors:        sp.Colors,
		Category:      domain.Category(sp.Category),
		Subcategory:   sp.Subcategory,
		Stock:         sp.Stock,
		Rating:        sp.Rating,
		ReviewsCount:  sp.ReviewsCount,
	}
}

func (ss seedSection) toDomain(ids map[string]string) (domain.Section, error) {
	productIDs := make([]string, 0, len(ss.ProductKeys))
	for _, key := range ss.ProductKeys {
		id, ok := ids[key]
		if !ok {
			return domain.Section{}, fmt.Errorf("unknown product key %q", key)
		}
		productIDs = append(productIDs, id)
	}
	return domain.Section{
		Title:        ss.Title,
		Subtitle:     ss.Subtitle,
		Type:         domain.SectionType(ss.Type),
		Category:     ss.Category,
		ProductIDs:   productIDs,
		DisplayOrder: ss.DisplayOrder,
		IsActive:     ss.IsActive,
		DiscountText: ss.DiscountText,
	}, nil
}

func (sb seedBank) toDomain() domain.BankDetailsUpdate {
	return domain.BankDetailsUpdate{
		BankName:      &sb.BankName,
		AccountHolder: &sb.AccountHolder,
		AccountNumber: &sb.AccountNumber,
		IFSCCode:      &sb.IFSCCode,
		UPIID:         &sb.UPIID,
		UPIQRCodeURL:  &sb.UPIQRCodeURL,
	}
}

func fallDown(err error) {
	slog.Error("seeding failed", "err", err)
	os.Exit(2)
}
