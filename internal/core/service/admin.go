package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.AdminConsole = (*AdminService)(nil)

type AdminService struct {
	auth     port.Authenticator
	products port.ProductsStorage
	orders   port.OrdersStorage
	images   port.ImageStorage
}

func NewAdmin(
	auth port.Authenticator,
	products port.ProductsStorage,
	orders port.OrdersStorage,
	images port.ImageStorage,
) AdminService {
	return AdminService{
		auth:     auth,
		products: products,
		orders:   orders,
		images:   images,
	}
}

// Login returns a session token for a valid operator.
// Any verification failure is reported as [domain.ErrUnauthorized].
func (s AdminService) Login(
	ctx context.Context, c domain.Credentials,
) (string, error) {
	const op = "AdminService.Login"

	if err := ctx.Err(); err != nil {
		return "", opErr(err, op)
	}

	if c.Username == "" || c.Password == "" {
		return "", opErr(domain.Invalid("username and password are required"), op)
	}

	token, err := s.auth.Verify(ctx, c)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			slog.Error("failed to verify operator", "op", op, "err", err)
			return "", opErr(err, op)
		}
		slog.Warn("operator login rejected", "op", op, "username", c.Username)
		return "", opErr(domain.ErrUnauthorized, op)
	}
	return token, nil
}

func (s AdminService) Logout(ctx context.Context, token string) error {
	const op = "AdminService.Logout"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	if err := s.auth.Revoke(ctx, token); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s AdminService) Authorize(ctx context.Context, token string) error {
	const op = "AdminService.Authorize"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	if token == "" {
		return opErr(domain.ErrUnauthorized, op)
	}

	if err := s.auth.Validate(ctx, token); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (s AdminService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	const op = "AdminService.Stats"

	if err := ctx.Err(); err != nil {
		return domain.DashboardStats{}, opErr(err, op)
	}

	stats, err := s.orders.OrderStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, opErr(err, op)
	}

	n, err := s.products.CountProducts(ctx)
	if err != nil {
		return domain.DashboardStats{}, opErr(err, op)
	}
	stats.TotalProducts = n
	return stats, nil
}

// UploadImage stores a product image and returns its public URL.
func (s AdminService) UploadImage(
	ctx context.Context, img domain.Image,
) (string, error) {
	const op = "AdminService.UploadImage"

	if err := ctx.Err(); err != nil {
		return "", opErr(err, op)
	}

	if err := img.Validate(); err != nil {
		return "", opErr(err, op)
	}

	url, err := s.images.SaveImage(ctx, "product", img)
	if err != nil {
		return "", opErr(err, op)
	}
	return url, nil
}
