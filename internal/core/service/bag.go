package service

import (
	"context"
	"slices"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
)

var _ port.BagManager = (*BagService)(nil)

// A BagService mutates the session bag and persists the whole snapshot
// after every change.
type BagService struct {
	sessions port.SessionStore
	products port.ProductsStorage
}

func NewBag(sessions port.SessionStore, products port.ProductsStorage) BagService {
	return BagService{sessions: sessions, products: products}
}

func (s BagService) Bag(ctx context.Context, sessionID string) (domain.Bag, error) {
	const op = "BagService.Bag"

	if err := ctx.Err(); err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	bag, err := s.sessions.LoadBag(ctx, sessionID)
	if err != nil {
		return domain.Bag{}, opErr(err, op)
	}
	return bag, nil
}

func (s BagService) AddItem(
	ctx context.Context, sessionID, productID, size, color string,
) (domain.Bag, error) {
	const op = "BagService.AddItem"

	if err := ctx.Err(); err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	if size != "" && !slices.Contains(p.Sizes, size) {
		return domain.Bag{}, opErr(domain.Invalid("size %q is not available", size), op)
	}
	if color != "" && len(p.Colors) != 0 && !slices.Contains(p.Colors, color) {
		return domain.Bag{}, opErr(domain.Invalid("color %q is not available", color), op)
	}

	return s.mutate(ctx, sessionID, op, func(b *domain.Bag) error {
		b.Add(p, size, color)
		return nil
	})
}

func (s BagService) UpdateQuantity(
	ctx context.Context, sessionID string, index, quantity int,
) (domain.Bag, error) {
	const op = "BagService.UpdateQuantity"

	return s.mutate(ctx, sessionID, op, func(b *domain.Bag) error {
		return b.UpdateQuantity(index, quantity)
	})
}

func (s BagService) RemoveItem(
	ctx context.Context, sessionID string, index int,
) (domain.Bag, error) {
	const op = "BagService.RemoveItem"

	return s.mutate(ctx, sessionID, op, func(b *domain.Bag) error {
		return b.Remove(index)
	})
}

func (s BagService) mutate(
	ctx context.Context, sessionID, op string, fn func(*domain.Bag) error,
) (domain.Bag, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	bag, err := s.sessions.LoadBag(ctx, sessionID)
	if err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	if err := fn(&bag); err != nil {
		return domain.Bag{}, opErr(err, op)
	}

	if err := s.sessions.SaveBag(ctx, sessionID, bag); err != nil {
		return domain.Bag{}, opErr(err, op)
	}
	return bag, nil
}
