// Package catalog is the read-only product browsing surface: view-level
// filtering and sorting pushed down into the store query.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/store"
)

var (
	// ErrInvalidCategory rejects filters outside the fixed category set.
	ErrInvalidCategory = errors.New("unknown category")
	// ErrInvalidSort rejects sort options outside the declared set.
	ErrInvalidSort = errors.New("unsupported sort")
)

// Sort options accepted by List. Empty means store order.
const (
	SortNameAsc   = "name"
	SortPriceAsc  = "price"
	SortPriceDesc = "price desc"
)

type storeGateway interface {
	ListProducts(ctx context.Context, q store.Query) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	store storeGateway
}

func New(store storeGateway) *Service {
	return &Service{store: store}
}

type ListInput struct {
	Category string
	Sort     string
}

func (s *Service) List(ctx context.Context, in ListInput) ([]domain.Product, error) {
	q := store.Query{}
	if in.Category != "" {
		if !domain.Category(in.Category).Valid() {
			return nil, ErrInvalidCategory
		}
		q.Where = map[string]string{"category": in.Category}
	}
	switch in.Sort {
	case "":
	case SortNameAsc:
		q.OrderBy = "name"
	case SortPriceAsc:
		q.OrderBy = "priceCents"
	case SortPriceDesc:
		q.OrderBy = "priceCents desc"
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, in.Sort)
	}

	products, err := s.store.ListProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}
