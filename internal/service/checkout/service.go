// Package checkout turns a validated cart into an order plus its items.
//
// The store offers no multi-record transaction, so placement is a strictly
// ordered sequence of single-record writes: order first, so order items are
// never observable without their parent; cart lines deleted last, so a
// failure mid-sequence leaves the cart intact. The system prefers a
// duplicate order on retry over a silently lost cart. There is no
// compensating rollback of partially created records and no idempotency
// key across retries; a retry places a fresh order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

var (
	// ErrEmptyCart rejects checkout when the hydrated cart has no entries.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingAddress rejects checkout without a shipping address.
	ErrMissingAddress = errors.New("shipping address required")
)

type cartReader interface {
	View(ctx context.Context, userID string) (*domain.CartView, error)
	NotifyChanged(ctx context.Context, userID string)
}

type storeGateway interface {
	CreateOrder(ctx context.Context, o domain.Order) error
	CreateOrderItem(ctx context.Context, item domain.OrderItem) error
	DeleteCartItem(ctx context.Context, id string) error
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
}

type Service struct {
	store  storeGateway
	cart   cartReader
	logger *log.Logger
}

func New(store storeGateway, cart cartReader, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(os.Stderr, "[checkout] ", log.LstdFlags)
	}
	return &Service{store: store, cart: cart, logger: logger}
}

// Place creates an order from the user's current hydrated cart.
//
// The order's total is the hydrated cart's total at the moment checkout
// begins; each order item snapshots its product's price at that same
// moment and is never recomputed from the live product. On the first
// failed write the sequence stops and surfaces ErrCheckoutFailed: cart
// lines not yet deleted stay in the cart, records already created stay in
// the store.
func (s *Service) Place(ctx context.Context, userID, shippingAddress string) (*domain.Order, error) {
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, ErrMissingAddress
	}

	view, err := s.cart.View(ctx, userID)
	if err != nil {
		// No write has happened; the read-path error kind passes through.
		return nil, fmt.Errorf("hydrate cart: %w", err)
	}
	if view.Empty() {
		return nil, ErrEmptyCart
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		TotalCents:      view.TotalCents,
		Status:          domain.OrderStatusPending,
		ShippingAddress: address,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", classify(err, domain.ErrCheckoutFailed))
	}

	for _, entry := range view.Entries {
		item := domain.OrderItem{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			ProductID:  entry.Product.ID,
			Quantity:   entry.Item.Quantity,
			PriceCents: entry.Product.PriceCents,
		}
		if err := s.store.CreateOrderItem(ctx, item); err != nil {
			s.logger.Printf("checkout %s: aborted after order %s partially written: %v", userID, order.ID, err)
			return nil, fmt.Errorf("create order item: %w", classify(err, domain.ErrCheckoutFailed))
		}
	}

	for _, entry := range view.Entries {
		if err := s.store.DeleteCartItem(ctx, entry.Item.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("checkout %s: order %s placed but cart not fully emptied: %v", userID, order.ID, err)
			return nil, fmt.Errorf("clear cart line: %w", classify(err, domain.ErrCheckoutFailed))
		}
	}

	s.cart.NotifyChanged(ctx, userID)
	return &order, nil
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.store.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", classify(err, domain.ErrStoreUnavailable))
	}
	return orders, nil
}

// Get returns one of the user's orders with its items. Orders belonging to
// other users are indistinguishable from missing ones.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, []domain.OrderItem, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("get order: %w", classify(err, domain.ErrStoreUnavailable))
	}
	if order.UserID != userID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("list order items: %w", classify(err, domain.ErrStoreUnavailable))
	}
	return order, items, nil
}

func classify(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return errors.Join(kind, err)
}
