// Package cart implements the storefront's cart aggregation and mutation
// rules over the remote record store.
//
// Two concurrent Add calls for the same (user, product) race on the
// read-merge-write sequence and can lose an update; the store offers no
// version token to detect this. Known limitation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
)

// ErrInvalidQuantity rejects Add calls with a non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

type storeGateway interface {
	ListCartItems(ctx context.Context, userID string) ([]domain.CartLineItem, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	FindCartItem(ctx context.Context, userID, productID string) (*domain.CartLineItem, error)
	CreateCartItem(ctx context.Context, item domain.CartLineItem) error
	UpdateCartItemQuantity(ctx context.Context, id string, quantity int) error
	DeleteCartItem(ctx context.Context, id string) error
}

// Observer is notified after every successful mutation with the user's
// fresh hydrated quantity sum. The store keeps no aggregate, so the
// service recounts before notifying.
type Observer interface {
	CartChanged(userID string, itemCount int)
}

type Service struct {
	store     storeGateway
	logger    *log.Logger
	observers []Observer
}

func New(store storeGateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(os.Stderr, "[cart] ", log.LstdFlags)
	}
	return &Service{store: store, logger: logger}
}

// Subscribe registers an observer. Wire observers at startup; Subscribe is
// not safe to call once the service is serving requests.
func (s *Service) Subscribe(obs Observer) {
	s.observers = append(s.observers, obs)
}

// View produces the user's hydrated cart: every line item joined with its
// current product, in store order, with lines whose product no longer
// exists dropped. The orphaned line records stay in the store; they are
// just invisible to every read path until explicitly removed.
//
// A failed line-item fetch means the cart is unknown, not empty, and
// surfaces ErrStoreUnavailable. A failed individual product lookup only
// drops that entry: one vanished product must not block the rest of the
// cart from rendering.
func (s *Service) View(ctx context.Context, userID string) (*domain.CartView, error) {
	items, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", classify(err, domain.ErrStoreUnavailable))
	}

	products := make([]*domain.Product, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			product, err := s.store.GetProduct(gctx, item.ProductID)
			if err != nil {
				s.logger.Printf("cart %s: dropping line %s (%v): %v",
					userID, item.ID, domain.ErrStaleReference, err)
				return nil
			}
			products[i] = product
			return nil
		})
	}
	// Lookups never feed errors into the group; Wait is the barrier that
	// guarantees no partial output.
	_ = g.Wait()

	view := &domain.CartView{UserID: userID}
	for i, item := range items {
		if products[i] == nil {
			continue
		}
		entry := domain.CartEntry{Item: item, Product: *products[i]}
		view.Entries = append(view.Entries, entry)
		view.TotalCents += entry.SubtotalCents()
		view.ItemCount += item.Quantity
	}
	return view, nil
}

// Add puts quantity units of the product in the user's cart. When a line
// item for the pair already exists the quantities merge; they accumulate,
// never overwrite. Stock is advisory here: the mutator places no ceiling,
// the catalog exposes stockQuantity for the UI to enforce.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	existing, err := s.store.FindCartItem(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.store.UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return fmt.Errorf("merge line item: %w", classify(err, domain.ErrMutationFailed))
		}
	case errors.Is(err, domain.ErrNotFound):
		item := domain.CartLineItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.store.CreateCartItem(ctx, item); err != nil {
			return fmt.Errorf("create line item: %w", classify(err, domain.ErrMutationFailed))
		}
	default:
		return fmt.Errorf("find line item: %w", classify(err, domain.ErrMutationFailed))
	}

	s.recount(ctx, userID)
	return nil
}

// SetQuantity changes a line item's quantity. Values below 1 are a no-op:
// quantities never reach zero through this path, removal is its own
// operation.
func (s *Service) SetQuantity(ctx context.Context, userID, lineItemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if err := s.store.UpdateCartItemQuantity(ctx, lineItemID, quantity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set quantity: %w", classify(err, domain.ErrMutationFailed))
	}
	s.recount(ctx, userID)
	return nil
}

// Remove deletes a line item unconditionally. Removing an id that is
// already gone succeeds.
func (s *Service) Remove(ctx context.Context, userID, lineItemID string) error {
	if err := s.store.DeleteCartItem(ctx, lineItemID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("remove line item: %w", classify(err, domain.ErrMutationFailed))
	}
	s.recount(ctx, userID)
	return nil
}

// Count is the badge number: the quantity sum of the hydrated cart.
// It goes through View so lines whose product vanished stay invisible
// here exactly as they do in the cart itself.
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	view, err := s.View(ctx, userID)
	if err != nil {
		return 0, err
	}
	return view.ItemCount, nil
}

// NotifyChanged recounts and notifies observers without a preceding
// mutation, for callers (checkout) that empty the cart themselves.
func (s *Service) NotifyChanged(ctx context.Context, userID string) {
	s.recount(ctx, userID)
}

func (s *Service) recount(ctx context.Context, userID string) {
	if len(s.observers) == 0 {
		return
	}
	count, err := s.Count(ctx, userID)
	if err != nil {
		s.logger.Printf("cart %s: recount after mutation failed: %v", userID, err)
		return
	}
	for _, obs := range s.observers {
		obs.CartChanged(userID, count)
	}
}

// classify tags err with kind unless it already carries it, so component
// boundaries always surface one of the declared error kinds.
func classify(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return errors.Join(kind, err)
}
