package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"storefront/internal/domain"
)

type qtyUpdate struct {
	id  string
	qty int
}

type stubStore struct {
	items      []domain.CartLineItem
	listErr    error
	products   map[string]domain.Product
	productErr map[string]error
	findItem   *domain.CartLineItem
	findErr    error
	createErr  error
	updateErr  error
	deleteErr  error

	created []domain.CartLineItem
	updates []qtyUpdate
	deleted []string
	finds   int
}

func (s *stubStore) ListCartItems(_ context.Context, _ string) ([]domain.CartLineItem, error) {
	return s.items, s.listErr
}

func (s *stubStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if err, ok := s.productErr[id]; ok {
		return nil, err
	}
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubStore) FindCartItem(_ context.Context, _, _ string) (*domain.CartLineItem, error) {
	s.finds++
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.findItem, nil
}

func (s *stubStore) CreateCartItem(_ context.Context, item domain.CartLineItem) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, item)
	return nil
}

func (s *stubStore) UpdateCartItemQuantity(_ context.Context, id string, quantity int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, qtyUpdate{id: id, qty: quantity})
	return nil
}

func (s *stubStore) DeleteCartItem(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type recordingObserver struct {
	userIDs []string
	counts  []int
}

func (r *recordingObserver) CartChanged(userID string, itemCount int) {
	r.userIDs = append(r.userIDs, userID)
	r.counts = append(r.counts, itemCount)
}

func newService(store *stubStore) *Service {
	return New(store, log.New(io.Discard, "", 0))
}

func TestViewHydratesInStoreOrder(t *testing.T) {
	store := &stubStore{
		items: []domain.CartLineItem{
			{ID: "l1", UserID: "u1", ProductID: "pA", Quantity: 2},
			{ID: "l2", UserID: "u1", ProductID: "pB", Quantity: 1},
		},
		products: map[string]domain.Product{
			"pA": {ID: "pA", Name: "Tee", PriceCents: 1000},
			"pB": {ID: "pB", Name: "Mug", PriceCents: 550},
		},
	}
	view, err := newService(store).View(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(view.Entries))
	}
	if view.Entries[0].Item.ID != "l1" || view.Entries[1].Item.ID != "l2" {
		t.Fatalf("store order not preserved: %+v", view.Entries)
	}
	if view.TotalCents != 2550 {
		t.Fatalf("expected total 2550, got %d", view.TotalCents)
	}
	if view.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", view.ItemCount)
	}
}

func TestViewDropsLinesWithDeletedProducts(t *testing.T) {
	store := &stubStore{
		items: []domain.CartLineItem{
			{ID: "l1", UserID: "u1", ProductID: "pA", Quantity: 2},
			{ID: "l2", UserID: "u1", ProductID: "gone", Quantity: 5},
		},
		products: map[string]domain.Product{
			"pA": {ID: "pA", PriceCents: 1000},
		},
	}
	view, err := newService(store).View(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Entries) != 1 || view.Entries[0].Item.ID != "l1" {
		t.Fatalf("expected only the live line, got %+v", view.Entries)
	}
	if view.TotalCents != 2000 || view.ItemCount != 2 {
		t.Fatalf("stale line leaked into aggregates: total=%d count=%d", view.TotalCents, view.ItemCount)
	}
}

func TestViewProductLookupFailureIsNotFatal(t *testing.T) {
	store := &stubStore{
		items: []domain.CartLineItem{
			{ID: "l1", ProductID: "pA", Quantity: 1},
			{ID: "l2", ProductID: "pB", Quantity: 1},
		},
		products:   map[string]domain.Product{"pA": {ID: "pA", PriceCents: 100}},
		productErr: map[string]error{"pB": errors.New("timeout")},
	}
	view, err := newService(store).View(context.Background(), "u1")
	if err != nil {
		t.Fatalf("one bad lookup must not fail the view: %v", err)
	}
	if len(view.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(view.Entries))
	}
}

func TestViewListFailureIsStoreUnavailable(t *testing.T) {
	store := &stubStore{listErr: errors.New("boom")}
	view, err := newService(store).View(context.Background(), "u1")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if view != nil {
		t.Fatalf("cart must be unknown, not partially rendered: %+v", view)
	}
}

func TestViewEmptyCart(t *testing.T) {
	view, err := newService(&stubStore{}).View(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Empty() || view.TotalCents != 0 || view.ItemCount != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestAddCreatesNewLine(t *testing.T) {
	store := &stubStore{findErr: domain.ErrNotFound}
	if err := newService(store).Add(context.Background(), "u1", "pA", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one create, got %d", len(store.created))
	}
	got := store.created[0]
	if got.UserID != "u1" || got.ProductID != "pA" || got.Quantity != 3 {
		t.Fatalf("unexpected line item: %+v", got)
	}
	if got.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestAddMergesIntoExistingLine(t *testing.T) {
	store := &stubStore{
		findItem: &domain.CartLineItem{ID: "l1", UserID: "u1", ProductID: "pA", Quantity: 3},
	}
	if err := newService(store).Add(context.Background(), "u1", "pA", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("merge must not create a second line")
	}
	if len(store.updates) != 1 || store.updates[0] != (qtyUpdate{id: "l1", qty: 5}) {
		t.Fatalf("expected quantity 3+2=5 on l1, got %+v", store.updates)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	store := &stubStore{}
	svc := newService(store)
	for _, qty := range []int{0, -2} {
		if err := svc.Add(context.Background(), "u1", "pA", qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if store.finds != 0 {
		t.Fatalf("invalid quantity must not reach the store")
	}
}

func TestAddCreateFailureIsMutationFailed(t *testing.T) {
	store := &stubStore{findErr: domain.ErrNotFound, createErr: errors.New("boom")}
	err := newService(store).Add(context.Background(), "u1", "pA", 1)
	if !errors.Is(err, domain.ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
}

func TestAddMergeFailureIsMutationFailed(t *testing.T) {
	store := &stubStore{
		findItem:  &domain.CartLineItem{ID: "l1", Quantity: 1},
		updateErr: errors.New("boom"),
	}
	err := newService(store).Add(context.Background(), "u1", "pA", 1)
	if !errors.Is(err, domain.ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
}

func TestSetQuantityBelowOneIsNoOp(t *testing.T) {
	store := &stubStore{}
	svc := newService(store)
	for _, qty := range []int{0, -1} {
		if err := svc.SetQuantity(context.Background(), "u1", "l1", qty); err != nil {
			t.Fatalf("qty %d: expected no-op, got %v", qty, err)
		}
	}
	if len(store.updates) != 0 {
		t.Fatalf("no-op must not write: %+v", store.updates)
	}
}

func TestSetQuantityUpdates(t *testing.T) {
	store := &stubStore{}
	if err := newService(store).SetQuantity(context.Background(), "u1", "l1", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.updates) != 1 || store.updates[0] != (qtyUpdate{id: "l1", qty: 4}) {
		t.Fatalf("unexpected updates: %+v", store.updates)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := &stubStore{deleteErr: domain.ErrNotFound}
	if err := newService(store).Remove(context.Background(), "u1", "l1"); err != nil {
		t.Fatalf("removing an already-removed id must succeed, got %v", err)
	}
}

func TestRemoveFailureIsMutationFailed(t *testing.T) {
	store := &stubStore{deleteErr: errors.New("boom")}
	err := newService(store).Remove(context.Background(), "u1", "l1")
	if !errors.Is(err, domain.ErrMutationFailed) {
		t.Fatalf("expected ErrMutationFailed, got %v", err)
	}
}

func TestObserversNotifiedAfterMutations(t *testing.T) {
	store := &stubStore{
		findErr: domain.ErrNotFound,
		items: []domain.CartLineItem{
			{ID: "l1", ProductID: "pA", Quantity: 2},
			{ID: "l2", ProductID: "pB", Quantity: 3},
		},
		products: map[string]domain.Product{
			"pA": {ID: "pA", PriceCents: 1000},
			"pB": {ID: "pB", PriceCents: 550},
		},
	}
	svc := newService(store)
	obs := &recordingObserver{}
	svc.Subscribe(obs)

	if err := svc.Add(context.Background(), "u1", "pA", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs.counts) != 1 || obs.counts[0] != 5 || obs.userIDs[0] != "u1" {
		t.Fatalf("expected recount 5 for u1, got %+v %+v", obs.userIDs, obs.counts)
	}

	if err := svc.Remove(context.Background(), "u1", "l1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs.counts) != 2 {
		t.Fatalf("expected a second notification, got %+v", obs.counts)
	}
}

func TestCountSumsQuantities(t *testing.T) {
	store := &stubStore{
		items: []domain.CartLineItem{
			{ID: "l1", ProductID: "pA", Quantity: 2},
			{ID: "l2", ProductID: "pB", Quantity: 7},
		},
		products: map[string]domain.Product{
			"pA": {ID: "pA", PriceCents: 1000},
			"pB": {ID: "pB", PriceCents: 550},
		},
	}
	count, err := newService(store).Count(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 9 {
		t.Fatalf("expected 9, got %d", count)
	}
}

func TestCountExcludesStaleLines(t *testing.T) {
	store := &stubStore{
		items: []domain.CartLineItem{
			{ID: "l1", ProductID: "pA", Quantity: 2},
			{ID: "l2", ProductID: "gone", Quantity: 5},
		},
		products: map[string]domain.Product{
			"pA": {ID: "pA", PriceCents: 1000},
		},
	}
	count, err := newService(store).Count(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("badge count = %d, want 2", count)
	}

	svc := newService(store)
	obs := &recordingObserver{}
	svc.Subscribe(obs)
	if err := svc.Remove(context.Background(), "u1", "l2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs.counts) != 1 || obs.counts[0] != 2 {
		t.Fatalf("observer got %+v, want the hydrated count 2", obs.counts)
	}
}

func TestCountListFailureIsStoreUnavailable(t *testing.T) {
	store := &stubStore{listErr: errors.New("boom")}
	if _, err := newService(store).Count(context.Background(), "u1"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
