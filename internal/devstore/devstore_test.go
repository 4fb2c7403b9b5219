package devstore

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// These tests run the record service against a real Postgres and drive it
// through the SDK client, so the wire contract is checked from both ends.

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func testClient(ctx context.Context, t *testing.T) *store.Client {
	t.Helper()
	pool := testPool(ctx, t)
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE records`); err != nil {
		t.Fatalf("truncate records: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	router := buildRouter(logger, pool, Options{APIKey: "k", AuthSecret: "s"})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return store.New(srv.URL, "k")
}

func TestRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)

	product := domain.Product{
		ID:            "p1",
		Name:          "Tee",
		PriceCents:    1999,
		Category:      domain.CategoryApparel,
		StockQuantity: 5,
	}
	if err := client.CreateProduct(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := client.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Tee" || got.PriceCents != 1999 {
		t.Fatalf("unexpected product: %+v", got)
	}

	product.PriceCents = 2499
	if err := client.UpdateProduct(ctx, product); err != nil {
		t.Fatalf("update product: %v", err)
	}
	got, err = client.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("get product after update: %v", err)
	}
	if got.PriceCents != 2499 {
		t.Fatalf("patch not applied: %+v", got)
	}
}

func TestPatchMissingRecordIs404DeleteIs204(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)

	err := client.UpdateCartItemQuantity(ctx, "missing", 3)
	if err == nil {
		t.Fatalf("expected error patching a missing record")
	}

	// Deleting a record that never existed must still succeed.
	if err := client.DeleteCartItem(ctx, "missing"); err != nil {
		t.Fatalf("delete must be idempotent: %v", err)
	}
}

func TestWhereFiltersAndInsertionOrder(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)

	lines := []domain.CartLineItem{
		{ID: "l1", UserID: "u1", ProductID: "pA", Quantity: 1},
		{ID: "l2", UserID: "u2", ProductID: "pA", Quantity: 2},
		{ID: "l3", UserID: "u1", ProductID: "pB", Quantity: 3},
	}
	for _, line := range lines {
		if err := client.CreateCartItem(ctx, line); err != nil {
			t.Fatalf("create %s: %v", line.ID, err)
		}
	}

	got, err := client.ListCartItems(ctx, "u1")
	if err != nil {
		t.Fatalf("list cart items: %v", err)
	}
	if len(got) != 2 || got[0].ID != "l1" || got[1].ID != "l3" {
		t.Fatalf("expected [l1 l3] in insertion order, got %+v", got)
	}

	found, err := client.FindCartItem(ctx, "u1", "pB")
	if err != nil {
		t.Fatalf("find cart item: %v", err)
	}
	if found.ID != "l3" {
		t.Fatalf("expected l3, got %+v", found)
	}
}

func TestOrderByNumericField(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)

	products := []domain.Product{
		{ID: "p1", Name: "A", PriceCents: 900, Category: domain.CategoryHome, StockQuantity: 1},
		{ID: "p2", Name: "B", PriceCents: 10000, Category: domain.CategoryHome, StockQuantity: 1},
		{ID: "p3", Name: "C", PriceCents: 2500, Category: domain.CategoryHome, StockQuantity: 1},
	}
	for _, p := range products {
		if err := client.CreateProduct(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	got, err := client.ListProducts(ctx, store.Query{OrderBy: "priceCents desc"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(got) != 3 || got[0].ID != "p2" || got[2].ID != "p1" {
		t.Fatalf("expected numeric descending order, got %+v", got)
	}
}

func TestWeakReferencesAreStorable(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)

	// A cart line can reference a product the store has never seen; the
	// service applies no cross-collection constraint.
	line := domain.CartLineItem{ID: "l1", UserID: "u1", ProductID: "ghost", Quantity: 1}
	if err := client.CreateCartItem(ctx, line); err != nil {
		t.Fatalf("create dangling line: %v", err)
	}
	if _, err := client.GetProduct(ctx, "ghost"); err == nil {
		t.Fatalf("expected the referenced product to be missing")
	}
}

func TestConnectKeepsDevPoolSmall(t *testing.T) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	pool, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	cfg := pool.Config()
	if cfg.MaxConns != 8 || cfg.MinConns != 1 {
		t.Fatalf("pool limits = max %d min %d, want 8 and 1", cfg.MaxConns, cfg.MinConns)
	}
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
