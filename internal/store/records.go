package store

import (
	"context"

	"storefront/internal/domain"
)

// ListProducts returns catalog products matching q.
func (c *Client) ListProducts(ctx context.Context, q Query) ([]domain.Product, error) {
	return list[domain.Product](ctx, c, CollectionProducts, q)
}

// GetProduct looks up one product by id. Returns domain.ErrNotFound when
// the product does not exist.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	items, err := list[domain.Product](ctx, c, CollectionProducts, Query{
		Where: map[string]string{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) error {
	return c.create(ctx, CollectionProducts, p)
}

// UpdateProduct replaces every mutable field of the product record.
func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) error {
	patch := map[string]any{
		"name":          p.Name,
		"description":   p.Description,
		"priceCents":    p.PriceCents,
		"imageUrl":      p.ImageURL,
		"category":      p.Category,
		"stockQuantity": p.StockQuantity,
	}
	return c.update(ctx, CollectionProducts, p.ID, patch)
}

// ListCartItems returns the user's cart line items in store order.
func (c *Client) ListCartItems(ctx context.Context, userID string) ([]domain.CartLineItem, error) {
	return list[domain.CartLineItem](ctx, c, CollectionCartItems, Query{
		Where: map[string]string{"userId": userID},
	})
}

// FindCartItem looks up the single line item for (userID, productID).
// Returns domain.ErrNotFound when the pair has no line item yet.
func (c *Client) FindCartItem(ctx context.Context, userID, productID string) (*domain.CartLineItem, error) {
	items, err := list[domain.CartLineItem](ctx, c, CollectionCartItems, Query{
		Where: map[string]string{"userId": userID, "productId": productID},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (c *Client) CreateCartItem(ctx context.Context, item domain.CartLineItem) error {
	return c.create(ctx, CollectionCartItems, item)
}

func (c *Client) UpdateCartItemQuantity(ctx context.Context, id string, quantity int) error {
	return c.update(ctx, CollectionCartItems, id, map[string]any{"quantity": quantity})
}

func (c *Client) DeleteCartItem(ctx context.Context, id string) error {
	return c.deleteRecord(ctx, CollectionCartItems, id)
}

func (c *Client) CreateOrder(ctx context.Context, o domain.Order) error {
	return c.create(ctx, CollectionOrders, o)
}

func (c *Client) CreateOrderItem(ctx context.Context, item domain.OrderItem) error {
	return c.create(ctx, CollectionOrderItems, item)
}

// ListOrders returns the user's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return list[domain.Order](ctx, c, CollectionOrders, Query{
		Where:   map[string]string{"userId": userID},
		OrderBy: "createdAt desc",
	})
}

// GetOrder looks up one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	items, err := list[domain.Order](ctx, c, CollectionOrders, Query{
		Where: map[string]string{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return &items[0], nil
}

func (c *Client) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	return list[domain.OrderItem](ctx, c, CollectionOrderItems, Query{
		Where: map[string]string{"orderId": orderID},
	})
}
