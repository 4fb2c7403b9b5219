package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// Order is immutable after creation; this system never transitions status.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	TotalCents      int64       `json:"totalCents"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// OrderItem records one cart line at checkout time. PriceCents is a
// snapshot of the product price at that moment and is never recomputed
// from the live product record.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}
