package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
)

type productResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PriceCents    int64  `json:"priceCents"`
	Price         string `json:"price"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Category      string `json:"category"`
	StockQuantity int    `json:"stockQuantity"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		Price:         domain.FormatCents(p.PriceCents),
		ImageURL:      p.ImageURL,
		Category:      string(p.Category),
		StockQuantity: p.StockQuantity,
	}
}

type cartEntryResponse struct {
	LineItemID    string          `json:"lineItemId"`
	Quantity      int             `json:"quantity"`
	Product       productResponse `json:"product"`
	SubtotalCents int64           `json:"subtotalCents"`
	Subtotal      string          `json:"subtotal"`
}

type cartResponse struct {
	Entries    []cartEntryResponse `json:"entries"`
	TotalCents int64               `json:"totalCents"`
	Total      string              `json:"total"`
	ItemCount  int                 `json:"itemCount"`
}

func toCartResponse(view domain.CartView) cartResponse {
	out := cartResponse{
		Entries:    make([]cartEntryResponse, 0, len(view.Entries)),
		TotalCents: view.TotalCents,
		Total:      domain.FormatCents(view.TotalCents),
		ItemCount:  view.ItemCount,
	}
	for _, entry := range view.Entries {
		out.Entries = append(out.Entries, cartEntryResponse{
			LineItemID:    entry.Item.ID,
			Quantity:      entry.Item.Quantity,
			Product:       toProductResponse(entry.Product),
			SubtotalCents: entry.SubtotalCents(),
			Subtotal:      domain.FormatCents(entry.SubtotalCents()),
		})
	}
	return out
}

type orderItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Price      string `json:"price"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	TotalCents      int64               `json:"totalCents"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	Items           []orderItemResponse `json:"items,omitempty"`
}

func toOrderResponse(o domain.Order, items []domain.OrderItem) orderResponse {
	out := orderResponse{
		ID:              o.ID,
		TotalCents:      o.TotalCents,
		Total:           domain.FormatCents(o.TotalCents),
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, orderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			Price:      domain.FormatCents(item.PriceCents),
		})
	}
	return out
}

// respondError translates the declared error kinds into user-visible
// responses. Read failures are 503 so clients can tell "unknown" from an
// empty 200; nothing fails silently.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "sign in required"})
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrMissingAddress),
		errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidSort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "no such record"})
	case errors.Is(err, domain.ErrCheckoutFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "checkout_failed", "message": "order placement did not complete; check your order history before retrying"})
	case errors.Is(err, domain.ErrMutationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "mutation_failed", "message": "the change was not saved, please retry"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store_unavailable", "message": "data is temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "unexpected error"})
	}
}
