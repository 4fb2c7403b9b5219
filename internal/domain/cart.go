package domain

// CartLineItem is one product in a user's cart. ProductID is a weak
// reference: the product may have been deleted since the line was created,
// in which case every read path hides the line but nothing deletes it.
type CartLineItem struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartEntry is a line item joined with its live product record.
type CartEntry struct {
	Item    CartLineItem `json:"item"`
	Product Product      `json:"product"`
}

func (e CartEntry) SubtotalCents() int64 {
	return e.Product.PriceCents * int64(e.Item.Quantity)
}

// CartView is the hydrated cart: only entries whose product still exists,
// in the order the store returned the line items.
type CartView struct {
	UserID     string      `json:"userId"`
	Entries    []CartEntry `json:"entries"`
	TotalCents int64       `json:"totalCents"`
	ItemCount  int         `json:"itemCount"`
}

func (v CartView) Empty() bool {
	return len(v.Entries) == 0
}
