package domain

// Category is one of the catalog's fixed set of product categories.
type Category string

const (
	CategoryApparel     Category = "apparel"
	CategoryElectronics Category = "electronics"
	CategoryHome        Category = "home"
	CategoryBooks       Category = "books"
	CategorySports      Category = "sports"
	CategoryToys        Category = "toys"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryApparel,
	CategoryElectronics,
	CategoryHome,
	CategoryBooks,
	CategorySports,
	CategoryToys,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog record. The storefront only reads products; whatever
// writes the catalog lives outside this system.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	PriceCents    int64    `json:"priceCents"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Category      Category `json:"category"`
	StockQuantity int      `json:"stockQuantity"`
}
