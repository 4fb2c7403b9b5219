// Package seed loads a product catalog from YAML and writes it into the
// record store through the SDK, for local development against the devstore.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"storefront/internal/domain"
)

//go:embed products.yaml
var defaultCatalog []byte

// DefaultCatalog returns the embedded sample catalog.
func DefaultCatalog() io.Reader {
	return bytes.NewReader(defaultCatalog)
}

type productWriter interface {
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
}

type catalogFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	PriceCents    int64  `yaml:"priceCents"`
	ImageURL      string `yaml:"imageUrl"`
	Category      string `yaml:"category"`
	StockQuantity int    `yaml:"stockQuantity"`
}

// Apply upserts every product in the YAML catalog. It is idempotent:
// existing ids are updated in place.
func Apply(ctx context.Context, writer productWriter, r io.Reader) (int, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	applied := 0
	for _, sp := range file.Products {
		product, err := sp.toDomain()
		if err != nil {
			return applied, err
		}
		if err := upsert(ctx, writer, product); err != nil {
			return applied, fmt.Errorf("upsert product %s: %w", product.ID, err)
		}
		applied++
	}
	return applied, nil
}

func (sp seedProduct) toDomain() (domain.Product, error) {
	if sp.ID == "" || sp.Name == "" {
		return domain.Product{}, fmt.Errorf("product needs id and name: %+v", sp)
	}
	if sp.PriceCents < 0 {
		return domain.Product{}, fmt.Errorf("product %s: negative price", sp.ID)
	}
	if sp.StockQuantity < 0 {
		return domain.Product{}, fmt.Errorf("product %s: negative stock", sp.ID)
	}
	category := domain.Category(sp.Category)
	if !category.Valid() {
		return domain.Product{}, fmt.Errorf("product %s: unknown category %q", sp.ID, sp.Category)
	}
	return domain.Product{
		ID:            sp.ID,
		Name:          sp.Name,
		Description:   sp.Description,
		PriceCents:    sp.PriceCents,
		ImageURL:      sp.ImageURL,
		Category:      category,
		StockQuantity: sp.StockQuantity,
	}, nil
}

func upsert(ctx context.Context, writer productWriter, p domain.Product) error {
	err := writer.UpdateProduct(ctx, p)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return writer.CreateProduct(ctx, p)
	}
	return err
}
