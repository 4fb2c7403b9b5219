package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
}

// CSVImporter reads catalog exports and creates/updates products through
// the record store. Expected headers: id, name, description, priceCents,
// imageUrl, category, stockQuantity; description and imageUrl are optional.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, writer ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, writer: writer}
}

// Run parses CSV rows and upserts products. It stops at the first bad row
// or failed write, returning how many products were imported before that.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "pricecents", "category"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing required column %q", required)
		}
	}

	imported := 0
	line := 1
	for {
		row, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			return imported, nil
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++

		product, err := rowToProduct(index, row)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if err := upsert(ctx, i.writer, product); err != nil {
			return imported, fmt.Errorf("row %d: upsert %s: %w", line, product.ID, err)
		}
		imported++
	}
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func rowToProduct(index map[string]int, row []string) (domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id := field("id")
	name := field("name")
	if id == "" || name == "" {
		return domain.Product{}, errors.New("id and name are required")
	}

	cents, err := strconv.ParseInt(field("pricecents"), 10, 64)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse priceCents: %w", err)
	}
	if cents < 0 {
		return domain.Product{}, errors.New("negative price")
	}

	category := domain.Category(field("category"))
	if !category.Valid() {
		return domain.Product{}, fmt.Errorf("unknown category %q", field("category"))
	}

	stock := 0
	if raw := field("stockquantity"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil {
			return domain.Product{}, fmt.Errorf("parse stockQuantity: %w", err)
		}
		if stock < 0 {
			return domain.Product{}, errors.New("negative stock")
		}
	}

	return domain.Product{
		ID:            id,
		Name:          name,
		Description:   field("description"),
		PriceCents:    cents,
		ImageURL:      field("imageurl"),
		Category:      category,
		StockQuantity: stock,
	}, nil
}

func upsert(ctx context.Context, writer ProductWriter, p domain.Product) error {
	err := writer.UpdateProduct(ctx, p)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return writer.CreateProduct(ctx, p)
	}
	return err
}
