// Package catalog holds the static product catalog and the filter engine
// that derives the visible product list from it.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"pulseralux/internal/model"
)

//go:embed data/catalog.json
var embedded embed.FS

// Category describes a browsable product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories is the fixed category list, including the "todos" sentinel
// that disables category filtering.
var Categories = []Category{
	{ID: CategoryAll, Name: "Todos", Icon: "🔮"},
	{ID: "energia", Name: "Energía", Icon: "⚡"},
	{ID: "cuarzo", Name: "Cuarzo", Icon: "💎"},
	{ID: "piedras", Name: "Piedras", Icon: "✨"},
	{ID: "minimalista", Name: "Minimalista", Icon: "⬛"},
	{ID: "lujo", Name: "Lujo", Icon: "🌟"},
}

// Catalog is the immutable product list, in fixture order.
type Catalog struct {
	products []model.Product
	byID     map[int]model.Product
}

// Load reads the catalog from path, or from the embedded fixture when path
// is empty. The file is the single source of truth for product data.
func Load(path string) (*Catalog, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	} else {
		raw, err = embedded.ReadFile("data/catalog.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded catalog: %w", err)
		}
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return New(products)
}

// New builds a catalog from an in-memory product list, rejecting duplicate ids.
func New(products []model.Product) (*Catalog, error) {
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []model.Product {
	return c.products
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Featured returns the featured subset in catalog order.
func (c *Catalog) Featured() []model.Product {
	var out []model.Product
	for _, p := range c.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
