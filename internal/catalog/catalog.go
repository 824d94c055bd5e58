package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"
)

//go:embed products.json
var productsJSON []byte

// Product is one entry of the bundled grocery catalog. Entries are immutable
// after load.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
}

// Catalog holds the static product list plus a case-insensitive name index.
type Catalog struct {
	products []Product
	byName   map[string]*Product
}

// Load parses the bundled product file. Called once at startup.
func Load() (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to parse bundled catalog: %w", err)
	}
	return New(products), nil
}

// New builds a catalog from an explicit product list (used by tests).
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byName:   make(map[string]*Product, len(products)),
	}
	for i := range c.products {
		c.byName[normalize(c.products[i].Name)] = &c.products[i]
	}
	return c
}

// Products returns a copy of the full catalog in bundled order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Names returns all product names in bundled order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// Find looks up a product by name. Matching ignores case and surrounding
// whitespace.
func (c *Catalog) Find(name string) (Product, bool) {
	p, ok := c.byName[normalize(name)]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// Contains reports whether a product name exists in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[normalize(name)]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
