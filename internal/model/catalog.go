package model

import (
	"slices"

	"github.com/braginaliz/web-larek/internal/domain"
	"github.com/braginaliz/web-larek/internal/events"
)

// Catalog owns the list of products available in the store. The catalog is
// replaced wholesale by each fetch; partial updates are not supported.
type Catalog struct {
	bus      *events.Bus
	products []domain.Product
	byID     map[string]int
}

// NewCatalog creates an empty catalog bound to the session bus.
func NewCatalog(bus *events.Bus) *Catalog {
	return &Catalog{
		bus:  bus,
		byID: make(map[string]int),
	}
}

// SetProducts replaces the full product set and emits items:change.
func (c *Catalog) SetProducts(items []domain.Product) {
	c.products = slices.Clone(items)
	c.byID = make(map[string]int, len(c.products))
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	c.bus.Emit(EventItemsChange, nil)
}

// Products returns the current product sequence in catalog order.
func (c *Catalog) Products() []domain.Product {
	return slices.Clone(c.products)
}

// ProductByID returns the product with the given id, or false if the catalog
// does not contain it.
func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
