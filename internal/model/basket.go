package model

import (
	"slices"

	"github.com/braginaliz/web-larek/internal/domain"
	"github.com/braginaliz/web-larek/internal/events"
)

// Basket owns the ordered set of product ids selected for purchase. Ids are
// unique, must reference a catalog product at insertion time, and the total
// is always derived from the catalog's current prices — never stored.
type Basket struct {
	bus     *events.Bus
	catalog *Catalog
	ids     []string
}

// NewBasket creates an empty basket bound to the session bus and catalog.
func NewBasket(bus *events.Bus, catalog *Catalog) *Basket {
	return &Basket{
		bus:     bus,
		catalog: catalog,
	}
}

// Add appends the product's id and emits basket:change. Duplicate adds,
// products without a price, and ids unknown to the catalog are silent no-ops
// with no event.
func (b *Basket) Add(p domain.Product) {
	if b.contains(p.ID) {
		return
	}
	current, ok := b.catalog.ProductByID(p.ID)
	if !ok || !current.Purchasable() {
		return
	}
	b.ids = append(b.ids, p.ID)
	b.emitChange()
}

// Remove drops the product's id and emits basket:change. Removing an absent
// id is a silent no-op with no event.
func (b *Basket) Remove(p domain.Product) {
	i := slices.Index(b.ids, p.ID)
	if i < 0 {
		return
	}
	b.ids = slices.Delete(b.ids, i, i+1)
	b.emitChange()
}

// Contains reports whether the product is currently in the basket.
func (b *Basket) Contains(p domain.Product) bool {
	return b.contains(p.ID)
}

// ContainsID reports whether the given product id is currently in the basket.
func (b *Basket) ContainsID(id string) bool {
	return b.contains(id)
}

// Clear empties the basket and emits basket:change.
func (b *Basket) Clear() {
	b.ids = nil
	b.emitChange()
}

// Snapshot returns the basket's ids and their total priced against the
// current catalog.
func (b *Basket) Snapshot() domain.Basket {
	items := make([]string, len(b.ids))
	copy(items, b.ids)
	return domain.Basket{
		Items: items,
		Total: b.total(),
	}
}

// Len returns the number of items in the basket.
func (b *Basket) Len() int {
	return len(b.ids)
}

// DropMissing removes every id that no longer resolves in the catalog,
// emitting basket:change once when anything was dropped. Called after a
// catalog replacement so totals never price stale ids.
func (b *Basket) DropMissing() int {
	kept := b.ids[:0]
	for _, id := range b.ids {
		if _, ok := b.catalog.ProductByID(id); ok {
			kept = append(kept, id)
		}
	}
	dropped := len(b.ids) - len(kept)
	b.ids = kept
	if dropped > 0 {
		b.emitChange()
	}
	return dropped
}

func (b *Basket) contains(id string) bool {
	return slices.Contains(b.ids, id)
}

// total recomputes the sum from the catalog's current prices. Ids missing
// from the catalog (possible only mid-refresh, before DropMissing runs)
// contribute nothing.
func (b *Basket) total() int64 {
	var sum int64
	for _, id := range b.ids {
		if p, ok := b.catalog.ProductByID(id); ok && p.Price != nil {
			sum += *p.Price
		}
	}
	return sum
}

func (b *Basket) emitChange() {
	b.bus.Emit(EventBasketChange, b.Snapshot())
}
