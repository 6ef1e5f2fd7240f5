package domain

// Product represents a purchasable product in the catalog.
// Price is in the store's smallest currency unit; nil means the product is
// not for sale and can never enter a basket.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       *int64 `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// Purchasable reports whether the product carries a price.
func (p Product) Purchasable() bool {
	return p.Price != nil
}
