// Package model holds the storefront state owners: catalog, basket, and
// order draft. Each model exclusively owns its state, exposes it through
// accessor snapshots, and announces changes on the session bus. Models never
// return errors for expected domain conditions; those are silent no-ops.
package model

// Events emitted by the models.
const (
	// EventItemsChange fires when the catalog is replaced. No payload;
	// consumers re-pull via Catalog.Products.
	EventItemsChange = "items:change"

	// EventBasketChange fires after every basket mutation, carrying the fresh
	// domain.Basket snapshot.
	EventBasketChange = "basket:change"

	// EventOrderFormErrors fires after a payment or address field write,
	// carrying a field→message map of currently invalid delivery fields.
	EventOrderFormErrors = "orderFormErrors:change"

	// EventContactsFormErrors fires after an email or phone field write,
	// carrying a field→message map of currently invalid contact fields.
	EventContactsFormErrors = "contactsFormErrors:change"
)
