package session

// User-intent and orchestration events. Together with the model events these
// form the full wiring contract of a session.
const (
	// EventCardSelect fires when the user opens a product preview. Payload:
	// the domain.Product.
	EventCardSelect = "card:select"

	// EventCardToBasket fires when the user sends a product to the basket.
	// Payload: the domain.Product.
	EventCardToBasket = "card:toBasket"

	// EventBasketOrder fires when the user starts checkout from the basket.
	// No payload.
	EventBasketOrder = "basket:order"

	// EventOrderSubmit fires when the user submits the order. No payload.
	EventOrderSubmit = "order:submit"

	// EventOrderSuccess fires after the shop backend accepts an order.
	// Payload: the domain.OrderResult receipt.
	EventOrderSuccess = "order:success"

	// EventPreviewChange fires when the previewed product changes. Payload:
	// the domain.Product, or nil when the preview closes.
	EventPreviewChange = "preview:change"

	// EventModalClose fires when the user dismisses the preview. No payload.
	EventModalClose = "modal:close"
)
