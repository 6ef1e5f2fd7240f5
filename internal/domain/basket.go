package domain

// Basket is a point-in-time snapshot of the user's current selection.
// Items holds product ids in insertion order with no duplicates; Total is the
// sum of current catalog prices for exactly those ids.
type Basket struct {
	Items []string `json:"items"`
	Total int64    `json:"total"`
}
