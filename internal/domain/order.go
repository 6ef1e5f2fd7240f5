package domain

// PaymentMethod is one of the closed set of ways an order can be paid.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// ValidPaymentMethods returns the set of accepted payment methods.
func ValidPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentCash}
}

// IsValidPaymentMethod checks whether the given method is accepted.
func IsValidPaymentMethod(m PaymentMethod) bool {
	for _, v := range ValidPaymentMethods() {
		if v == m {
			return true
		}
	}
	return false
}

// Order draft status constants.
const (
	StatusEmpty         = "empty"
	StatusEditing       = "editing"
	StatusReadyToSubmit = "ready_to_submit"
	StatusSubmitted     = "submitted"
)

// Order is the assembled checkout draft sent to the shop backend: the contact
// and delivery fields plus a snapshot of basket ids and their total taken at
// assembly time.
type Order struct {
	Payment PaymentMethod `json:"payment"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address string        `json:"address"`
	Items   []string      `json:"items"`
	Total   int64         `json:"total"`
}

// OrderResult is the shop backend's receipt for a successfully placed order.
type OrderResult struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}
