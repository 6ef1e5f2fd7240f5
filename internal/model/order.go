package model

import (
	"fmt"
	"strings"

	"github.com/braginaliz/web-larek/internal/domain"
	"github.com/braginaliz/web-larek/internal/events"
)

// Order draft field names.
const (
	FieldPayment = "payment"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

// Order owns the in-progress checkout draft. Field writes trigger validation
// of the logical sub-form the field belongs to: payment and address make up
// the delivery form, email and phone the contacts form.
type Order struct {
	bus    *events.Bus
	basket *Basket

	payment domain.PaymentMethod
	address string
	email   string
	phone   string

	touched     bool
	submitted   bool
	submitError string
}

// NewOrder creates an empty draft bound to the session bus and basket.
func NewOrder(bus *events.Bus, basket *Basket) *Order {
	return &Order{
		bus:    bus,
		basket: basket,
	}
}

// SetField writes one draft field and emits the matching form-errors event
// carrying the field→message map of currently invalid fields in that
// sub-form. Unknown field names are ignored; the transport layer rejects
// them before they reach the model.
func (o *Order) SetField(name, value string) {
	switch name {
	case FieldPayment:
		o.payment = domain.PaymentMethod(value)
	case FieldAddress:
		o.address = value
	case FieldEmail:
		o.email = value
	case FieldPhone:
		o.phone = value
	default:
		return
	}

	o.touched = true
	o.submitError = ""

	switch name {
	case FieldPayment, FieldAddress:
		o.bus.Emit(EventOrderFormErrors, o.DeliveryErrors())
	case FieldEmail, FieldPhone:
		o.bus.Emit(EventContactsFormErrors, o.ContactErrors())
	}
}

// DeliveryErrors validates the payment/address sub-form. Fields with no
// error are absent from the map.
func (o *Order) DeliveryErrors() map[string]string {
	errs := make(map[string]string)
	switch {
	case o.payment == "":
		errs[FieldPayment] = "payment method is required"
	case !domain.IsValidPaymentMethod(o.payment):
		errs[FieldPayment] = fmt.Sprintf("payment method must be one of: %s", joinMethods())
	}
	if strings.TrimSpace(o.address) == "" {
		errs[FieldAddress] = "delivery address is required"
	}
	return errs
}

// ContactErrors validates the email/phone sub-form. Fields with no error are
// absent from the map.
func (o *Order) ContactErrors() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(o.email) == "" {
		errs[FieldEmail] = "email is required"
	}
	if strings.TrimSpace(o.phone) == "" {
		errs[FieldPhone] = "phone is required"
	}
	return errs
}

// Validate checks the whole draft and returns a field→message map for every
// invalid field; an empty map means the fields are ready for submission.
func (o *Order) Validate() map[string]string {
	errs := o.DeliveryErrors()
	for field, msg := range o.ContactErrors() {
		errs[field] = msg
	}
	return errs
}

// Snapshot assembles the full draft for submission, including the basket ids
// and their total at this moment.
func (o *Order) Snapshot() domain.Order {
	basket := o.basket.Snapshot()
	return domain.Order{
		Payment: o.payment,
		Email:   o.email,
		Phone:   o.phone,
		Address: o.address,
		Items:   basket.Items,
		Total:   basket.Total,
	}
}

// Status derives the draft's lifecycle state: a draft is ready to submit
// precisely when every field validates and the basket is non-empty.
func (o *Order) Status() string {
	switch {
	case o.submitted:
		return domain.StatusSubmitted
	case len(o.Validate()) == 0 && o.basket.Len() > 0:
		return domain.StatusReadyToSubmit
	case o.touched:
		return domain.StatusEditing
	default:
		return domain.StatusEmpty
	}
}

// MarkSubmitted transitions the draft to its terminal state.
func (o *Order) MarkSubmitted() {
	o.submitted = true
}

// SetSubmitError records a user-visible message for a failed submission.
func (o *Order) SetSubmitError(msg string) {
	o.submitError = msg
}

// SubmitError returns the visible message of the last failed submission, or
// empty when none is pending.
func (o *Order) SubmitError() string {
	return o.submitError
}

// Reset discards the draft so a new one starts at Empty.
func (o *Order) Reset() {
	o.payment = ""
	o.address = ""
	o.email = ""
	o.phone = ""
	o.touched = false
	o.submitted = false
	o.submitError = ""
}

func joinMethods() string {
	methods := domain.ValidPaymentMethods()
	parts := make([]string, len(methods))
	for i, m := range methods {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}
