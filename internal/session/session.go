// Package session assembles the storefront core: one Session owns a bus and
// the three models and wires them together, and a Manager tracks live
// sessions by id. The Session is the explicit application context the models
// hang off — there are no package-level singletons.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/braginaliz/web-larek/pkg/errors"

	"github.com/braginaliz/web-larek/internal/domain"
	"github.com/braginaliz/web-larek/internal/events"
	"github.com/braginaliz/web-larek/internal/model"
)

// ShopAPI is the contract the session needs from the shop backend client.
type ShopAPI interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	CreateOrder(ctx context.Context, order domain.Order) (domain.OrderResult, error)
}

// OrderView is the rendered state of the checkout draft.
type OrderView struct {
	Payment     domain.PaymentMethod `json:"payment"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Address     string               `json:"address"`
	Items       []string             `json:"items"`
	Total       int64                `json:"total"`
	Status      string               `json:"status"`
	Errors      map[string]string    `json:"errors"`
	SubmitError string               `json:"submit_error,omitempty"`
}

// BasketView is the rendered state of the basket, including the item count
// shown on the page header.
type BasketView struct {
	Items []string `json:"items"`
	Total int64    `json:"total"`
	Count int      `json:"count"`
}

// Session is one user's storefront state: the bus, the three models, and the
// preview. The core is single-threaded; every exported method takes the
// session lock for its duration, which is the external locking the bus and
// models rely on.
type Session struct {
	id     string
	logger *slog.Logger
	shop   ShopAPI

	mu         sync.Mutex
	bus        *events.Bus
	catalog    *model.Catalog
	basket     *model.Basket
	order      *model.Order
	previewID  string
	submitting bool
	lastSeen   time.Time
}

// newSession builds a session and wires the event table. Sessions are
// created through the Manager.
func newSession(id string, shop ShopAPI, logger *slog.Logger) *Session {
	bus := events.New()
	catalog := model.NewCatalog(bus)
	basket := model.NewBasket(bus, catalog)
	order := model.NewOrder(bus, basket)

	s := &Session{
		id:       id,
		logger:   logger.With(slog.String("session_id", id)),
		shop:     shop,
		bus:      bus,
		catalog:  catalog,
		basket:   basket,
		order:    order,
		lastSeen: time.Now().UTC(),
	}

	// A selected card becomes the preview.
	bus.On(EventCardSelect, func(payload any) {
		if p, ok := payload.(domain.Product); ok {
			s.previewID = p.ID
			bus.Emit(EventPreviewChange, p)
		}
	})

	// Membership is looked up at handling time, never captured in closures.
	bus.On(EventCardToBasket, func(payload any) {
		if p, ok := payload.(domain.Product); ok && !basket.Contains(p) {
			basket.Add(p)
		}
	})

	// A refreshed catalog may orphan basket ids; stale ids are pruned so the
	// total never prices an id the catalog cannot resolve.
	bus.On(model.EventItemsChange, func(any) {
		if dropped := basket.DropMissing(); dropped > 0 {
			s.logger.Info("stale basket ids pruned after catalog refresh",
				slog.Int("dropped", dropped),
			)
		}
	})

	bus.On(EventModalClose, func(any) {
		if s.previewID != "" {
			s.previewID = ""
			bus.Emit(EventPreviewChange, nil)
		}
	})

	bus.On(EventBasketOrder, func(any) {
		s.order.SetSubmitError("")
	})

	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Bus exposes the session bus for coordinators that subscribe to model
// changes. Callers must hold no session methods on the stack; the bus is
// only safe under the session lock the exported methods take.
func (s *Session) Bus() *events.Bus {
	return s.bus
}

// LoadCatalog fetches the full catalog and replaces the catalog model's
// contents. On failure the catalog is left unchanged and only a notice is
// logged; the session keeps working with what it has.
func (s *Session) LoadCatalog(ctx context.Context) error {
	products, err := s.shop.GetAllProducts(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "catalog fetch failed, keeping current catalog",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.SetProducts(products)

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.Int("products", len(products)),
	)
	return nil
}

// Products returns the catalog snapshot.
func (s *Session) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Products()
}

// SelectCard marks the product as previewed and emits card:select.
func (s *Session) SelectCard(productID string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.ProductByID(productID)
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", productID)
	}
	s.bus.Emit(EventCardSelect, p)
	return p, nil
}

// Preview returns the currently previewed product, if any.
func (s *Session) Preview() (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.previewID == "" {
		return domain.Product{}, false
	}
	return s.catalog.ProductByID(s.previewID)
}

// ClosePreview dismisses the preview and emits modal:close.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus.Emit(EventModalClose, nil)
}

// TogglePreview flips basket membership for the previewed product, looking
// up the current membership at call time. Returns the resulting membership.
func (s *Session) TogglePreview() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.previewID == "" {
		return false, apperrors.InvalidInput("no product is being previewed")
	}
	p, ok := s.catalog.ProductByID(s.previewID)
	if !ok {
		return false, apperrors.NotFound("product", s.previewID)
	}

	if s.basket.Contains(p) {
		s.basket.Remove(p)
		return false, nil
	}
	if !p.Purchasable() {
		return false, apperrors.InvalidInput("product is not for sale")
	}
	s.basket.Add(p)
	return true, nil
}

// AddToBasket emits card:toBasket for the given product. Products without a
// price are rejected before they reach the model.
func (s *Session) AddToBasket(productID string) (BasketView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.ProductByID(productID)
	if !ok {
		return s.basketView(), apperrors.NotFound("product", productID)
	}
	if !p.Purchasable() {
		return s.basketView(), apperrors.InvalidInput("product is not for sale")
	}

	s.bus.Emit(EventCardToBasket, p)
	return s.basketView(), nil
}

// RemoveFromBasket drops the product id from the basket.
func (s *Session) RemoveFromBasket(productID string) (BasketView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.basket.ContainsID(productID) {
		return s.basketView(), apperrors.NotFound("basket item", productID)
	}
	s.basket.Remove(domain.Product{ID: productID})
	return s.basketView(), nil
}

// Basket returns the basket snapshot with its item count.
func (s *Session) Basket() BasketView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basketView()
}

// BeginCheckout emits basket:order and returns the draft view. Checkout
// requires a non-empty basket.
func (s *Session) BeginCheckout() (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.basket.Len() == 0 {
		return s.orderView(), apperrors.InvalidInput("basket is empty")
	}
	s.bus.Emit(EventBasketOrder, nil)
	return s.orderView(), nil
}

// SetOrderField writes one draft field and returns the updated draft view,
// whose Errors map reflects the sub-form the field belongs to.
func (s *Session) SetOrderField(field, value string) OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.SetField(field, value)
	return s.orderView()
}

// Order returns the current draft view with full validation results.
func (s *Session) Order() OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderView()
}

// Submit runs the submission flow: emit order:submit, validate the draft,
// call the shop backend, and on success emit order:success and clear the
// basket so a fresh draft starts at Empty. A failed submission keeps the
// basket intact and records a visible error on the draft; the user retries
// by submitting again. A second submission while one is in flight is
// rejected.
func (s *Session) Submit(ctx context.Context) (domain.OrderResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return domain.OrderResult{}, apperrors.Conflict("an order submission is already in progress")
	}

	s.bus.Emit(EventOrderSubmit, nil)

	draft := s.order.Snapshot()
	if errs := s.order.Validate(); len(errs) > 0 || len(draft.Items) == 0 {
		s.order.SetSubmitError("all required fields must be filled in")
		view := s.orderView()
		s.mu.Unlock()
		return domain.OrderResult{}, &apperrors.AppError{
			Code:    "VALIDATION_ERROR",
			Message: fmt.Sprintf("order is not ready to submit (%d invalid fields, %d items)", len(view.Errors), len(draft.Items)),
			Status:  http.StatusBadRequest,
			Err:     apperrors.ErrInvalidInput,
		}
	}

	s.submitting = true
	s.mu.Unlock()

	// The only suspension point in the flow; the lock is released so the
	// session stays responsive while the backend call is in flight.
	result, err := s.shop.CreateOrder(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.String("error", err.Error()),
			slog.Int("items", len(draft.Items)),
		)
		s.order.SetSubmitError("the order could not be created")
		return domain.OrderResult{}, fmt.Errorf("submit order: %w", err)
	}

	s.order.MarkSubmitted()
	s.bus.Emit(EventOrderSuccess, result)
	s.basket.Clear()
	s.order.Reset()

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("order_id", result.ID),
		slog.Int64("total", result.Total),
	)

	return result, nil
}

// touch refreshes the idle timer. Called by the Manager on every lookup.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// basketView renders the basket snapshot; callers hold the lock.
func (s *Session) basketView() BasketView {
	snap := s.basket.Snapshot()
	return BasketView{
		Items: snap.Items,
		Total: snap.Total,
		Count: len(snap.Items),
	}
}

// orderView renders the draft; callers hold the lock.
func (s *Session) orderView() OrderView {
	snap := s.order.Snapshot()
	return OrderView{
		Payment:     snap.Payment,
		Email:       snap.Email,
		Phone:       snap.Phone,
		Address:     snap.Address,
		Items:       snap.Items,
		Total:       snap.Total,
		Status:      s.order.Status(),
		Errors:      s.order.Validate(),
		SubmitError: s.order.SubmitError(),
	}
}
