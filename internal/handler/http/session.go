// Package http exposes the storefront session core over a JSON API. The
// handlers are a thin coordinator layer: they translate requests into
// session method calls and render the returned views.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/braginaliz/web-larek/pkg/errors"
	"github.com/braginaliz/web-larek/pkg/httputil"
	"github.com/braginaliz/web-larek/pkg/validator"

	"github.com/braginaliz/web-larek/internal/session"
)

// SessionHandler handles HTTP requests for storefront sessions.
type SessionHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(manager *session.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the basket.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetOrderFieldRequest is the JSON request body for writing one checkout
// draft field.
type SetOrderFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=payment address email phone"`
	Value string `json:"value"`
}

// --- Response DTOs ---

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Products  int    `json:"products"`
}

// --- Handlers ---

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.manager.Create(r.Context())

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: sessionResponse{
			SessionID: s.ID(),
			Products:  len(s.Products()),
		},
	})
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.manager.Delete(s.ID())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// GetCatalog handles GET /api/v1/sessions/{sessionID}/catalog
func (h *SessionHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s.Products()})
}

// RefreshCatalog handles POST /api/v1/sessions/{sessionID}/catalog/refresh
func (h *SessionHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := s.LoadCatalog(r.Context()); err != nil {
		httputil.WriteError(w, r, apperrors.Unavailable("shop api is unavailable"), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s.Products()})
}

// SelectProduct handles GET /api/v1/sessions/{sessionID}/catalog/{productID}
func (h *SessionHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	p, err := s.SelectCard(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: p})
}

// ClosePreview handles DELETE /api/v1/sessions/{sessionID}/preview
func (h *SessionHandler) ClosePreview(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	s.ClosePreview()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "closed"}})
}

// TogglePreview handles POST /api/v1/sessions/{sessionID}/preview/toggle
func (h *SessionHandler) TogglePreview(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	inBasket, err := s.TogglePreview()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"in_basket": inBasket,
		"basket":    s.Basket(),
	}})
}

// GetBasket handles GET /api/v1/sessions/{sessionID}/basket
func (h *SessionHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s.Basket()})
}

// AddBasketItem handles POST /api/v1/sessions/{sessionID}/basket/items
func (h *SessionHandler) AddBasketItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view, err := s.AddToBasket(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// RemoveBasketItem handles DELETE /api/v1/sessions/{sessionID}/basket/items/{productID}
func (h *SessionHandler) RemoveBasketItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := s.RemoveFromBasket(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// BeginCheckout handles POST /api/v1/sessions/{sessionID}/order
func (h *SessionHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := s.BeginCheckout()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// GetOrder handles GET /api/v1/sessions/{sessionID}/order
func (h *SessionHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s.Order()})
}

// SetOrderField handles PATCH /api/v1/sessions/{sessionID}/order
func (h *SessionHandler) SetOrderField(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req SetOrderFieldRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	view := s.SetOrderField(req.Field, req.Value)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// SubmitOrder handles POST /api/v1/sessions/{sessionID}/order/submit
func (h *SessionHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := s.Submit(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// --- Helpers ---

func (h *SessionHandler) session(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "sessionID")
	if id == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return h.manager.Get(id)
}
