package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

const sessionCookie = "session"

type contextKey string

const userKey contextKey = "user"

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler wires the dev implementation of the remote storefront contract:
// the same endpoints, shapes and rejection rules the production API shows
// the client, backed by the in-memory store.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "pong"})
	})

	r.Post("/api/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Get("/api/cart", h.getCart)
		r.Post("/api/cart", h.addCartLine)
		r.Put("/api/cart", h.updateCartQty)
		r.Delete("/api/cart", h.removeCartLine)

		r.Post("/api/order/create", h.createOrder)
		r.Get("/api/order/detail", h.orderDetail)
		r.Post("/api/order/pay", h.payOrder)
		r.Get("/api/order/counts", h.orderCounts)
		r.Get("/api/order/list", h.orderList)

		r.Get("/api/user/address", h.getAddress)
		r.Post("/api/user/address", h.setAddress)
	})

	return otelhttp.NewHandler(r, "devapi")
}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		user, ok := h.store.User(cookie.Value)
		if !ok {
			respondError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		respondError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	// Dev server: any username opens a session, no password check.
	token := h.store.CreateSession(req.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	lines := h.store.Lines(userFromContext(r.Context()))
	// Wrapped shape; the production API answers with a bare array. The
	// client normalizes both.
	respondJSON(w, http.StatusOK, map[string]any{"items": lines})
}

func (h *Handler) addCartLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64 `json:"product_id"`
		ModelID   int64 `json:"model_id"`
		Qty       int   `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 || req.ModelID <= 0 {
		respondError(w, http.StatusBadRequest, "product_id and model_id must be positive")
		return
	}
	if req.Qty < 1 {
		respondError(w, http.StatusBadRequest, "qty must be at least 1")
		return
	}

	if err := h.store.AddLine(userFromContext(r.Context()), req.ProductID, req.ModelID, req.Qty); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{})
}

func (h *Handler) updateCartQty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  int64 `json:"id"`
		Qty int   `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Qty < 1 {
		respondError(w, http.StatusBadRequest, "qty must be at least 1")
		return
	}

	if err := h.store.UpdateQty(userFromContext(r.Context()), req.ID, req.Qty); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{})
}

func (h *Handler) removeCartLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.store.RemoveLine(userFromContext(r.Context()), req.ID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items   []domain.OrderItem `json:"items"`
		Address string             `json:"address"`
		Total   decimal.Decimal    `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "order has no items")
		return
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			respondError(w, http.StatusBadRequest, "item quantity must be at least 1")
			return
		}
	}

	orderID := h.store.CreateOrder(
		userFromContext(r.Context()),
		r.Header.Get("Idempotency-Key"),
		req.Items,
		req.Address,
		req.Total,
	)
	respondJSON(w, http.StatusOK, map[string]int64{"order_id": orderID})
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	detail, err := h.store.Detail(userFromContext(r.Context()), id)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID int64 `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == 0 {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.store.Pay(userFromContext(r.Context()), req.OrderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrOrderNotPayable):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, "payment failed")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"message": "paid"})
	}
}

func (h *Handler) orderCounts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Counts(userFromContext(r.Context())))
}

func (h *Handler) orderList(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))
	respondJSON(w, http.StatusOK, h.store.List(userFromContext(r.Context()), status))
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"address": h.store.Address(userFromContext(r.Context())),
	})
}

func (h *Handler) setAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.store.SetAddress(userFromContext(r.Context()), req.Address)
	respondJSON(w, http.StatusOK, map[string]string{"address": req.Address})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
