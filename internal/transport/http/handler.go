package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/catalog"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/eligibility"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/order"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/random"
)

// Handler обрабатывает HTTP запросы сервиса покупок.
type Handler struct {
	orders      *order.Service
	eligibility *eligibility.Service
	allocator   *random.Allocator
	catalog     *catalog.Service
	logger      *log.Entry
}

// NewHandler создаёт HTTP handler поверх доменных сервисов.
func NewHandler(
	orders *order.Service,
	elig *eligibility.Service,
	allocator *random.Allocator,
	cat *catalog.Service,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}
	return &Handler{
		orders:      orders,
		eligibility: elig,
		allocator:   allocator,
		catalog:     cat,
		logger:      logger,
	}
}

// PlaceOrder оформляет заказ: POST /v1/orders.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), nil)
		return
	}

	placed, err := h.orders.PlaceOrder(r.Context(), req.PaymentMethod, req.PaymentValue, req.CustomerID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(placed))
}

// CanPurchase проверяет право на покупку:
// GET /v1/customers/{id}/can-purchase?value=100.50.
func (h *Handler) CanPurchase(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_customer_id", "customer id must be an integer", nil)
		return
	}

	value, err := decimal.NewFromString(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_value", "value must be a decimal number", nil)
		return
	}

	allowed, err := h.eligibility.CanPurchase(r.Context(), customerID, value)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CanPurchaseResponse{
		CustomerID:    customerID,
		PurchaseValue: value,
		CanPurchase:   allowed,
	})
}

// AllocateNumber выдаёт уникальное случайное число: POST /v1/random-numbers.
func (h *Handler) AllocateNumber(w http.ResponseWriter, r *http.Request) {
	allocated, err := h.allocator.Allocate(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, RandomNumberResponse{
		ID:     allocated.ID,
		Number: allocated.Number,
	})
}

// ListCustomers отдаёт страницу клиентов: GET /v1/customers?page=2.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListCustomers(r.Context(), pageParam(r))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListProducts отдаёт страницу товаров: GET /v1/products?page=2.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.ListProducts(r.Context(), pageParam(r))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// pageParam читает ?page=; отсутствие и мусор означают первую страницу.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// writeDomainError переводит доменную ошибку в HTTP статус.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var unsupported *domain.UnsupportedPaymentMethodError

	switch {
	case errors.As(err, &unsupported):
		writeError(w, http.StatusBadRequest, "unsupported_payment_method", err.Error(), unsupported.Available)
	case domain.IsInvalidArgument(err):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrPaymentFailed):
		writeError(w, http.StatusPaymentRequired, "payment_failed", err.Error(), nil)
	case errors.Is(err, domain.ErrAllocationExhausted):
		writeError(w, http.StatusServiceUnavailable, "allocation_exhausted", err.Error(), nil)
	default:
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, available []string) {
	writeJSON(w, status, ErrorResponse{
		Error:            code,
		Message:          msg,
		AvailableMethods: available,
	})
}
