package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// PlaceOrderRequest — тело запроса оформления заказа.
type PlaceOrderRequest struct {
	PaymentMethod string          `json:"payment_method"`
	PaymentValue  decimal.Decimal `json:"payment_value"`
	CustomerID    int64           `json:"customer_id"`
}

// OrderResponse — оформленный заказ; дата в бразильском времени.
type OrderResponse struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Value      decimal.Decimal `json:"value"`
	OrderDate  time.Time       `json:"order_date"`
}

// CanPurchaseResponse — результат проверки права на покупку.
type CanPurchaseResponse struct {
	CustomerID    int64           `json:"customer_id"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	CanPurchase   bool            `json:"can_purchase"`
}

// RandomNumberResponse — выданное уникальное число.
type RandomNumberResponse struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
}

// ErrorResponse — единый формат ошибки API.
type ErrorResponse struct {
	Error            string   `json:"error"`
	Message          string   `json:"message,omitempty"`
	AvailableMethods []string `json:"available_methods,omitempty"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Value:      order.Value,
		OrderDate:  order.OrderDate,
	}
}
