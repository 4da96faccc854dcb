package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderPlaced        EventType = "order.placed"
	EventTypeOrderPaymentFailed EventType = "order.payment_failed"

	// События генератора уникальных чисел
	EventTypeNumberAllocated EventType = "random_number.allocated"
)

// Topics для Kafka
const (
	TopicOrderEvents  = "provapub.order.events"
	TopicNumberEvents = "provapub.random.events"
)

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  EventType              `json:"event_type"`
	OrderID    int64                  `json:"order_id,omitempty"`
	CustomerID int64                  `json:"customer_id"`
	Method     string                 `json:"payment_method"`
	Value      string                 `json:"value"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NumberEvent представляет событие выдачи уникального числа
type NumberEvent struct {
	EventType EventType `json:"event_type"`
	NumberID  int64     `json:"number_id"`
	Number    int       `json:"number"`
	Timestamp time.Time `json:"timestamp"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, customerID int64, method, value string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Method:     method,
		Value:      value,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}

// NewNumberEvent создает новое событие выдачи числа
func NewNumberEvent(numberID int64, number int) *NumberEvent {
	return &NumberEvent{
		EventType: EventTypeNumberAllocated,
		NumberID:  numberID,
		Number:    number,
		Timestamp: time.Now(),
	}
}
