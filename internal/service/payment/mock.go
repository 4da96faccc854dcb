package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// MockProcessor — конфигурируемая заглушка PaymentProcessor для тестов.
type MockProcessor struct {
	MethodName string
	Approved   bool
	Err        error

	ProcessCalls int
	LastAmount   decimal.Decimal
}

// NewMockProcessor возвращает mock с успешным сценарием по умолчанию.
func NewMockProcessor(method string) *MockProcessor {
	return &MockProcessor{
		MethodName: method,
		Approved:   true,
	}
}

// Method возвращает настроенное имя метода оплаты.
func (m *MockProcessor) Method() string {
	return m.MethodName
}

// Process возвращает заранее настроенный результат и считает вызовы.
func (m *MockProcessor) Process(ctx context.Context, amount decimal.Decimal) (bool, error) {
	m.ProcessCalls++
	m.LastAmount = amount
	return m.Approved, m.Err
}

var _ domain.PaymentProcessor = (*MockProcessor)(nil)
