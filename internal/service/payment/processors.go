package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// Задержки имитируют время ответа внешних платёжных шлюзов.
const (
	pixLatency        = 100 * time.Millisecond
	creditCardLatency = 200 * time.Millisecond
	paypalLatency     = 150 * time.Millisecond
)

// simulatedProcessor — заглушка платёжного шлюза с фиксированной задержкой.
// Реальная интеграция подключается через domain.PaymentProcessor.
type simulatedProcessor struct {
	method  string
	latency time.Duration
	logger  *log.Entry
}

// NewPix возвращает процессор платежей PIX.
func NewPix(logger *log.Entry) domain.PaymentProcessor {
	return newSimulatedProcessor("pix", pixLatency, logger)
}

// NewCreditCard возвращает процессор платежей банковской картой.
func NewCreditCard(logger *log.Entry) domain.PaymentProcessor {
	return newSimulatedProcessor("creditcard", creditCardLatency, logger)
}

// NewPaypal возвращает процессор платежей PayPal.
func NewPaypal(logger *log.Entry) domain.PaymentProcessor {
	return newSimulatedProcessor("paypal", paypalLatency, logger)
}

func newSimulatedProcessor(method string, latency time.Duration, logger *log.Entry) *simulatedProcessor {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return &simulatedProcessor{
		method:  method,
		latency: latency,
		logger:  logger.WithField("payment_method", method),
	}
}

// Method возвращает каноническое имя метода оплаты.
func (p *simulatedProcessor) Method() string {
	return p.method
}

// Process имитирует обработку платежа и всегда одобряет его.
// Отмена контекста прерывает ожидание ответа шлюза.
func (p *simulatedProcessor) Process(ctx context.Context, amount decimal.Decimal) (bool, error) {
	timer := time.NewTimer(p.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	p.logger.WithFields(log.Fields{
		"receipt_id": uuid.NewString(),
		"amount":     amount.StringFixed(2),
	}).Info("payment approved")

	return true, nil
}
