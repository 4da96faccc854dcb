package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/clock"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/messaging/kafka"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/metrics"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/payment"
)

// DefaultPaymentTimeout ограничивает ожидание ответа платёжного шлюза.
const DefaultPaymentTimeout = 5 * time.Second

// Service оформляет заказ: проверяет вход, проводит платёж и сохраняет
// заказ в одной транзакции. Любой сбой после открытия транзакции
// откатывает её, строка заказа не остаётся видимой.
type Service struct {
	uow      domain.UnitOfWork
	payments *payment.Registry
	clock    clock.Clock
	logger   *log.Entry
	metrics  *metrics.PurchaseMetrics
	producer *kafka.Producer // опциональный Kafka producer для событий заказа

	// PaymentTimeout можно уменьшить в тестах.
	PaymentTimeout time.Duration
}

// NewService создаёт рабочий экземпляр оформления заказов.
func NewService(uow domain.UnitOfWork, payments *payment.Registry, clk clock.Clock, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Service{
		uow:            uow,
		payments:       payments,
		clock:          clk,
		logger:         logger,
		metrics:        metrics.NewPurchaseMetrics(),
		PaymentTimeout: DefaultPaymentTimeout,
	}
}

// NewServiceWithKafka создаёт оформление заказов с публикацией событий в Kafka.
func NewServiceWithKafka(uow domain.UnitOfWork, payments *payment.Registry, clk clock.Clock, producer *kafka.Producer, logger *log.Entry) *Service {
	s := NewService(uow, payments, clk, logger)
	s.producer = producer
	return s
}

// NewServiceWithoutMetrics создаёт оформление заказов без метрик (для тестов).
func NewServiceWithoutMetrics(uow domain.UnitOfWork, payments *payment.Registry, clk clock.Clock, logger *log.Entry) *Service {
	s := NewService(uow, payments, clk, logger)
	s.metrics = nil
	return s
}

// PlaceOrder оформляет заказ для клиента.
//
// Валидация входа и поиск клиента выполняются до открытия транзакции,
// так что при этих ошибках хранилище не затрагивается. Дата заказа
// хранится в UTC; вызывающему заказ возвращается в бразильском времени.
func (s *Service) PlaceOrder(ctx context.Context, paymentMethod string, paymentValue decimal.Decimal, customerID int64) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordOrderInFlightStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOrderInFlightFinished()
			s.metrics.RecordOrderDuration(time.Since(start))
		}
	}()

	if err := s.validateInput(paymentMethod, paymentValue, customerID); err != nil {
		s.recordFailure()
		return domain.Order{}, err
	}

	if _, err := s.uow.Customers().GetByID(ctx, customerID); err != nil {
		s.recordFailure()
		return domain.Order{}, fmt.Errorf("customer %d: %w", customerID, err)
	}

	placed, err := s.placeInTransaction(ctx, paymentMethod, paymentValue, customerID)
	if err != nil {
		s.recordFailure()
		if errors.Is(err, domain.ErrPaymentFailed) {
			s.publishOrderEvent(kafka.EventTypeOrderPaymentFailed, domain.Order{CustomerID: customerID, Value: paymentValue}, paymentMethod)
		}
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced()
		s.metrics.RecordPaymentProcessed(strings.ToLower(strings.TrimSpace(paymentMethod)))
	}
	s.publishOrderEvent(kafka.EventTypeOrderPlaced, placed, paymentMethod)

	s.logger.WithFields(log.Fields{
		"order_id":    placed.ID,
		"customer_id": customerID,
		"method":      paymentMethod,
		"value":       paymentValue.StringFixed(2),
	}).Info("order placed")

	// Единственное преобразование в бразильское время, после фиксации.
	return placed.InBrazilTime(), nil
}

func (s *Service) validateInput(paymentMethod string, paymentValue decimal.Decimal, customerID int64) error {
	if strings.TrimSpace(paymentMethod) == "" {
		return domain.ErrPaymentMethodRequired
	}
	if paymentValue.Sign() <= 0 {
		return fmt.Errorf("payment value %s: %w", paymentValue, domain.ErrPaymentValueInvalid)
	}
	if customerID <= 0 {
		return fmt.Errorf("customer id %d: %w", customerID, domain.ErrCustomerIDInvalid)
	}
	return nil
}

// placeInTransaction выполняет транзакционную часть оформления.
// Откат гарантирован на каждом пути выхода до фиксации.
func (s *Service) placeInTransaction(ctx context.Context, paymentMethod string, paymentValue decimal.Decimal, customerID int64) (domain.Order, error) {
	if err := s.uow.Begin(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := s.uow.Rollback(ctx); err != nil {
			s.logger.WithError(err).Error("rollback failed")
		}
	}()

	processor, err := s.payments.Resolve(paymentMethod)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.processPayment(ctx, processor, paymentValue); err != nil {
		return domain.Order{}, err
	}

	created, err := s.uow.Orders().Add(ctx, domain.Order{
		CustomerID: customerID,
		Value:      paymentValue,
		OrderDate:  s.clock.Now().UTC(),
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	if _, err := s.uow.SaveChanges(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}

	if err := s.uow.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("commit order: %w", err)
	}
	committed = true

	return created, nil
}

// processPayment вызывает платёжный шлюз с дедлайном. Таймаут считается
// отказом платежа; прочие ошибки шлюза возвращаются без обёртки.
func (s *Service) processPayment(ctx context.Context, processor domain.PaymentProcessor, amount decimal.Decimal) error {
	stepStart := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordStepDuration("payment", time.Since(stepStart))
		}
	}()

	payCtx := ctx
	if s.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, s.PaymentTimeout)
		defer cancel()
	}

	ok, err := processor.Process(payCtx, amount)
	if err != nil {
		s.recordPaymentFailure(processor.Method())
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("payment %s timed out: %w", processor.Method(), domain.ErrPaymentFailed)
		}
		return err
	}
	if !ok {
		s.recordPaymentFailure(processor.Method())
		return fmt.Errorf("payment %s declined: %w", processor.Method(), domain.ErrPaymentFailed)
	}
	return nil
}

func (s *Service) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed()
	}
}

func (s *Service) recordPaymentFailure(method string) {
	if s.metrics != nil {
		s.metrics.RecordPaymentFailed(method)
	}
}

func (s *Service) publishOrderEvent(eventType kafka.EventType, order domain.Order, method string) {
	if s.producer == nil {
		return
	}
	event := kafka.NewOrderEvent(eventType, order.ID, order.CustomerID, strings.ToLower(strings.TrimSpace(method)), order.Value.StringFixed(2), nil)
	if err := s.producer.PublishOrderEvent(event); err != nil {
		// Событие вспомогательное, исход заказа уже определён.
		s.logger.WithError(err).Warn("failed to publish order event")
	}
}
