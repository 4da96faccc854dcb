package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/clock"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/metrics"
)

// Максимальная сумма первой покупки.
var firstPurchaseCap = decimal.NewFromInt(100)

// Service проверяет право клиента на покупку.
// Правила применяются строго по порядку с остановкой на первом отказе.
type Service struct {
	uow     domain.UnitOfWork
	clock   clock.Clock
	logger  *log.Entry
	metrics *metrics.PurchaseMetrics
}

// NewService создаёт проверку права на покупку.
func NewService(uow domain.UnitOfWork, clk clock.Clock, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "eligibility")
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Service{
		uow:     uow,
		clock:   clk,
		logger:  logger,
		metrics: metrics.NewPurchaseMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт проверку без метрик (для тестов).
func NewServiceWithoutMetrics(uow domain.UnitOfWork, clk clock.Clock, logger *log.Entry) *Service {
	s := NewService(uow, clk, logger)
	s.metrics = nil
	return s
}

// CanPurchase возвращает true, если клиенту разрешена покупка на сумму purchaseValue.
//
// Порядок правил:
//  1. не больше одной покупки за календарный месяц;
//  2. первая покупка не дороже 100;
//  3. покупки только в рабочие часы (8–18) рабочих дней.
func (s *Service) CanPurchase(ctx context.Context, customerID int64, purchaseValue decimal.Decimal) (bool, error) {
	if customerID <= 0 {
		return false, fmt.Errorf("customer id %d: %w", customerID, domain.ErrCustomerIDInvalid)
	}
	if purchaseValue.Sign() <= 0 {
		return false, fmt.Errorf("purchase value %s: %w", purchaseValue, domain.ErrPurchaseValueInvalid)
	}

	if _, err := s.uow.Customers().GetByID(ctx, customerID); err != nil {
		return false, fmt.Errorf("customer %d: %w", customerID, err)
	}

	allowed, reason, err := s.evaluate(ctx, customerID, purchaseValue)
	if err != nil {
		return false, err
	}

	if allowed {
		if s.metrics != nil {
			s.metrics.RecordEligibilityAllowed()
		}
		return true, nil
	}

	if s.metrics != nil {
		s.metrics.RecordEligibilityDenied()
	}
	s.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"value":       purchaseValue.StringFixed(2),
		"reason":      reason,
	}).Info("purchase denied")

	return false, nil
}

func (s *Service) evaluate(ctx context.Context, customerID int64, purchaseValue decimal.Decimal) (bool, string, error) {
	now := s.clock.Now()

	// Календарный месяц, не 30 дней.
	monthAgo := now.AddDate(0, -1, 0)
	recent, err := s.uow.Orders().CountByCustomerSince(ctx, customerID, monthAgo)
	if err != nil {
		return false, "", fmt.Errorf("count recent orders: %w", err)
	}
	if recent > 0 {
		return false, "monthly limit reached", nil
	}

	total, err := s.uow.Orders().CountByCustomer(ctx, customerID)
	if err != nil {
		return false, "", fmt.Errorf("count orders: %w", err)
	}
	if total == 0 && purchaseValue.GreaterThan(firstPurchaseCap) {
		return false, "first purchase above cap", nil
	}

	if now.Hour() < 8 || now.Hour() > 18 ||
		now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return false, "outside business hours", nil
	}

	return true, "", nil
}
