package random

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/messaging/kafka"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/metrics"
)

// DefaultMaxAttempts — предел попыток подбора свободного числа.
const DefaultMaxAttempts = 1000

// Allocator выдаёт уникальные случайные числа из пространства
// [0, domain.RandomNumberSpace). Занятость проверяется по хранилищу,
// поэтому уникальность сохраняется между перезапусками сервиса.
//
// Пространство из 100 значений исчерпывается быстро: по мере заполнения
// коллизии учащаются задолго до предела попыток. Это ограничение
// заложено в контракт, а не ошибка генератора.
type Allocator struct {
	uow      domain.UnitOfWork
	logger   *log.Entry
	metrics  *metrics.PurchaseMetrics
	producer *kafka.Producer

	// MaxAttempts можно уменьшить в тестах.
	MaxAttempts int
}

// NewAllocator создаёт генератор уникальных чисел.
func NewAllocator(uow domain.UnitOfWork, logger *log.Entry) *Allocator {
	if logger == nil {
		logger = log.New().WithField("component", "random")
	}
	return &Allocator{
		uow:         uow,
		logger:      logger,
		metrics:     metrics.NewPurchaseMetrics(),
		MaxAttempts: DefaultMaxAttempts,
	}
}

// NewAllocatorWithKafka создаёт генератор, публикующий события выдачи в Kafka.
func NewAllocatorWithKafka(uow domain.UnitOfWork, producer *kafka.Producer, logger *log.Entry) *Allocator {
	a := NewAllocator(uow, logger)
	a.producer = producer
	return a
}

// NewAllocatorWithoutMetrics создаёт генератор без метрик (для тестов).
func NewAllocatorWithoutMetrics(uow domain.UnitOfWork, logger *log.Entry) *Allocator {
	a := NewAllocator(uow, logger)
	a.metrics = nil
	return a
}

// Allocate подбирает свободное число, сохраняет его и возвращает запись.
// После MaxAttempts неудачных попыток возвращается ErrAllocationExhausted.
func (a *Allocator) Allocate(ctx context.Context) (domain.RandomNumber, error) {
	for attempt := 1; attempt <= a.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.RandomNumber{}, err
		}

		// Сид не повторяется между попытками даже в пределах
		// одного тика таймера.
		rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(attempt)))
		candidate := rng.Intn(domain.RandomNumberSpace)

		exists, err := a.uow.RandomNumbers().NumberExists(ctx, candidate)
		if err != nil {
			return domain.RandomNumber{}, fmt.Errorf("check number %d: %w", candidate, err)
		}
		if exists {
			continue
		}

		allocated, err := a.uow.RandomNumbers().Add(ctx, domain.RandomNumber{Number: candidate})
		if err != nil {
			return domain.RandomNumber{}, fmt.Errorf("persist number %d: %w", candidate, err)
		}
		if _, err := a.uow.SaveChanges(ctx); err != nil {
			return domain.RandomNumber{}, fmt.Errorf("save number %d: %w", candidate, err)
		}

		if a.metrics != nil {
			a.metrics.RecordAllocationAttempts(attempt)
		}
		a.publishAllocated(allocated)

		a.logger.WithFields(log.Fields{
			"number":   allocated.Number,
			"attempts": attempt,
		}).Debug("unique number allocated")

		return allocated, nil
	}

	if a.metrics != nil {
		a.metrics.RecordAllocationFailed()
	}
	return domain.RandomNumber{}, fmt.Errorf("after %d attempts: %w", a.MaxAttempts, domain.ErrAllocationExhausted)
}

func (a *Allocator) publishAllocated(n domain.RandomNumber) {
	if a.producer == nil {
		return
	}
	if err := a.producer.PublishNumberEvent(kafka.NewNumberEvent(n.ID, n.Number)); err != nil {
		// Событие вспомогательное, выдача числа уже состоялась.
		a.logger.WithError(err).Warn("failed to publish allocation event")
	}
}
