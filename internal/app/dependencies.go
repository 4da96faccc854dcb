package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/clock"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/health"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/messaging/kafka"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/catalog"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/eligibility"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/order"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/payment"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/service/random"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/storage/memory"
	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	UOW      domain.UnitOfWork
	Store    *postgres.Store // nil при in-memory хранилище
	Producer *kafka.Producer // nil без Kafka

	Orders      *order.Service
	Eligibility *eligibility.Service
	Allocator   *random.Allocator
	Catalog     *catalog.Service

	Logger *log.Entry
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	uow, store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	producer := initKafkaProducer(cfg.KafkaBrokers, logger)

	clk := clock.NewSystem()
	registry := payment.NewDefaultRegistry(logger)

	deps := &Dependencies{
		UOW:         uow,
		Store:       store,
		Producer:    producer,
		Eligibility: eligibility.NewService(uow, clk, logger.WithField("component", "eligibility")),
		Catalog:     catalog.NewService(uow, logger.WithField("component", "catalog")),
		Logger:      logger,
	}

	if producer != nil {
		deps.Orders = order.NewServiceWithKafka(uow, registry, clk, producer, logger.WithField("component", "order"))
		deps.Allocator = random.NewAllocatorWithKafka(uow, producer, logger.WithField("component", "random"))
	} else {
		deps.Orders = order.NewService(uow, registry, clk, logger.WithField("component", "order"))
		deps.Allocator = random.NewAllocator(uow, logger.WithField("component", "random"))
	}

	return deps, nil
}

// RegisterHealthCheckers подключает проверки внешних зависимостей.
func (d *Dependencies) RegisterHealthCheckers(handler *health.Handler) {
	if d.Store != nil {
		handler.RegisterChecker("store", health.NewStoreChecker(d.Store.Ping))
	}
}

// Close освобождает внешние ресурсы приложения.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

// initStorage открывает хранилище согласно конфигурации.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (domain.UnitOfWork, *postgres.Store, error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		if cfg.AutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, nil, fmt.Errorf("auto-migrate: %w", err)
			}
			logger.Info("migrations applied")
		}
		logger.Info("postgres storage initialized")
		return postgres.NewUnitOfWork(store), store, nil
	case StorageMemory:
		logger.Info("in-memory storage initialized")
		return memory.NewUnitOfWork(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Ошибка подключения не фатальна: сервис продолжает работу без событий.
func initKafkaProducer(brokers string, logger *log.Entry) *kafka.Producer {
	if brokers == "" {
		return nil
	}

	brokerList := strings.Split(brokers, ",")
	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer
}
