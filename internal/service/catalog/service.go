package catalog

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// Service отдаёт постраничные списки клиентов и товаров.
type Service struct {
	uow    domain.UnitOfWork
	logger *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(uow domain.UnitOfWork, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{uow: uow, logger: logger}
}

// ListCustomers возвращает страницу клиентов. Номер страницы меньше
// единицы приводится к первой странице.
func (s *Service) ListCustomers(ctx context.Context, page int) (domain.PagedList[domain.Customer], error) {
	list, err := s.uow.Customers().GetPaged(ctx, page, domain.DefaultPageSize)
	if err != nil {
		return domain.PagedList[domain.Customer]{}, fmt.Errorf("list customers: %w", err)
	}
	return list, nil
}

// ListProducts возвращает страницу товаров.
func (s *Service) ListProducts(ctx context.Context, page int) (domain.PagedList[domain.Product], error) {
	list, err := s.uow.Products().GetPaged(ctx, page, domain.DefaultPageSize)
	if err != nil {
		return domain.PagedList[domain.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}
