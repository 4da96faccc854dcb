package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter — типизированный предикат выборки. Осознанно заменяет произвольные
// деревья выражений: хранилище получает обычную функцию, а горячие запросы
// вынесены в именованные методы конкретных репозиториев.
type Filter[T any] func(T) bool

// Repository описывает generic-контракт шлюза персистентности для типа T.
type Repository[T any] interface {
	// GetByID возвращает запись по идентификатору или not-found ошибку типа.
	GetByID(ctx context.Context, id int64) (T, error)
	// GetAll возвращает все записи в естественном порядке хранилища.
	GetAll(ctx context.Context) ([]T, error)
	// Find возвращает записи, удовлетворяющие фильтру.
	Find(ctx context.Context, filter Filter[T]) ([]T, error)
	// GetPaged возвращает страницу записей; page/pageSize нормализуются.
	GetPaged(ctx context.Context, page, pageSize int) (PagedList[T], error)
	// Add сохраняет запись и возвращает её с присвоенным идентификатором.
	Add(ctx context.Context, entity T) (T, error)
	// AddRange сохраняет набор записей.
	AddRange(ctx context.Context, entities []T) ([]T, error)
	// Update перезаписывает существующую запись.
	Update(ctx context.Context, entity T) error
	// Remove удаляет запись.
	Remove(ctx context.Context, entity T) error
	// RemoveRange удаляет набор записей.
	RemoveRange(ctx context.Context, entities []T) error
	// Count возвращает общее количество записей.
	Count(ctx context.Context) (int, error)
	// CountWhere возвращает количество записей, удовлетворяющих фильтру.
	CountWhere(ctx context.Context, filter Filter[T]) (int, error)
	// Any сообщает, существует ли хотя бы одна запись под фильтром.
	Any(ctx context.Context, filter Filter[T]) (bool, error)
}

// CustomerRepository — хранилище клиентов.
type CustomerRepository interface {
	Repository[Customer]
}

// OrderRepository — хранилище заказов с именованными запросами правил покупки.
type OrderRepository interface {
	Repository[Order]
	// CountByCustomerSince считает заказы клиента с датой не раньше since.
	CountByCustomerSince(ctx context.Context, customerID int64, since time.Time) (int, error)
	// CountByCustomer считает все заказы клиента за всю историю.
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}

// ProductRepository — хранилище товаров каталога.
type ProductRepository interface {
	Repository[Product]
}

// RandomNumberRepository — хранилище выделенных уникальных значений.
type RandomNumberRepository interface {
	Repository[RandomNumber]
	// NumberExists сообщает, занято ли значение.
	NumberExists(ctx context.Context, number int) (bool, error)
}

// UnitOfWork владеет хэндлом хранилища и активной транзакцией.
// Одновременно открыта не более одной транзакции; вложенные транзакции
// не поддерживаются. Commit и Rollback без открытой транзакции — no-op.
type UnitOfWork interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	Products() ProductRepository
	RandomNumbers() RandomNumberRepository

	// SaveChanges фиксирует накопленные записи и возвращает их количество.
	SaveChanges(ctx context.Context) (int, error)
	// Begin открывает транзакцию.
	Begin(ctx context.Context) error
	// Commit подтверждает открытую транзакцию; без транзакции — no-op.
	Commit(ctx context.Context) error
	// Rollback откатывает открытую транзакцию; без транзакции — no-op.
	Rollback(ctx context.Context) error
}

// PaymentProcessor обрабатывает оплату одним способом.
// Контракт: при неуспехе обработчик возвращает false или ошибку;
// молча проглатывать ошибку нельзя.
type PaymentProcessor interface {
	// Method возвращает ключ способа оплаты (в нижнем регистре).
	Method() string
	// Process списывает сумму; блокирующие точки уважают ctx.
	Process(ctx context.Context, amount decimal.Decimal) (bool, error)
}
