package memory

import (
	"context"
	"sync"
	"time"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// UnitOfWork — in-memory реализация domain.UnitOfWork для локальной
// разработки и тестов. Транзакция реализована снимком всех коллекций:
// Begin снимает копию, Rollback её восстанавливает, Commit отбрасывает.
// Транзакции сериализуются мьютексом: одновременно открыта не более одной.
type UnitOfWork struct {
	customers *Collection[domain.Customer]
	orders    *orderRepository
	products  *Collection[domain.Product]
	numbers   *numberRepository

	txMu sync.Mutex
	tx   *txState
}

type txState struct {
	customers collectionState[domain.Customer]
	orders    collectionState[domain.Order]
	products  collectionState[domain.Product]
	numbers   collectionState[domain.RandomNumber]
}

// NewUnitOfWork создаёт пустое in-memory хранилище со всеми коллекциями.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		customers: NewCollection(
			func(c domain.Customer) int64 { return c.ID },
			func(c domain.Customer, id int64) domain.Customer { c.ID = id; return c },
			domain.ErrCustomerNotFound,
		),
		orders: &orderRepository{Collection: NewCollection(
			func(o domain.Order) int64 { return o.ID },
			func(o domain.Order, id int64) domain.Order { o.ID = id; return o },
			domain.ErrOrderNotFound,
		)},
		products: NewCollection(
			func(p domain.Product) int64 { return p.ID },
			func(p domain.Product, id int64) domain.Product { p.ID = id; return p },
			domain.ErrProductNotFound,
		),
		numbers: &numberRepository{Collection: NewCollection(
			func(n domain.RandomNumber) int64 { return n.ID },
			func(n domain.RandomNumber, id int64) domain.RandomNumber { n.ID = id; return n },
			domain.ErrRandomNumberNotFound,
		)},
	}
}

func (u *UnitOfWork) Customers() domain.CustomerRepository { return u.customers }

func (u *UnitOfWork) Orders() domain.OrderRepository { return u.orders }

func (u *UnitOfWork) Products() domain.ProductRepository { return u.products }

func (u *UnitOfWork) RandomNumbers() domain.RandomNumberRepository { return u.numbers }

// SaveChanges возвращает количество записей, применённых с прошлого вызова.
// Записи в память применяются сразу, поэтому здесь только сбрасываются счётчики.
func (u *UnitOfWork) SaveChanges(context.Context) (int, error) {
	n := u.customers.flush()
	n += u.orders.flush()
	n += u.products.flush()
	n += u.numbers.flush()
	return n, nil
}

// Begin открывает транзакцию, снимая копию всех коллекций.
// Блокируется, пока открыта чужая транзакция.
func (u *UnitOfWork) Begin(context.Context) error {
	u.txMu.Lock()
	u.tx = &txState{
		customers: u.customers.snapshot(),
		orders:    u.orders.snapshot(),
		products:  u.products.snapshot(),
		numbers:   u.numbers.snapshot(),
	}
	return nil
}

// Commit подтверждает транзакцию. Без открытой транзакции — no-op.
func (u *UnitOfWork) Commit(context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.txMu.Unlock()
	return nil
}

// Rollback восстанавливает состояние на момент Begin. Без транзакции — no-op.
func (u *UnitOfWork) Rollback(context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.customers.restore(u.tx.customers)
	u.orders.restore(u.tx.orders)
	u.products.restore(u.tx.products)
	u.numbers.restore(u.tx.numbers)
	u.tx = nil
	u.txMu.Unlock()
	return nil
}

// orderRepository добавляет к generic-коллекции именованные запросы правил покупки.
type orderRepository struct {
	*Collection[domain.Order]
}

func (r *orderRepository) CountByCustomerSince(ctx context.Context, customerID int64, since time.Time) (int, error) {
	return r.CountWhere(ctx, func(o domain.Order) bool {
		return o.CustomerID == customerID && !o.OrderDate.Before(since)
	})
}

func (r *orderRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	return r.CountWhere(ctx, func(o domain.Order) bool {
		return o.CustomerID == customerID
	})
}

// numberRepository добавляет проверку занятости значения.
type numberRepository struct {
	*Collection[domain.RandomNumber]
}

func (r *numberRepository) NumberExists(ctx context.Context, number int) (bool, error) {
	return r.Any(ctx, func(n domain.RandomNumber) bool {
		return n.Number == number
	})
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
var _ domain.OrderRepository = (*orderRepository)(nil)
var _ domain.RandomNumberRepository = (*numberRepository)(nil)
