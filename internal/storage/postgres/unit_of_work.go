package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// dbtx покрывает *sql.DB и *sql.Tx: репозитории выполняют запросы через
// активную транзакцию UnitOfWork, если она открыта.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UnitOfWork — PostgreSQL-реализация domain.UnitOfWork.
// Владеет хэндлом базы и не более чем одной открытой транзакцией;
// репозитории маршрутизируют запросы через неё. Commit и Rollback без
// открытой транзакции — no-op.
type UnitOfWork struct {
	db *sql.DB

	// txMu сериализует конкурентные транзакции: Begin ждёт,
	// пока предыдущая транзакция не завершится.
	txMu sync.Mutex

	mu     sync.Mutex
	tx     *sql.Tx
	writes int

	customers *customerRepository
	orders    *orderRepository
	products  *productRepository
	numbers   *numberRepository
}

// NewUnitOfWork создаёт UnitOfWork поверх открытого Store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	u := &UnitOfWork{db: store.DB()}
	u.customers = newCustomerRepository(u)
	u.orders = newOrderRepository(u)
	u.products = newProductRepository(u)
	u.numbers = newNumberRepository(u)
	return u
}

func (u *UnitOfWork) Customers() domain.CustomerRepository { return u.customers }

func (u *UnitOfWork) Orders() domain.OrderRepository { return u.orders }

func (u *UnitOfWork) Products() domain.ProductRepository { return u.products }

func (u *UnitOfWork) RandomNumbers() domain.RandomNumberRepository { return u.numbers }

// q возвращает исполнитель запросов: открытую транзакцию либо пул.
func (u *UnitOfWork) q() dbtx {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// recordWrite учитывает выполненную запись для SaveChanges.
func (u *UnitOfWork) recordWrite() {
	u.mu.Lock()
	u.writes++
	u.mu.Unlock()
}

// SaveChanges возвращает количество записей, выполненных с прошлого вызова.
// Запросы уходят в базу сразу, поэтому здесь только сбрасывается счётчик.
func (u *UnitOfWork) SaveChanges(context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := u.writes
	u.writes = 0
	return n, nil
}

// Begin открывает транзакцию. Конкурентный Begin ждёт завершения
// предыдущей транзакции; вложенные транзакции не поддерживаются.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	u.txMu.Lock()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		u.txMu.Unlock()
		return fmt.Errorf("begin tx: %w", err)
	}

	u.mu.Lock()
	u.tx = tx
	u.mu.Unlock()
	return nil
}

// Commit подтверждает открытую транзакцию; без транзакции — no-op.
func (u *UnitOfWork) Commit(context.Context) error {
	u.mu.Lock()
	tx := u.tx
	u.tx = nil
	u.mu.Unlock()

	if tx == nil {
		return nil
	}
	err := tx.Commit()
	u.txMu.Unlock()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Rollback откатывает открытую транзакцию; без транзакции — no-op.
func (u *UnitOfWork) Rollback(context.Context) error {
	u.mu.Lock()
	tx := u.tx
	u.tx = nil
	u.mu.Unlock()

	if tx == nil {
		return nil
	}
	err := tx.Rollback()
	u.txMu.Unlock()
	if err != nil {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

// customerRepository — строки таблицы customers.
type customerRepository struct {
	*table[domain.Customer]
}

func newCustomerRepository(u *UnitOfWork) *customerRepository {
	return &customerRepository{table: &table[domain.Customer]{
		uow:     u,
		name:    "customers",
		columns: []string{"name"},
		scanRow: func(row rowScanner) (domain.Customer, error) {
			var c domain.Customer
			err := row.Scan(&c.ID, &c.Name)
			return c, err
		},
		args:     func(c domain.Customer) []any { return []any{c.Name} },
		idOf:     func(c domain.Customer) int64 { return c.ID },
		notFound: domain.ErrCustomerNotFound,
	}}
}

// orderRepository — строки таблицы orders плюс именованные запросы правил.
type orderRepository struct {
	*table[domain.Order]
}

func newOrderRepository(u *UnitOfWork) *orderRepository {
	return &orderRepository{table: &table[domain.Order]{
		uow:     u,
		name:    "orders",
		columns: []string{"customer_id", "value", "order_date"},
		scanRow: func(row rowScanner) (domain.Order, error) {
			var o domain.Order
			if err := row.Scan(&o.ID, &o.CustomerID, &o.Value, &o.OrderDate); err != nil {
				return o, err
			}
			// В базе момент хранится в UTC; нормализуем представление.
			o.OrderDate = o.OrderDate.UTC()
			return o, nil
		},
		args: func(o domain.Order) []any {
			return []any{o.CustomerID, o.Value, o.OrderDate.UTC()}
		},
		idOf:     func(o domain.Order) int64 { return o.ID },
		notFound: domain.ErrOrderNotFound,
	}}
}

func (r *orderRepository) CountByCustomerSince(ctx context.Context, customerID int64, since time.Time) (int, error) {
	var n int
	err := r.uow.q().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE customer_id = $1 AND order_date >= $2
	`, customerID, since.UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders since: %w", err)
	}
	return n, nil
}

func (r *orderRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.uow.q().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE customer_id = $1
	`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by customer: %w", err)
	}
	return n, nil
}

// productRepository — строки таблицы products.
type productRepository struct {
	*table[domain.Product]
}

func newProductRepository(u *UnitOfWork) *productRepository {
	return &productRepository{table: &table[domain.Product]{
		uow:     u,
		name:    "products",
		columns: []string{"name", "price"},
		scanRow: func(row rowScanner) (domain.Product, error) {
			var p domain.Product
			err := row.Scan(&p.ID, &p.Name, &p.Price)
			return p, err
		},
		args:     func(p domain.Product) []any { return []any{p.Name, p.Price} },
		idOf:     func(p domain.Product) int64 { return p.ID },
		notFound: domain.ErrProductNotFound,
	}}
}

// numberRepository — строки таблицы random_numbers.
type numberRepository struct {
	*table[domain.RandomNumber]
}

func newNumberRepository(u *UnitOfWork) *numberRepository {
	return &numberRepository{table: &table[domain.RandomNumber]{
		uow:     u,
		name:    "random_numbers",
		columns: []string{"number"},
		scanRow: func(row rowScanner) (domain.RandomNumber, error) {
			var n domain.RandomNumber
			err := row.Scan(&n.ID, &n.Number)
			return n, err
		},
		args:     func(n domain.RandomNumber) []any { return []any{n.Number} },
		idOf:     func(n domain.RandomNumber) int64 { return n.ID },
		notFound: domain.ErrRandomNumberNotFound,
	}}
}

func (r *numberRepository) NumberExists(ctx context.Context, number int) (bool, error) {
	var exists bool
	err := r.uow.q().QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM random_numbers WHERE number = $1)
	`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check number exists: %w", err)
	}
	return exists, nil
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
var _ domain.OrderRepository = (*orderRepository)(nil)
var _ domain.RandomNumberRepository = (*numberRepository)(nil)
