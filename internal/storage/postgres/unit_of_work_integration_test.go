package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

func TestIntegration_CustomerCRUDAndPaging(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := uow.Customers().Add(ctx, domain.Customer{Name: "customer"})
		require.NoError(t, err)
	}

	paged, err := uow.Customers().GetPaged(ctx, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 15, paged.TotalCount)
	require.Len(t, paged.Items, 5)
	require.False(t, paged.HasNext)
	require.Equal(t, 2, paged.TotalPages())

	first, err := uow.Customers().GetByID(ctx, paged.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, "customer", first.Name)

	_, err = uow.Customers().GetByID(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestIntegration_TransactionRollbackLeavesNoOrder(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	customer, err := uow.Customers().Add(ctx, domain.Customer{Name: "buyer"})
	require.NoError(t, err)

	require.NoError(t, uow.Begin(ctx))
	_, err = uow.Orders().Add(ctx, domain.Order{
		CustomerID: customer.ID,
		Value:      decimal.NewFromFloat(100.50),
		OrderDate:  time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	n, err := uow.Orders().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "rolled back order must not be visible")
}

func TestIntegration_TransactionCommitPersistsOrder(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	customer, err := uow.Customers().Add(ctx, domain.Customer{Name: "buyer"})
	require.NoError(t, err)

	placed := time.Date(2024, time.July, 1, 15, 30, 0, 0, time.UTC)
	require.NoError(t, uow.Begin(ctx))
	order, err := uow.Orders().Add(ctx, domain.Order{
		CustomerID: customer.ID,
		Value:      decimal.NewFromFloat(42.75),
		OrderDate:  placed,
	})
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	got, err := uow.Orders().GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, got.Value.Equal(decimal.NewFromFloat(42.75)))
	require.True(t, got.OrderDate.Equal(placed))
	require.Equal(t, time.UTC, got.OrderDate.Location())
}

func TestIntegration_OrderNamedQueries(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	customer, err := uow.Customers().Add(ctx, domain.Customer{Name: "buyer"})
	require.NoError(t, err)
	other, err := uow.Customers().Add(ctx, domain.Customer{Name: "other"})
	require.NoError(t, err)

	now := time.Now().UTC()
	seed := func(customerID int64, at time.Time) {
		t.Helper()
		_, err := uow.Orders().Add(ctx, domain.Order{
			CustomerID: customerID,
			Value:      decimal.NewFromInt(10),
			OrderDate:  at,
		})
		require.NoError(t, err)
	}
	seed(customer.ID, now.AddDate(0, 0, -3))
	seed(customer.ID, now.AddDate(0, -3, 0))
	seed(other.ID, now)

	recent, err := uow.Orders().CountByCustomerSince(ctx, customer.ID, now.AddDate(0, -1, 0))
	require.NoError(t, err)
	require.Equal(t, 1, recent)

	total, err := uow.Orders().CountByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestIntegration_NumberExistsAndUniqueConstraint(t *testing.T) {
	store := openStoreForIntegrationTest(t)
	uow := NewUnitOfWork(store)
	ctx := context.Background()

	exists, err := uow.RandomNumbers().NumberExists(ctx, 7)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = uow.RandomNumbers().Add(ctx, domain.RandomNumber{Number: 7})
	require.NoError(t, err)

	exists, err = uow.RandomNumbers().NumberExists(ctx, 7)
	require.NoError(t, err)
	require.True(t, exists)

	// Уникальный индекс дублирует инвариант аллокатора на уровне базы.
	_, err = uow.RandomNumbers().Add(ctx, domain.RandomNumber{Number: 7})
	require.Error(t, err)
}
