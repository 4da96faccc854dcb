package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// table — generic-реализация domain.Repository[T] поверх одной таблицы.
// Метаданные (колонки, сканирование, аргументы) задаются при создании;
// сами запросы строятся единообразно для всех сущностей.
//
// Find/CountWhere/Any применяют типизированный фильтр на стороне клиента:
// это честная реализация generic-контракта для произвольного предиката.
// Горячие запросы бизнес-правил вынесены в именованные SQL-методы
// конкретных репозиториев и фильтруются в базе.
type table[T any] struct {
	uow      *UnitOfWork
	name     string
	columns  []string // колонки без id, в порядке insertArgs
	scanRow  func(rowScanner) (T, error)
	args     func(T) []any
	idOf     func(T) int64
	notFound error
}

func (t *table[T]) selectClause() string {
	return "SELECT id, " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t *table[T]) GetByID(ctx context.Context, id int64) (T, error) {
	row := t.uow.q().QueryRowContext(ctx, t.selectClause()+" WHERE id = $1", id)
	entity, err := t.scanRow(row)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, t.notFound
		}
		return zero, fmt.Errorf("select %s by id: %w", t.name, err)
	}
	return entity, nil
}

func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	return t.queryMany(ctx, t.selectClause()+" ORDER BY id")
}

func (t *table[T]) Find(ctx context.Context, filter domain.Filter[T]) ([]T, error) {
	all, err := t.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, entity := range all {
		if filter(entity) {
			out = append(out, entity)
		}
	}
	return out, nil
}

func (t *table[T]) GetPaged(ctx context.Context, page, pageSize int) (domain.PagedList[T], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)

	total, err := t.Count(ctx)
	if err != nil {
		return domain.PagedList[T]{}, err
	}

	skip := (page - 1) * pageSize
	items, err := t.queryMany(ctx,
		t.selectClause()+" ORDER BY id LIMIT $1 OFFSET $2", pageSize, skip)
	if err != nil {
		return domain.PagedList[T]{}, err
	}

	return domain.NewPagedList(items, total, page, pageSize), nil
}

func (t *table[T]) Add(ctx context.Context, entity T) (T, error) {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := t.uow.q().QueryRowContext(ctx, query, t.args(entity)...).Scan(&id); err != nil {
		var zero T
		return zero, fmt.Errorf("insert %s: %w", t.name, err)
	}
	t.uow.recordWrite()

	return t.GetByID(ctx, id)
}

func (t *table[T]) AddRange(ctx context.Context, entities []T) ([]T, error) {
	out := make([]T, 0, len(entities))
	for _, entity := range entities {
		added, err := t.Add(ctx, entity)
		if err != nil {
			return nil, err
		}
		out = append(out, added)
	}
	return out, nil
}

func (t *table[T]) Update(ctx context.Context, entity T) error {
	sets := make([]string, len(t.columns))
	for i, col := range t.columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		t.name, strings.Join(sets, ", "), len(t.columns)+1)

	args := append(t.args(entity), t.idOf(entity))
	res, err := t.uow.q().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return t.notFound
	}
	t.uow.recordWrite()
	return nil
}

func (t *table[T]) Remove(ctx context.Context, entity T) error {
	res, err := t.uow.q().ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), t.idOf(entity))
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return t.notFound
	}
	t.uow.recordWrite()
	return nil
}

func (t *table[T]) RemoveRange(ctx context.Context, entities []T) error {
	for _, entity := range entities {
		if err := t.Remove(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

func (t *table[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := t.uow.q().QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

func (t *table[T]) CountWhere(ctx context.Context, filter domain.Filter[T]) (int, error) {
	found, err := t.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

func (t *table[T]) Any(ctx context.Context, filter domain.Filter[T]) (bool, error) {
	n, err := t.CountWhere(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *table[T]) queryMany(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := t.uow.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		entity, err := t.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.name, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", t.name, err)
	}
	return out, nil
}
