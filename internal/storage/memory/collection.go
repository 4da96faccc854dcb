package memory

import (
	"context"
	"sync"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

// Collection — in-memory реализация generic-репозитория domain.Repository[T].
// Записи хранятся в порядке вставки; это и есть "естественный порядок"
// хранилища для постраничных выборок.
type Collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	nextID   int64
	getID    func(T) int64
	withID   func(T, int64) T
	notFound error
	// dirty — количество записей с момента последнего SaveChanges.
	dirty int
}

// NewCollection создаёт пустую коллекцию. Доступ к идентификатору записи
// задаётся функциями, чтобы коллекция не требовала общего интерфейса сущности.
func NewCollection[T any](getID func(T) int64, withID func(T, int64) T, notFound error) *Collection[T] {
	return &Collection[T]{
		nextID:   1,
		getID:    getID,
		withID:   withID,
		notFound: notFound,
	}
}

func (c *Collection[T]) GetByID(_ context.Context, id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if c.getID(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, c.notFound
}

func (c *Collection[T]) GetAll(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *Collection[T]) Find(_ context.Context, filter domain.Filter[T]) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, item := range c.items {
		if filter(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Collection[T]) GetPaged(_ context.Context, page, pageSize int) (domain.PagedList[T], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)

	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.items)
	skip := (page - 1) * pageSize
	if skip > total {
		skip = total
	}
	end := skip + pageSize
	if end > total {
		end = total
	}

	items := make([]T, end-skip)
	copy(items, c.items[skip:end])

	return domain.NewPagedList(items, total, page, pageSize), nil
}

func (c *Collection[T]) Add(_ context.Context, entity T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(entity), nil
}

func (c *Collection[T]) AddRange(_ context.Context, entities []T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(entities))
	for _, entity := range entities {
		out = append(out, c.addLocked(entity))
	}
	return out, nil
}

func (c *Collection[T]) addLocked(entity T) T {
	if c.getID(entity) == 0 {
		entity = c.withID(entity, c.nextID)
		c.nextID++
	} else if id := c.getID(entity); id >= c.nextID {
		c.nextID = id + 1
	}
	c.items = append(c.items, entity)
	c.dirty++
	return entity
}

func (c *Collection[T]) Update(_ context.Context, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.getID(entity)
	for i, item := range c.items {
		if c.getID(item) == id {
			c.items[i] = entity
			c.dirty++
			return nil
		}
	}
	return c.notFound
}

func (c *Collection[T]) Remove(_ context.Context, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(entity)
}

func (c *Collection[T]) RemoveRange(_ context.Context, entities []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entity := range entities {
		if err := c.removeLocked(entity); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection[T]) removeLocked(entity T) error {
	id := c.getID(entity)
	for i, item := range c.items {
		if c.getID(item) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.dirty++
			return nil
		}
	}
	return c.notFound
}

func (c *Collection[T]) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items), nil
}

func (c *Collection[T]) CountWhere(_ context.Context, filter domain.Filter[T]) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, item := range c.items {
		if filter(item) {
			n++
		}
	}
	return n, nil
}

func (c *Collection[T]) Any(_ context.Context, filter domain.Filter[T]) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if filter(item) {
			return true, nil
		}
	}
	return false, nil
}

// collectionState — снимок коллекции для отката транзакции.
type collectionState[T any] struct {
	items  []T
	nextID int64
	dirty  int
}

func (c *Collection[T]) snapshot() collectionState[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.items))
	copy(items, c.items)
	return collectionState[T]{items: items, nextID: c.nextID, dirty: c.dirty}
}

func (c *Collection[T]) restore(state collectionState[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = state.items
	c.nextID = state.nextID
	c.dirty = state.dirty
}

// flush возвращает количество записей с прошлого flush и обнуляет счётчик.
func (c *Collection[T]) flush() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.dirty
	c.dirty = 0
	return n
}

var _ domain.Repository[domain.Order] = (*Collection[domain.Order])(nil)
