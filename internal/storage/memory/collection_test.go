package memory

import (
	"context"
	"testing"

	"github.com/RodrigoCastroMoura/prova-bonifiq/internal/domain"
)

func newCustomerCollection() *Collection[domain.Customer] {
	return NewCollection(
		func(c domain.Customer) int64 { return c.ID },
		func(c domain.Customer, id int64) domain.Customer { c.ID = id; return c },
		domain.ErrCustomerNotFound,
	)
}

func seedCustomers(t *testing.T, c *Collection[domain.Customer], n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := c.Add(ctx, domain.Customer{Name: "customer"}); err != nil {
			t.Fatalf("add customer: %v", err)
		}
	}
}

func TestCollection_AddAssignsSequentialIDs(t *testing.T) {
	c := newCustomerCollection()
	ctx := context.Background()

	first, err := c.Add(ctx, domain.Customer{Name: "a"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := c.Add(ctx, domain.Customer{Name: "b"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1,2; got %d,%d", first.ID, second.ID)
	}
}

func TestCollection_GetByID(t *testing.T) {
	c := newCustomerCollection()
	ctx := context.Background()
	added, _ := c.Add(ctx, domain.Customer{Name: "a"})

	got, err := c.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" {
		t.Errorf("expected name a, got %q", got.Name)
	}

	if _, err := c.GetByID(ctx, 999); err != domain.ErrCustomerNotFound {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCollection_GetPaged(t *testing.T) {
	c := newCustomerCollection()
	seedCustomers(t, c, 25)
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantItems int
		wantPage  int
		wantNext  bool
	}{
		{"first page", 1, 10, 10, 1, true},
		{"middle page", 2, 10, 10, 2, true},
		{"last page", 3, 10, 5, 3, false},
		{"past the end", 5, 10, 0, 5, false},
		{"clamped page", 0, 10, 10, 1, true},
		{"clamped size", 1, 0, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paged, err := c.GetPaged(ctx, tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("get paged: %v", err)
			}
			if len(paged.Items) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(paged.Items), tt.wantItems)
			}
			if paged.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", paged.Page, tt.wantPage)
			}
			if paged.TotalCount != 25 {
				t.Errorf("total = %d, want 25", paged.TotalCount)
			}
			if paged.HasNext != tt.wantNext {
				t.Errorf("hasNext = %v, want %v", paged.HasNext, tt.wantNext)
			}
		})
	}
}

func TestCollection_GetPagedIdempotent(t *testing.T) {
	c := newCustomerCollection()
	seedCustomers(t, c, 12)
	ctx := context.Background()

	first, err := c.GetPaged(ctx, 1, 5)
	if err != nil {
		t.Fatalf("get paged: %v", err)
	}
	second, err := c.GetPaged(ctx, 1, 5)
	if err != nil {
		t.Fatalf("get paged: %v", err)
	}

	if first.TotalCount != second.TotalCount || first.HasNext != second.HasNext {
		t.Error("repeated paged reads must be identical without writes")
	}
	if len(first.Items) != len(second.Items) {
		t.Fatal("item counts differ between identical reads")
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("item %d differs: %d vs %d", i, first.Items[i].ID, second.Items[i].ID)
		}
	}
}

func TestCollection_FindCountAny(t *testing.T) {
	c := newCustomerCollection()
	ctx := context.Background()
	_, _ = c.Add(ctx, domain.Customer{Name: "alice"})
	_, _ = c.Add(ctx, domain.Customer{Name: "bob"})
	_, _ = c.Add(ctx, domain.Customer{Name: "alice"})

	isAlice := func(cu domain.Customer) bool { return cu.Name == "alice" }

	found, err := c.Find(ctx, isAlice)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("find = %d, want 2", len(found))
	}

	n, err := c.CountWhere(ctx, isAlice)
	if err != nil || n != 2 {
		t.Errorf("countWhere = %d (%v), want 2", n, err)
	}

	any, err := c.Any(ctx, func(cu domain.Customer) bool { return cu.Name == "carol" })
	if err != nil || any {
		t.Errorf("any(carol) = %v (%v), want false", any, err)
	}
}

func TestCollection_UpdateRemove(t *testing.T) {
	c := newCustomerCollection()
	ctx := context.Background()
	added, _ := c.Add(ctx, domain.Customer{Name: "a"})

	added.Name = "renamed"
	if err := c.Update(ctx, added); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := c.GetByID(ctx, added.ID)
	if got.Name != "renamed" {
		t.Errorf("expected renamed, got %q", got.Name)
	}

	if err := c.Remove(ctx, added); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n, _ := c.Count(ctx); n != 0 {
		t.Errorf("count after remove = %d, want 0", n)
	}
	if err := c.Remove(ctx, added); err != domain.ErrCustomerNotFound {
		t.Errorf("removing absent entity: got %v", err)
	}
}
