package domain

// DefaultPageSize используется, когда размер страницы не задан или некорректен.
const DefaultPageSize = 10

// PagedList — транзитный результат постраничной выборки; не персистится.
type PagedList[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	HasNext    bool `json:"has_next"`
}

// TotalPages возвращает количество страниц: ceil(TotalCount/PageSize).
func (p PagedList[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// NormalizePage приводит page/pageSize к допустимым значениям:
// page <= 0 становится 1, pageSize <= 0 становится DefaultPageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// NewPagedList собирает PagedList по странице элементов и общему количеству.
// HasNext выводится из позиции страницы: skip + len(items) < total.
func NewPagedList[T any](items []T, total, page, pageSize int) PagedList[T] {
	skip := (page - 1) * pageSize
	return PagedList[T]{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		HasNext:    skip+len(items) < total,
	}
}
