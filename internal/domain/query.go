package domain

import (
	"math"
	"time"
)

// Параметры листинга по умолчанию.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortBy    = SortByID
	DefaultSortOrder = SortDesc
)

// Поля сортировки листинга.
const (
	SortByID         = "id"
	SortByTotalPrice = "total_price"
	SortByOrderDate  = "order_date"
)

// Направления сортировки.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// OrderListQuery: нормализованный запрос листинга.
// StartDate/EndDate: дни (время отбрасывается), nil означает отсутствие границы.
type OrderListQuery struct {
	Customer  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// IsValidSortBy: поле входит в белый список сортировки.
func IsValidSortBy(field string) bool {
	switch field {
	case SortByID, SortByTotalPrice, SortByOrderDate:
		return true
	}
	return false
}

// IsValidSortOrder: asc или desc.
func IsValidSortOrder(dir string) bool { return dir == SortAsc || dir == SortDesc }

// WithDefaults: заполняет незаданные поля значениями по умолчанию.
func (q OrderListQuery) WithDefaults() OrderListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = DefaultSortOrder
	}
	return q
}

// Offset: смещение страницы. При переполнении насыщается до math.MaxInt,
// такая страница заведомо пустая.
func (q OrderListQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// DateBounds: границы фильтра по order_date: начало дня с 00:00:01, конец дня до 23:59:59.
func (q OrderListQuery) DateBounds() (from, to *time.Time) {
	if q.StartDate != nil {
		d := dayStart(*q.StartDate).Add(time.Second)
		from = &d
	}
	if q.EndDate != nil {
		d := dayStart(*q.EndDate).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		to = &d
	}
	return from, to
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PageMeta: метаданные пагинации.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPageMeta: last_page = ceil(total / limit).
func NewPageMeta(page, limit int, total int64) PageMeta {
	last := 0
	if limit > 0 {
		last = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageMeta{CurrentPage: page, PerPage: limit, Total: total, LastPage: last}
}
