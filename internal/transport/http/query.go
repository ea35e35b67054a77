package rest

import (
	"strings"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/httpx"
	"github.com/Gunvolt24/rapid_express/pkg/strcase"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseListQuery: параметры листинга заказов.
// Любое нарушение даёт одну и ту же ошибку "Invalid query parameters".
func parseListQuery(c *gin.Context) (domain.OrderListQuery, error) {
	invalid := domain.InvalidInput(domain.MsgInvalidQuery)

	page, ok := httpx.QueryInt(c, "page", domain.DefaultPage)
	if !ok || page < 1 {
		return domain.OrderListQuery{}, invalid
	}
	limit, ok := httpx.QueryInt(c, "limit", domain.DefaultLimit)
	if !ok || limit < 1 {
		return domain.OrderListQuery{}, invalid
	}

	q := domain.OrderListQuery{
		Customer:  strings.TrimSpace(c.Query("customer")),
		Page:      page,
		Limit:     httpx.ClampInt(limit, 1, domain.MaxLimit),
		SortBy:    strcase.ToSnake(c.Query("sort_by")),
		SortOrder: strings.ToLower(strings.TrimSpace(c.Query("sort_order"))),
	}
	if q.SortBy != "" && !domain.IsValidSortBy(q.SortBy) {
		return domain.OrderListQuery{}, invalid
	}
	if q.SortOrder != "" && !domain.IsValidSortOrder(q.SortOrder) {
		return domain.OrderListQuery{}, invalid
	}

	var err error
	if q.StartDate, err = parseDay(c.Query("start_date")); err != nil {
		return domain.OrderListQuery{}, invalid
	}
	if q.EndDate, err = parseDay(c.Query("end_date")); err != nil {
		return domain.OrderListQuery{}, invalid
	}
	return q.WithDefaults(), nil
}

// parseDay: YYYY-MM-DD или RFC3339 (берётся только дата); пустая строка: нет границы.
func parseDay(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		ts, rfcErr := time.Parse(time.RFC3339, raw)
		if rfcErr != nil {
			return nil, err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &t, nil
}
