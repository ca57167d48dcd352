package cms

import (
	"strings"
)

// Pagination defaults.
const (
	DefaultLimit      = 10
	DefaultMediaLimit = 20
	DefaultMaxLimit   = 100
	MaxSearchLimit    = 50
)

// SortField names a sortable post attribute.
type SortField string

const (
	SortCreatedAt   SortField = "createdAt"
	SortUpdatedAt   SortField = "updatedAt"
	SortPublishedAt SortField = "publishedAt"
	SortTitle       SortField = "title"
	SortViewCount   SortField = "viewCount"
)

// SortOrder is a field plus direction. The zero value means the store's
// default order.
type SortOrder struct {
	Field SortField
	Desc  bool
}

var (
	sortNewestFirst     = SortOrder{Field: SortCreatedAt, Desc: true}
	sortLatestPublished = SortOrder{Field: SortPublishedAt, Desc: true}
)

// ParseSort parses "field" or "-field". An empty string yields the
// newest-first default.
func ParseSort(s string) (SortOrder, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sortNewestFirst, nil
	}
	order := SortOrder{}
	if strings.HasPrefix(s, "-") {
		order.Desc = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	switch f := SortField(s); f {
	case SortCreatedAt, SortUpdatedAt, SortPublishedAt, SortTitle, SortViewCount:
		order.Field = f
		return order, nil
	}
	return SortOrder{}, NewValidationError("sort", "sort must be one of createdAt, updatedAt, publishedAt, title, viewCount")
}

// normalizePage applies defaults and the upper bound to caller paging.
func normalizePage(page, limit, defaultLimit, maxLimit int) ListParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return ListParams{Page: page, Limit: limit}
}

func newPage[T any](items []T, total int64, params ListParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: params.Page, Limit: params.Limit}
}
