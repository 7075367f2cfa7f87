//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

const (
	// DefaultPageSize applies when a list request omits pageSize.
	DefaultPageSize = 10
	// MaxPageSize caps pageSize; clients loading full boards ask for large pages.
	MaxPageSize = 1000
)

// Page is the envelope every list endpoint returns. Pages is always at least
// 1, even for an empty result set.
type Page[T any] struct {
	Data     []T `json:"data"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

// NewPage assembles a page envelope. Data is normalized to an empty slice so
// the JSON field is [] rather than null, and Pages is computed from Total.
func NewPage[T any](data []T, page, pageSize, total int) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:     data,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    TotalPages(total, pageSize),
	}
}

// TotalPages computes ceil(total/pageSize) with a floor of 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// NormalizePaging clamps page and pageSize to usable values: page defaults to
// 1, pageSize to DefaultPageSize, capped at MaxPageSize. A page past the end
// of the data is allowed; it yields an empty Data with correct totals.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
