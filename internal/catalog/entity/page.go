// Package entity 定义对外接口的请求与响应类型
package entity

// Page 分页响应信封
type Page[T any] struct {
	Items     []T   `json:"items"`
	ItemCount int64 `json:"item_count"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
}

const (
	// DefaultLimit 默认分页大小
	DefaultLimit = 10
	// MaxLimit 最大分页大小
	MaxLimit = 100
)

// normalizePage 规范化分页参数
// page 最小为 1，limit 限制在 [1, MaxLimit]，0 值取默认
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
