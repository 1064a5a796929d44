package catalog

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	// offset+limit must stay representable for any page number.
	if page-1 > (math.MaxInt-size)/size {
		page = (math.MaxInt-size)/size + 1
	}
	offset = (page - 1) * size
	limit = size
	return offset, limit
}

func Page(products []Product, page, size int) ([]Product, PageMeta) {
	offset, limit := Calculate(page, size)
	if page < 1 {
		page = 1
	}
	total := int64(len(products))

	items := []Product{}
	if offset < len(products) {
		items = products[offset:min(offset+limit, len(products))]
	}
	hasNext := offset < len(products) && offset+limit < len(products)

	return items, PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    hasNext,
	}
}
