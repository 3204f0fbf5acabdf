// Package pagination converts page based requests into offset/limit queries.
package pagination

// Params is a requested page. A PageSize of 0 asks for every item on a single page.
type Params struct {
	Page     int
	PageSize int
}

func (p Params) CalculateOffsetLimit() (offset, limit int) {
	if p.PageSize == 0 {
		return 0, 0
	}

	page := max(p.Page, 1)
	return (page - 1) * p.PageSize, p.PageSize
}

// BuildMeta describes the page within totalItems results
func (p Params) BuildMeta(totalItems int) Meta {
	totalPages := 1
	if p.PageSize > 0 {
		totalPages = (totalItems + p.PageSize - 1) / p.PageSize
	}

	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
