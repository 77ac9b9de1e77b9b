package profile

import (
	"datascope/domain/table"
)

// PageResult is one window of already-loaded rows.
type PageResult struct {
	Rows       []map[string]interface{} `json:"data"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	TotalRows  int                      `json:"total_rows"`
	TotalPages int                      `json:"total_pages"`
}

// Page slices rows [start, start+perPage) for a 1-based page number.
// Out-of-range pages clamp to the nearest valid page; a non-positive perPage
// falls back to the given default.
func Page(ds *table.Dataset, page, perPage, defaultPerPage int) PageResult {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	totalPages := (ds.RowCount + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > ds.RowCount {
		start = ds.RowCount
	}
	if end > ds.RowCount {
		end = ds.RowCount
	}

	rows := make([]map[string]interface{}, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, ds.Row(i))
	}

	return PageResult{
		Rows:       rows,
		Page:       page,
		PerPage:    perPage,
		TotalRows:  ds.RowCount,
		TotalPages: totalPages,
	}
}
