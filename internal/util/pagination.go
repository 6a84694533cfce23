package util

// PageMeta 分页元信息，字段命名与对外API保持一致
// swagger:model PageMeta
type PageMeta struct {
	Total        int64 `json:"total"`
	Page         int   `json:"page"`
	Size         int   `json:"size"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
}

// Paginate 根据总行数计算分页元信息。
// total_pages 向上取整，total 为 0 时取 0；
// 越界页不是错误：has_next 为 false，条目为空，total 仍反映真实行数。
func Paginate(total int64, page, size int) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	m := PageMeta{
		Total:       total,
		Page:        page,
		Size:        size,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}

	if m.HasNext {
		next := page + 1
		m.NextPage = &next
	}
	if m.HasPrevious {
		prev := page - 1
		m.PreviousPage = &prev
	}
	return m
}

// Offset 数据库查询偏移量
func (m PageMeta) Offset() int {
	return (m.Page - 1) * m.Size
}

// Limit 数据库查询行数上限
func (m PageMeta) Limit() int {
	return m.Size
}
