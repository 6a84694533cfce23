package util

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page, size int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"空结果集", 0, 1, 20, 0, false, false},
		{"不足一页", 5, 1, 20, 1, false, false},
		{"整除", 40, 1, 20, 2, true, false},
		{"余数向上取整", 41, 2, 20, 3, true, true},
		{"最后一页", 41, 3, 20, 3, false, true},
		{"越界页不是错误", 3, 5, 2, 2, false, true},
		{"size为1", 3, 2, 1, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Paginate(tt.total, tt.page, tt.size)
			if m.Total != tt.total || m.Page != tt.page || m.Size != tt.size {
				t.Fatalf("回显字段不一致: %+v", m)
			}
			if m.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", m.TotalPages, tt.totalPages)
			}
			if m.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", m.HasNext, tt.hasNext)
			}
			if m.HasPrevious != tt.hasPrev {
				t.Errorf("HasPrevious = %v, want %v", m.HasPrevious, tt.hasPrev)
			}
		})
	}
}

func TestPaginatePagePointers(t *testing.T) {
	m := Paginate(41, 2, 20)
	if m.NextPage == nil || *m.NextPage != 3 {
		t.Errorf("NextPage = %v, want 3", m.NextPage)
	}
	if m.PreviousPage == nil || *m.PreviousPage != 1 {
		t.Errorf("PreviousPage = %v, want 1", m.PreviousPage)
	}

	m = Paginate(5, 1, 20)
	if m.NextPage != nil {
		t.Errorf("NextPage = %v, want nil", *m.NextPage)
	}
	if m.PreviousPage != nil {
		t.Errorf("PreviousPage = %v, want nil", *m.PreviousPage)
	}
}

func TestPageMetaOffsetLimit(t *testing.T) {
	m := Paginate(100, 3, 20)
	if m.Offset() != 40 {
		t.Errorf("Offset = %d, want 40", m.Offset())
	}
	if m.Limit() != 20 {
		t.Errorf("Limit = %d, want 20", m.Limit())
	}

	m = Paginate(100, 1, 20)
	if m.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset())
	}
}
