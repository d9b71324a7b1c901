package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PaginationMetadata là metadata phân trang trả về trong envelope
type PaginationMetadata struct {
	Page        int64  `json:"page"`
	Limit       int64  `json:"limit"`
	TotalCount  int64  `json:"total_count"`
	TotalPages  int64  `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
	Sort        string `json:"sort,omitempty"`
}

// NewPaginationMetadata dựng metadata từ kết quả phân trang
func NewPaginationMetadata[T any](result *PaginateResult[T], sort string) *PaginationMetadata {
	return &PaginationMetadata{
		Page:        result.Page,
		Limit:       result.Limit,
		TotalCount:  result.Total,
		TotalPages:  result.TotalPage,
		HasNext:     result.Page < result.TotalPage,
		HasPrevious: result.Page > 1,
		Sort:        sort,
	}
}

// SortField là một tiêu chí sắp xếp: Direction = 1 (tăng) hoặc -1 (giảm)
type SortField struct {
	Field     string
	Direction int
}

// ParseSort parse chuỗi "field1:1,field2:-1". Chuỗi rỗng trả về nil.
// Thiếu hướng thì mặc định tăng dần.
func ParseSort(raw string) ([]SortField, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var fields []SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, dir, hasDir := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "$") {
			return nil, fmt.Errorf("invalid sort field %q", part)
		}
		direction := 1
		if hasDir {
			n, err := strconv.Atoi(strings.TrimSpace(dir))
			if err != nil || (n != 1 && n != -1) {
				return nil, fmt.Errorf("invalid sort direction in %q: must be 1 or -1", part)
			}
			direction = n
		}
		fields = append(fields, SortField{Field: name, Direction: direction})
	}
	return fields, nil
}

// FormatSort chuyển ngược []SortField về dạng chuỗi
func FormatSort(fields []SortField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s:%d", f.Field, f.Direction))
	}
	return strings.Join(parts, ",")
}
