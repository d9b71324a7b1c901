// Package models chứa các kiểu dùng chung cho layer repository/base (document gốc, kết quả phân trang, sort).
package models

import (
	"time"
)

// AbstractDocument chứa các trường chung của mọi document master-data
type AbstractDocument struct {
	TenantID  string    `json:"tenant_id" bson:"tenant_id"`
	ShardKey  string    `json:"-" bson:"shard_key"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	// Version tăng sau mỗi lần ghi, dùng cho optimistic concurrency
	Version int64 `json:"version" bson:"version"`
}

// Stampable được implement bởi mọi document nhúng AbstractDocument
type Stampable interface {
	StampCreate(tenantID string, now time.Time)
	StampReplace(prev *AbstractDocument, now time.Time)
	Base() *AbstractDocument
}

// StampCreate gán tenant, shard key và timestamps cho document mới
func (d *AbstractDocument) StampCreate(tenantID string, now time.Time) {
	d.TenantID = tenantID
	// shard key hiện chỉ gồm tenant_id
	d.ShardKey = tenantID
	d.CreatedAt = now
	d.UpdatedAt = now
	d.Version = 1
}

// StampReplace giữ lại thông tin gốc của prev và tăng version
func (d *AbstractDocument) StampReplace(prev *AbstractDocument, now time.Time) {
	d.TenantID = prev.TenantID
	d.ShardKey = prev.ShardKey
	d.CreatedAt = prev.CreatedAt
	d.UpdatedAt = now
	d.Version = prev.Version + 1
}

// Base trả về chính AbstractDocument
func (d *AbstractDocument) Base() *AbstractDocument {
	return d
}

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	// Trang hiện tại (bắt đầu từ 1)
	Page int64 `json:"page" bson:"page"`
	// Số lượng mục trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Số lượng mục trong trang hiện tại
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	// Danh sách các mục
	Items []T `json:"items" bson:"items"`
	// Tổng số mục khớp filter, tính trước skip/limit
	Total int64 `json:"total" bson:"total"`
	// Tổng số trang
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// TotalPages tính số trang, 0 khi không có dữ liệu
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
