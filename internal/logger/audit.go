package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một thay đổi trên master data
type AuditAction struct {
	Action       string         `json:"action"`        // ví dụ: "item_book_add_button"
	TenantID     string         `json:"tenant_id"`     // Tenant thực hiện
	ResourceType string         `json:"resource_type"` // ví dụ: "item_book", "store_discount"
	ResourceID   string         `json:"resource_id"`   // Khóa tự nhiên của tài nguyên
	Details      map[string]any `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time      `json:"timestamp"`
}

// LogAction ghi một hành động audit
func LogAction(ctx context.Context, action, tenantID, resourceType, resourceID string, details map[string]any) {
	audit := AuditAction{
		Action:       action,
		TenantID:     tenantID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Timestamp:    time.Now(),
	}

	fields := logrus.Fields{
		"action":        audit.Action,
		"tenant_id":     audit.TenantID,
		"resource_type": audit.ResourceType,
		"resource_id":   audit.ResourceID,
		"timestamp":     audit.Timestamp,
	}
	if ctx != nil {
		if requestID := ctx.Value(RequestIDKey); requestID != nil {
			fields["request_id"] = requestID
		}
	}
	if len(audit.Details) > 0 {
		fields["details"] = audit.Details
	}

	GetAuditLogger().WithFields(fields).Info("Audit action")
}
