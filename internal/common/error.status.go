package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusForbidden       = 403 // Không có quyền truy cập
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	StatusInternalServerError = 500 // Lỗi server
	StatusBadGateway          = 502 // Dịch vụ phía sau trả lỗi
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess = "Thao tác thành công"
	MsgCreated = "Tạo mới thành công"
	MsgDeleted = "Xóa thành công"

	MsgBadRequest      = "Yêu cầu không hợp lệ"
	MsgUnauthorized    = "Vui lòng xác thực"
	MsgForbidden       = "Không có quyền truy cập tenant này"
	MsgNotFound        = "Không tìm thấy dữ liệu"
	MsgAlreadyExists   = "Dữ liệu đã tồn tại"
	MsgConflict        = "Dữ liệu đã bị thay đổi bởi yêu cầu khác"
	MsgInternalError   = "Lỗi hệ thống"
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgDatabaseError   = "Lỗi tương tác với cơ sở dữ liệu"
	MsgUpstreamError   = "Lỗi khi gọi dịch vụ master-data"

	MsgTokenMissing = "Thiếu token xác thực"
	MsgTokenInvalid = "Token không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi
	SubCategory string // Phân loại con
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Lỗi hệ thống nội bộ"}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken  = ErrorCode{Code: "AUTH_001", Category: "Authentication", SubCategory: "Token", Description: "Lỗi liên quan đến token hoặc API key"}
	ErrCodeAuthTenant = ErrorCode{Code: "AUTH_003", Category: "Authentication", SubCategory: "Tenant", Description: "Tenant trong thông tin xác thực không khớp với đường dẫn"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Lỗi định dạng dữ liệu"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Lỗi truy vấn dữ liệu"}

	// Resource Errors (RES_xxx)
	ErrCodeNotFound      = ErrorCode{Code: "RES_001", Category: "Resource", SubCategory: "NotFound", Description: "Không tìm thấy tài nguyên"}
	ErrCodeAlreadyExists = ErrorCode{Code: "RES_002", Category: "Resource", SubCategory: "AlreadyExists", Description: "Khóa tự nhiên đã tồn tại"}
	ErrCodeConflict      = ErrorCode{Code: "RES_003", Category: "Resource", SubCategory: "Version", Description: "Phiên bản tài liệu không khớp"}

	// Upstream Errors (EXT_xxx)
	ErrCodeUpstream = ErrorCode{Code: "EXT_001", Category: "External", SubCategory: "MasterData", Description: "Lỗi khi gọi dịch vụ bên ngoài"}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "Business", SubCategory: "Operation", Description: "Lỗi thao tác nghiệp vụ"}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so khớp theo mã lỗi, cho phép errors.Is(err, common.ErrNotFound) với message tùy biến
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// Unwrap trả về lỗi gốc nếu Details là một error
func (e *Error) Unwrap() error {
	if cause, ok := e.Details.(error); ok {
		return cause
	}
	return nil
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	ErrTokenMissing  = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid  = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTenantDenied  = NewError(ErrCodeAuthTenant, MsgForbidden, StatusForbidden, nil)
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu thông tin bắt buộc", StatusBadRequest, nil)

	ErrNotFound      = NewError(ErrCodeNotFound, MsgNotFound, StatusNotFound, nil)
	ErrAlreadyExists = NewError(ErrCodeAlreadyExists, MsgAlreadyExists, StatusConflict, nil)
	ErrConflict      = NewError(ErrCodeConflict, MsgConflict, StatusConflict, nil)
	ErrRepository    = NewError(ErrCodeDatabaseQuery, MsgDatabaseError, StatusInternalServerError, nil)
	ErrUpstream      = NewError(ErrCodeUpstream, MsgUpstreamError, StatusBadGateway, nil)
)

// NotFoundf tạo lỗi NotFound với message mô tả cấp bị thiếu
func NotFoundf(format string, args ...any) error {
	return NewError(ErrCodeNotFound, fmt.Sprintf(format, args...), StatusNotFound, nil)
}

// AlreadyExistsf tạo lỗi AlreadyExists cho khóa tự nhiên bị trùng
func AlreadyExistsf(format string, args ...any) error {
	return NewError(ErrCodeAlreadyExists, fmt.Sprintf(format, args...), StatusConflict, nil)
}

// InvalidRequestf tạo lỗi InvalidRequestData
func InvalidRequestf(format string, args ...any) error {
	return NewError(ErrCodeValidationInput, fmt.Sprintf(format, args...), StatusBadRequest, nil)
}

// Conflictf tạo lỗi khi version của tài liệu đã thay đổi
func Conflictf(format string, args ...any) error {
	return NewError(ErrCodeConflict, fmt.Sprintf(format, args...), StatusConflict, nil)
}

// RepositoryError bọc lỗi tầng lưu trữ hoặc dịch vụ phía sau
func RepositoryError(message string, cause error) error {
	return NewError(ErrCodeDatabaseQuery, message, StatusInternalServerError, cause)
}

// UpstreamError bọc lỗi khi gọi dịch vụ master-data
func UpstreamError(message string, cause error) error {
	return NewError(ErrCodeUpstream, message, StatusBadGateway, cause)
}

// MongoDB Error Messages
const (
	MsgMongoNetwork   = "Lỗi mạng khi kết nối MongoDB"
	MsgMongoTimeout   = "Kết nối MongoDB bị timeout"
	MsgMongoDuplicate = "Dữ liệu trùng lặp trong MongoDB"
)

// MongoDB Specific Errors
var (
	ErrMongoNetwork = NewError(ErrCodeDatabaseConnection, MsgMongoNetwork, StatusServiceUnavailable, nil)
	ErrMongoTimeout = NewError(ErrCodeDatabaseConnection, MsgMongoTimeout, StatusServiceUnavailable, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được chuẩn hóa thì giữ nguyên
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeAlreadyExists, MsgMongoDuplicate, StatusConflict, err)
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return RepositoryError(MsgDatabaseError, err)
}
