package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	basemodels "pos_commerce/internal/api/base/models"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
)

// Response là envelope chung cho mọi response của API
type Response struct {
	Success   bool                           `json:"success"`
	Code      int                            `json:"code"`
	Message   string                         `json:"message"`
	Data      any                            `json:"data"`
	Metadata  *basemodels.PaginationMetadata `json:"metadata,omitempty"`
	Operation string                         `json:"operation"`
	ErrorCode string                         `json:"error_code,omitempty"`
	Details   any                            `json:"details,omitempty"`
}

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data any) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// Success trả về envelope thành công
func Success(c fiber.Ctx, statusCode int, operation string, data any) error {
	message := common.MsgSuccess
	switch statusCode {
	case common.StatusCreated:
		message = common.MsgCreated
	}
	return JSONResponse(c, statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		Data:      data,
		Operation: operation,
	})
}

// Paginated trả về envelope thành công kèm metadata phân trang
func Paginated[T any](c fiber.Ctx, operation string, result *basemodels.PaginateResult[T], sort string) error {
	return JSONResponse(c, common.StatusOK, Response{
		Success:   true,
		Code:      common.StatusOK,
		Message:   common.MsgSuccess,
		Data:      result.Items,
		Metadata:  basemodels.NewPaginationMetadata(result, sort),
		Operation: operation,
	})
}

// ErrorResponse trả về envelope lỗi. *common.Error giữ status của nó, lỗi khác là 500.
func ErrorResponse(c fiber.Ctx, operation string, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequestError(c).WithError(customErr).WithFields(map[string]any{
				"operation":  operation,
				"error_code": customErr.Code.Code,
			}).Error(customErr.Message)
		}
		return JSONResponse(c, customErr.StatusCode, Response{
			Success:   false,
			Code:      customErr.StatusCode,
			Message:   customErr.Message,
			Data:      nil,
			Operation: operation,
			ErrorCode: customErr.Code.Code,
			Details:   errorDetails(customErr.Details),
		})
	}

	logger.WithRequestError(c).WithError(err).WithField("operation", operation).Error("Lỗi không xác định khi xử lý request")
	return JSONResponse(c, common.StatusInternalServerError, Response{
		Success:   false,
		Code:      common.StatusInternalServerError,
		Message:   common.MsgInternalError,
		Data:      nil,
		Operation: operation,
		ErrorCode: common.ErrCodeInternalServer.Code,
	})
}

// errorDetails chuyển error trong Details thành chuỗi để JSON hóa được
func errorDetails(details any) any {
	if err, ok := details.(error); ok {
		return err.Error()
	}
	return details
}

// SafeHandler bọc handler với recover để server luôn trả về response, kể cả khi panic
func SafeHandler(c fiber.Ctx, operation string, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("panic trong handler %s: %v", operation, r)
			err = ErrorResponse(c, operation, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	if err := handler(); err != nil {
		return ErrorResponse(c, operation, err)
	}
	return nil
}
