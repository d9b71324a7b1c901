package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "pos_commerce/internal/api/base/handler"
	"pos_commerce/internal/common"
	"pos_commerce/internal/logger"
)

// HandleErrorResponse trả về envelope lỗi cho client từ middleware
func HandleErrorResponse(c fiber.Ctx, err error) error {
	return basehdl.ErrorResponse(c, "", err)
}

// ErrorHandler là fiber.Config.ErrorHandler: chuyển *fiber.Error (404 route, 429 limiter...) về envelope
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return basehdl.JSONResponse(c, fe.Code, basehdl.Response{
			Success:   false,
			Code:      fe.Code,
			Message:   fe.Message,
			ErrorCode: fiberErrorCode(fe.Code),
		})
	}
	logger.WithRequest(c).WithError(err).Warn("Lỗi trả về từ handler")
	return HandleErrorResponse(c, err)
}

func fiberErrorCode(status int) string {
	switch status {
	case common.StatusNotFound:
		return common.ErrCodeNotFound.Code
	case common.StatusTooManyRequests:
		return "RATE_001"
	case common.StatusBadRequest:
		return common.ErrCodeValidationFormat.Code
	}
	return common.ErrCodeInternalServer.Code
}
