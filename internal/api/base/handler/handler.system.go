package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"pos_commerce/internal/common"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	mongo *mongo.Client
	redis *redis.Client
}

// NewSystemHandler tạo SystemHandler. redisClient có thể nil khi không cấu hình Redis.
func NewSystemHandler(mongoClient *mongo.Client, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{mongo: mongoClient, redis: redisClient}
}

// HandleHealth kiểm tra tình trạng MongoDB và Redis
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}
	healthy := true

	switch {
	case h.mongo == nil:
		services["database"] = "not_initialized"
		healthy = false
	default:
		if err := h.mongo.Ping(ctx, nil); err != nil {
			services["database"] = "error"
			healthData["database_error"] = err.Error()
			healthy = false
		} else {
			services["database"] = "ok"
		}
	}

	// Redis là tùy chọn, lỗi Redis chỉ làm hệ thống degraded
	switch {
	case h.redis == nil:
		services["redis"] = "disabled"
	default:
		if err := h.redis.Ping(ctx).Err(); err != nil {
			services["redis"] = "error"
			healthData["redis_error"] = err.Error()
			healthData["status"] = "degraded"
		} else {
			services["redis"] = "ok"
		}
	}

	if !healthy {
		healthData["status"] = "unhealthy"
		return JSONResponse(c, common.StatusServiceUnavailable, Response{
			Success:   false,
			Code:      common.StatusServiceUnavailable,
			Message:   "Hệ thống đang gặp sự cố",
			Data:      healthData,
			Operation: "health",
		})
	}
	return Success(c, common.StatusOK, "health", healthData)
}
