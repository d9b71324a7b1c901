package main

import (
	"github.com/sirupsen/logrus"

	"pos_commerce/config"
	"pos_commerce/internal/database"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
	initRedis()
}

// initColNames gán tên các collection master-data
func initColNames() {
	global.MongoDB_ColNames.CategoryDiscounts = "category_discounts"
	global.MongoDB_ColNames.StoreDiscounts = "store_discounts"
	global.MongoDB_ColNames.ItemBooks = "item_books"
	global.MongoDB_ColNames.ItemCommons = "item_common"
	global.MongoDB_ColNames.ItemStores = "item_store"

	logger.GetAppLogger().Info("Initialized collection names")
}

// initValidator đăng ký validator cùng các rule riêng (discount_value, button_size, no_xss)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().Info("Initialized server config")
}

func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
}

// initRedis kết nối Redis nếu có cấu hình; lỗi kết nối chỉ làm mất bộ đếm item_book_id
func initRedis() {
	client, err := database.GetRedisClient(global.MongoDB_ServerConfig)
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("Không kết nối được Redis, sinh item_book_id bằng Mongo")
		return
	}
	global.Redis_Client = client
}
