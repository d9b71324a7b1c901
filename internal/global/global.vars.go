package global

import (
	"pos_commerce/config"
	"pos_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_MasterData_CollectionName chứa tên các collection master-data
type MongoDB_MasterData_CollectionName struct {
	CategoryDiscounts string // Giảm giá theo category
	StoreDiscounts    string // Giảm giá theo cửa hàng (discount_value)
	ItemBooks         string // Item book (category → tab → button)
	ItemCommons       string // Thông tin item dùng chung cho tenant
	ItemStores        string // Giá riêng theo cửa hàng
}

// Các biến toàn cục
var Validate *validator.Validate                       // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                      // Phiên kết nối tới MongoDB
var Redis_Client *redis.Client                         // Client Redis, nil khi không cấu hình
var MongoDB_ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_MasterData_CollectionName // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
