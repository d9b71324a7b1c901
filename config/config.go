package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                         // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`                   // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Master string `env:"MONGODB_DBNAME_MASTER" envDefault:"db_master_data"` // Tên cơ sở dữ liệu master-data
	Redis_Address         string `env:"REDIS_ADDRESS"`                                     // Địa chỉ Redis (tùy chọn, dùng cho bộ đếm item_book_id)
	Redis_Password        string `env:"REDIS_PASSWORD"`                                    // Mật khẩu Redis
	Redis_DB              int    `env:"REDIS_DB" envDefault:"0"`                           // Số DB Redis
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                       // Các origins được phép (phân cách bởi dấu phẩy)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`         // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`                   // Số request tối đa trong window
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`                 // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`              // Bật/tắt rate limiting

	// Xác thực tenant
	Auth_Enabled bool   `env:"AUTH_ENABLED" envDefault:"true"` // Tắt khi chạy local
	JwtSecret    string `env:"JWT_SECRET"`                     // Bí mật ký JWT (HS256)
	ApiKeys      string `env:"API_KEYS"`                       // Danh sách "tenant:key" phân cách bởi dấu phẩy

	// Phía cart gọi sang master-data
	MasterData_BaseURL string `env:"MASTER_DATA_BASE_URL" envDefault:"http://localhost:8080"` // URL gốc của master-data
	MasterData_ApiKey  string `env:"MASTER_DATA_API_KEY"`                                     // API key mặc định khi request không mang theo
	HttpClient_Timeout int    `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10"`                     // Timeout gọi HTTP (giây)

	// Phân trang
	Pagination_DefaultLimit int64 `env:"PAGINATION_DEFAULT_LIMIT" envDefault:"100"` // Số bản ghi mặc định mỗi trang
	Pagination_MaxLimit     int64 `env:"PAGINATION_MAX_LIMIT" envDefault:"1000"`    // Giới hạn tối đa mỗi trang
}

// ParseApiKeys trả về map key → tenant từ chuỗi cấu hình API_KEYS
func (c *Configuration) ParseApiKeys() map[string]string {
	keys := make(map[string]string)
	for _, pair := range strings.Split(c.ApiKeys, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tenant, key, ok := strings.Cut(pair, ":")
		if !ok || tenant == "" || key == "" {
			continue
		}
		keys[strings.TrimSpace(key)] = strings.TrimSpace(tenant)
	}
	return keys
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env từ thư mục hiện tại đi lên
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Biến môi trường của tiến trình vẫn được dùng khi không có file
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Auth_Enabled && cfg.JwtSecret == "" && cfg.ApiKeys == "" {
		return nil, fmt.Errorf("AUTH_ENABLED yêu cầu JWT_SECRET hoặc API_KEYS")
	}
	return &cfg, nil
}
