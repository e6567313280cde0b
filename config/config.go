package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm thông tin cơ sở dữ liệu, credentials OAuth của các provider
// và secret dùng để xác thực webhook.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":3400"`                // Địa chỉ server
	DomainURL             string `env:"DOMAIN" envDefault:"http://localhost:3400"` // URL gốc của service (dùng cho redirect_uri)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu

	// Nylas (hosted auth) - NylasClientSecret đồng thời là khóa ký webhook
	NylasClientID     string `env:"NYLAS_CLIENT_ID"`     // Client ID của Nylas
	NylasClientSecret string `env:"NYLAS_CLIENT_SECRET"` // Client Secret của Nylas (HMAC key cho webhook)

	// OAuth credentials theo từng provider
	GoogleClientID        string `env:"GOOGLE_CLIENT_ID"`        // Client ID của Google
	GoogleClientSecret    string `env:"GOOGLE_CLIENT_SECRET"`    // Client Secret của Google
	MicrosoftClientID     string `env:"MICROSOFT_CLIENT_ID"`     // Client ID của Microsoft
	MicrosoftClientSecret string `env:"MICROSOFT_CLIENT_SECRET"` // Client Secret của Microsoft
	FacebookAppID         string `env:"FACEBOOK_APP_ID"`         // App ID của Facebook
	FacebookAppSecret     string `env:"FACEBOOK_APP_SECRET"`     // App Secret của Facebook

	// CORS
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials

	// Rate limiting
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`      // Số request tối đa trong window (0 = disable)
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Thời gian window (giây)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Bật/tắt rate limiting
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	envName := os.Getenv("GO_ENV")
	if envName == "" {
		envName = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", envName))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp.
// Không truyền file nào thì tự tìm config/env/<GO_ENV>.env.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}
	for _, file := range files {
		// File env là optional: khi deploy bằng biến môi trường thuần thì không có file
		if err := godotenv.Load(file); err != nil {
			fmt.Printf("Không thể load file env tại %s: %v\n", file, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
