package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"github.com/gopait/erxes-integrations/internal/api/router"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// Cấu hình cơ bản
		AppName:       "Erxes Integrations", // Tên ứng dụng hiển thị
		ServerHeader:  "Erxes Integrations", // Header server trong response
		StrictRouting: true,                 // /foo và /foo/ là khác nhau
		CaseSensitive: true,                 // /Foo và /foo là khác nhau
		UnescapePath:  true,                 // Tự động decode URL-encoded paths

		// Giới hạn body 10MB - đủ cho file đính kèm email
		BodyLimit: 10 * 1024 * 1024,

		// Timeout
		ReadTimeout:  15 * time.Second,  // Timeout đọc request
		WriteTimeout: 30 * time.Second,  // Timeout ghi response
		IdleTimeout:  120 * time.Second, // Timeout cho idle connections

		// Error handling thống nhất cho lỗi Fiber (route không tồn tại, body quá lớn, ...)
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.ErrCodeAuth.Code
				case fiber.StatusNotFound:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			logger.WithRequest(c).WithFields(map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"message":   message,
			}).Error("Request error")

			return c.Status(code).JSON(fiber.Map{
				"code":    errorCode,
				"message": message,
				"status":  "error",
			})
		},
	})

	// Request ID Middleware - tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// CORS Middleware - đặt trước các middleware khác để xử lý preflight
	corsOrigins := global.ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Nylas-Signature"},
		AllowCredentials: global.ServerConfig.CORS_AllowCredentials,
	}))

	// Rate limiting - webhook của provider không bị giới hạn
	if global.ServerConfig.RateLimit_Enabled && global.ServerConfig.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        global.ServerConfig.RateLimit_Max,
			Expiration: time.Duration(global.ServerConfig.RateLimit_Window) * time.Second,
			Next: func(c fiber.Ctx) bool {
				return strings.HasSuffix(c.Path(), "/webhook")
			},
		}))
	}

	// Recover Middleware - bắt panic để server không chết
	app.Use(recover.New())

	// Đăng ký routes
	if err := router.SetupRoutes(app); err != nil {
		logger.GetAppLogger().Fatalf("Failed to setup routes: %v", err)
	}

	return app
}
