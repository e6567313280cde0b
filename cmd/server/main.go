package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopait/erxes-integrations/internal/database"
	"github.com/gopait/erxes-integrations/internal/global"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình (level, format, output)
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	// Đóng kết nối MongoDB khi server dừng
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Failed to shutdown fiber app")
		}
		if global.MongoDB_Session != nil {
			if err := database.CloseInstance(global.MongoDB_Session); err != nil {
				log.WithError(err).Error("Failed to close mongodb connection")
			}
		}
	}()

	log.Infof("Starting Fiber server on %s...", cfg.Address)
	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func main() {
	initLogger() // Khởi tạo logger trước để các bước sau log được
	InitGlobal() // Khởi tạo các biến toàn cục (config, validator, database)
	InitRegistry()
	main_thread()
}
