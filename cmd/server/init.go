package main

import (
	"github.com/sirupsen/logrus"

	"github.com/gopait/erxes-integrations/config"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	"github.com/gopait/erxes-integrations/internal/database"
	"github.com/gopait/erxes-integrations/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initNylasClient()      // Khởi tạo Nylas SDK
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Accounts = "accounts"
	global.MongoDB_ColNames.Integrations = "integrations"

	// Facebook mirror
	global.MongoDB_ColNames.FbCustomers = "fb_customers"
	global.MongoDB_ColNames.FbConversations = "fb_conversations"
	global.MongoDB_ColNames.FbMessages = "fb_conversation_messages"
	global.MongoDB_ColNames.FbPosts = "fb_posts"
	global.MongoDB_ColNames.FbComments = "fb_comments"

	// Gmail (native push) mirror
	global.MongoDB_ColNames.GmailCustomers = "gmail_customers"
	global.MongoDB_ColNames.GmailConversations = "gmail_conversations"
	global.MongoDB_ColNames.GmailMessages = "gmail_conversation_messages"

	// Nylas (hosted auth) mirror
	global.MongoDB_ColNames.NylasGmailCustomers = "nylas_gmail_customers"
	global.MongoDB_ColNames.NylasGmailConversations = "nylas_gmail_conversations"
	global.MongoDB_ColNames.NylasGmailMessages = "nylas_gmail_conversation_messages"

	// CallPro mirror
	global.MongoDB_ColNames.CallProCustomers = "callpro_customers"
	global.MongoDB_ColNames.CallProConversations = "callpro_conversations"
	global.MongoDB_ColNames.CallProMessages = "callpro_conversation_messages"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: provider_kind, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg := config.NewConfig()
	if cfg == nil {
		logrus.Fatal("Failed to load configuration")
	}
	global.ServerConfig = cfg
	logrus.Info("Initialized server configuration")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client
	logrus.Info("Initialized MongoDB connection")
}

// Hàm khởi tạo Nylas SDK. Thiếu credentials không chặn boot - các endpoint
// cần Nylas sẽ trả về lỗi chưa-cấu-hình khi được gọi.
func initNylasClient() {
	cfg := global.ServerConfig
	if cfg.NylasClientID == "" || cfg.NylasClientSecret == "" {
		logrus.Warn("NYLAS_CLIENT_ID / NYLAS_CLIENT_SECRET chưa được cấu hình, các kênh Nylas sẽ không hoạt động")
		return
	}
	if err := nylasclient.Setup(cfg.NylasClientID, cfg.NylasClientSecret); err != nil {
		logrus.Fatalf("Failed to setup nylas client: %v", err)
	}
	logrus.Info("Initialized Nylas client")
}
