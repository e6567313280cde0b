package global

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/go-playground/validator/v10"

	"github.com/gopait/erxes-integrations/config"
	"github.com/gopait/erxes-integrations/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB.
// Mỗi provider family có một namespace mirror riêng (customers, conversations,
// conversation_messages); Facebook có thêm posts và comments theo page id.
type MongoDB_CollectionName struct {
	Accounts     string // Tên collection cho account (mailbox/page đã kết nối)
	Integrations string // Tên collection cho integration (liên kết erxesApiId - account)

	// Facebook mirror
	FbCustomers     string // Tên collection cho khách hàng từ Facebook
	FbConversations string // Tên collection cho cuộc hội thoại Facebook
	FbMessages      string // Tên collection cho tin nhắn hội thoại Facebook
	FbPosts         string // Tên collection cho bài viết Facebook (theo page id)
	FbComments      string // Tên collection cho bình luận Facebook (theo page id)

	// Gmail (native push) mirror
	GmailCustomers     string // Tên collection cho khách hàng Gmail
	GmailConversations string // Tên collection cho cuộc hội thoại Gmail
	GmailMessages      string // Tên collection cho tin nhắn hội thoại Gmail

	// Nylas (hosted auth) mirror
	NylasGmailCustomers     string // Tên collection cho khách hàng Nylas Gmail
	NylasGmailConversations string // Tên collection cho cuộc hội thoại Nylas Gmail
	NylasGmailMessages      string // Tên collection cho tin nhắn hội thoại Nylas Gmail

	// CallPro mirror
	CallProCustomers     string // Tên collection cho khách hàng CallPro
	CallProConversations string // Tên collection cho cuộc hội thoại CallPro
	CallProMessages      string // Tên collection cho tin nhắn hội thoại CallPro
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                       // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
