// Package fbmodels chứa các model mirror dữ liệu Facebook (customer, conversation,
// message, post, comment) đồng bộ về từ webhook.
package fbmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// FbCustomer đại diện cho một khách hàng Facebook đã nhắn tin / tương tác với page
type FbCustomer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                        // ID của customer
	UserId        string             `json:"userId" bson:"userId"`                           // PSID của người dùng Facebook
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID customer phía CRM
	FirstName     string             `json:"firstName,omitempty" bson:"firstName,omitempty"` // Tên
	LastName      string             `json:"lastName,omitempty" bson:"lastName,omitempty"`   // Họ
	ProfilePic    string             `json:"profilePic,omitempty" bson:"profilePic,omitempty"` // Ảnh đại diện
	IntegrationId string             `json:"integrationId" bson:"integrationId"`             // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Thời gian cập nhật (UnixMilli)
}

// FbConversation đại diện cho một cuộc trò chuyện Messenger giữa customer và page
type FbConversation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                        // ID của conversation
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID conversation phía CRM
	Timestamp     int64              `json:"timestamp,omitempty" bson:"timestamp,omitempty"` // Thời điểm tin nhắn gần nhất
	SenderId      string             `json:"senderId" bson:"senderId"`                       // PSID của customer
	RecipientId   string             `json:"recipientId" bson:"recipientId"`                 // Page ID nhận tin
	IntegrationId string             `json:"integrationId" bson:"integrationId"`             // ErxesApiId của integration sở hữu
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`     // Nội dung tin nhắn gần nhất
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Thời gian cập nhật (UnixMilli)
}

// FbConversationMessage đại diện cho một tin nhắn trong cuộc trò chuyện Messenger
type FbConversationMessage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`                            // ID của message
	Mid            string             `json:"mid" bson:"mid"`                                     // Message ID phía Facebook
	ConversationId primitive.ObjectID `json:"conversationId" bson:"conversationId"`               // Tham chiếu FbConversation._id
	Content        string             `json:"content,omitempty" bson:"content,omitempty"`         // Nội dung tin nhắn
	Attachments    []string           `json:"attachments,omitempty" bson:"attachments,omitempty"` // Danh sách URL attachment
	CustomerId     string             `json:"customerId,omitempty" bson:"customerId,omitempty"`   // Tham chiếu FbCustomer
	CreatedAt      int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`     // Thời gian tạo (UnixMilli)
	UpdatedAt      int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`     // Thời gian cập nhật (UnixMilli)
}

// FbPost đại diện cho một bài viết trên page được mirror về
type FbPost struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của post
	PostId        string             `json:"postId" bson:"postId"`                             // Post ID phía Facebook
	RecipientId   string             `json:"recipientId" bson:"recipientId"`                   // Page ID sở hữu bài viết
	SenderId      string             `json:"senderId,omitempty" bson:"senderId,omitempty"`     // Người đăng bài
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`       // Nội dung bài viết
	Attachments   []string           `json:"attachments,omitempty" bson:"attachments,omitempty"` // Danh sách URL attachment
	Timestamp     int64              `json:"timestamp,omitempty" bson:"timestamp,omitempty"`   // Thời điểm đăng
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID conversation phía CRM
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// FbComment đại diện cho một bình luận trên bài viết của page
type FbComment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của comment
	CommentId   string             `json:"commentId" bson:"commentId"`                       // Comment ID phía Facebook
	PostId      string             `json:"postId" bson:"postId"`                             // Post ID chứa bình luận
	ParentId    string             `json:"parentId,omitempty" bson:"parentId,omitempty"`     // Comment cha (nếu là reply)
	RecipientId string             `json:"recipientId" bson:"recipientId"`                   // Page ID sở hữu bài viết
	SenderId    string             `json:"senderId,omitempty" bson:"senderId,omitempty"`     // Người bình luận
	Content     string             `json:"content,omitempty" bson:"content,omitempty"`       // Nội dung bình luận
	ErxesApiId  string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID phía CRM
	CreatedAt   int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt   int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}
