// Package gmailmodels chứa các model mirror dữ liệu Gmail native
// (sync qua Gmail API push notification).
package gmailmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// GmailCustomer đại diện cho một địa chỉ email đã trao đổi thư với kênh Gmail
type GmailCustomer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của customer
	Email         string             `json:"email" bson:"email"`                               // Địa chỉ email của khách
	FirstName     string             `json:"firstName,omitempty" bson:"firstName,omitempty"`   // Tên
	LastName      string             `json:"lastName,omitempty" bson:"lastName,omitempty"`     // Họ
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID customer phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// GmailConversation đại diện cho một thread thư giữa khách và kênh Gmail
type GmailConversation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của conversation
	To            string             `json:"to" bson:"to"`                                     // Địa chỉ nhận
	From          string             `json:"from" bson:"from"`                                 // Địa chỉ gửi
	ThreadId      string             `json:"threadId,omitempty" bson:"threadId,omitempty"`     // Thread ID phía Gmail
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`       // Subject của thư gần nhất
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID conversation phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// GmailConversationMessage đại diện cho một bức thư trong thread
type GmailConversationMessage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của message
	MessageId      string             `json:"messageId" bson:"messageId"`                       // Message ID phía Gmail
	ThreadId       string             `json:"threadId,omitempty" bson:"threadId,omitempty"`     // Thread ID phía Gmail
	ConversationId primitive.ObjectID `json:"conversationId" bson:"conversationId"`             // Tham chiếu GmailConversation._id
	Subject        string             `json:"subject,omitempty" bson:"subject,omitempty"`       // Tiêu đề thư
	Body           string             `json:"body,omitempty" bson:"body,omitempty"`             // Nội dung thư
	To             string             `json:"to,omitempty" bson:"to,omitempty"`                 // Danh sách địa chỉ nhận
	Cc             string             `json:"cc,omitempty" bson:"cc,omitempty"`                 // Danh sách địa chỉ cc
	From           string             `json:"from,omitempty" bson:"from,omitempty"`             // Địa chỉ gửi
	CustomerId     string             `json:"customerId,omitempty" bson:"customerId,omitempty"` // Tham chiếu GmailCustomer
	CreatedAt      int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt      int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}
