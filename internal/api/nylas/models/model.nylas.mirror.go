// Package nylasmodels chứa các model mirror dữ liệu email sync qua Nylas
package nylasmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// EmailParticipant là một người tham gia thư (tên hiển thị + địa chỉ email)
type EmailParticipant struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"` // Tên hiển thị
	Email string `json:"email" bson:"email"`                   // Địa chỉ email
}

// NylasGmailCustomer đại diện cho một địa chỉ email đã trao đổi thư với kênh
type NylasGmailCustomer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của customer
	Email         string             `json:"email" bson:"email"`                               // Địa chỉ email của khách
	FirstName     string             `json:"firstName,omitempty" bson:"firstName,omitempty"`   // Tên
	LastName      string             `json:"lastName,omitempty" bson:"lastName,omitempty"`     // Họ
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID customer phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// NylasGmailConversation đại diện cho một thread thư giữa khách và kênh
type NylasGmailConversation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của conversation
	To            string             `json:"to" bson:"to"`                                     // Địa chỉ nhận
	From          string             `json:"from" bson:"from"`                                 // Địa chỉ gửi
	ThreadId      string             `json:"threadId,omitempty" bson:"threadId,omitempty"`     // Thread ID phía Nylas
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`       // Subject của thư gần nhất
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID conversation phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// NylasGmailConversationMessage đại diện cho một bức thư trong thread.
// ErxesApiMessageId liên kết bức thư với message phía CRM để phục vụ
// các thao tác đọc lại nội dung thư từ CRM.
type NylasGmailConversationMessage struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`                                        // ID của message
	AccountId         string             `json:"accountId" bson:"accountId"`                                     // Account ID phía Nylas
	MessageId         string             `json:"messageId" bson:"messageId"`                                     // Message ID phía Nylas
	ThreadId          string             `json:"threadId,omitempty" bson:"threadId,omitempty"`                   // Thread ID phía Nylas
	ConversationId    primitive.ObjectID `json:"conversationId" bson:"conversationId"`                           // Tham chiếu NylasGmailConversation._id
	Subject           string             `json:"subject,omitempty" bson:"subject,omitempty"`                     // Tiêu đề thư
	Body              string             `json:"body,omitempty" bson:"body,omitempty"`                           // Nội dung thư (HTML)
	From              []EmailParticipant `json:"from,omitempty" bson:"from,omitempty"`                           // Người gửi
	To                []EmailParticipant `json:"to,omitempty" bson:"to,omitempty"`                               // Người nhận
	Cc                []EmailParticipant `json:"cc,omitempty" bson:"cc,omitempty"`                               // Cc
	Bcc               []EmailParticipant `json:"bcc,omitempty" bson:"bcc,omitempty"`                             // Bcc
	ErxesApiMessageId string             `json:"erxesApiMessageId,omitempty" bson:"erxesApiMessageId,omitempty"` // ID message phía CRM
	CustomerId        string             `json:"customerId,omitempty" bson:"customerId,omitempty"`               // Tham chiếu NylasGmailCustomer
	CreatedAt         int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`                 // Thời gian tạo (UnixMilli)
	UpdatedAt         int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`                 // Thời gian cập nhật (UnixMilli)
}
