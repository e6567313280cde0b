// Package callpromodels chứa các model mirror dữ liệu cuộc gọi CallPro
package callpromodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// CallProCustomer đại diện cho một số điện thoại đã gọi đến tổng đài
type CallProCustomer struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của customer
	PhoneNumber   string             `json:"phoneNumber" bson:"phoneNumber"`                   // Số điện thoại gọi đến
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID customer phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// CallProConversation đại diện cho một cuộc gọi giữa khách và tổng đài
type CallProConversation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của conversation
	CallId        string             `json:"callId" bson:"callId"`                             // Call ID phía CallPro
	CallerNumber  string             `json:"callerNumber" bson:"callerNumber"`                 // Số điện thoại gọi đến
	State         string             `json:"state,omitempty" bson:"state,omitempty"`           // Trạng thái cuộc gọi (answered, missed, ...)
	ErxesApiId    string             `json:"erxesApiId,omitempty" bson:"erxesApiId,omitempty"` // ID conversation phía CRM
	IntegrationId string             `json:"integrationId" bson:"integrationId"`               // ErxesApiId của integration sở hữu
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}

// CallProConversationMessage đại diện cho bản ghi chi tiết của một cuộc gọi
type CallProConversationMessage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`                          // ID của message
	ConversationId primitive.ObjectID `json:"conversationId" bson:"conversationId"`             // Tham chiếu CallProConversation._id
	Content        string             `json:"content,omitempty" bson:"content,omitempty"`       // Mô tả cuộc gọi
	RecordUrl      string             `json:"recordUrl,omitempty" bson:"recordUrl,omitempty"`   // URL file ghi âm
	CustomerId     string             `json:"customerId,omitempty" bson:"customerId,omitempty"` // Tham chiếu CallProCustomer
	CreatedAt      int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`   // Thời gian tạo (UnixMilli)
	UpdatedAt      int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`   // Thời gian cập nhật (UnixMilli)
}
