// Package dto chứa các cấu trúc request/response cho domain Nylas
package dto

// ====================================
// WEBHOOK
// ====================================

// WebhookObjectData là thông tin object trong một delta
type WebhookObjectData struct {
	AccountId string `json:"account_id"` // Account ID phía Nylas
	Id        string `json:"id"`         // Object ID (message ID với message.created)
	Object    string `json:"object"`     // Loại object (message, thread, ...)
}

// WebhookDelta là một thay đổi trong webhook payload của Nylas
type WebhookDelta struct {
	Date       int64             `json:"date"`        // Thời điểm thay đổi (Unix giây)
	Object     string            `json:"object"`      // Loại object
	Type       string            `json:"type"`        // Loại event (message.created, ...)
	ObjectData WebhookObjectData `json:"object_data"` // Thông tin object
}

// WebhookRequest là body POST webhook từ Nylas
type WebhookRequest struct {
	Deltas []WebhookDelta `json:"deltas"` // Danh sách thay đổi, xử lý theo thứ tự
}

// ====================================
// INTEGRATION
// ====================================

// CreateIntegrationRequest là body tạo kênh email qua Nylas.
// Email của kênh lấy từ account đã liên kết.
type CreateIntegrationRequest struct {
	Kind          string `json:"kind" validate:"required,provider_kind"` // Loại provider (gmail, nylas-gmail, ...)
	IntegrationId string `json:"integrationId" validate:"required"`      // ID integration phía CRM (erxesApiId)
	AccountId     string `json:"accountId" validate:"required"`          // ID account đã liên kết
}

// ====================================
// MESSAGES
// ====================================

// SendMessageRequest là body gửi thư qua kênh Nylas.
// Data là chuỗi JSON do CRM đóng gói sẵn, parse thành SendMessageParams.
type SendMessageRequest struct {
	ErxesApiId string `json:"erxesApiId" validate:"required"` // ID integration phía CRM
	Data       string `json:"data" validate:"required"`       // Nội dung thư (chuỗi JSON)
}

// SendMessageParams là nội dung thư nằm trong trường data
type SendMessageParams struct {
	To               string   `json:"to"`                         // Người nhận (nhiều địa chỉ phân cách dấu phẩy)
	Cc               string   `json:"cc,omitempty"`               // Cc
	Bcc              string   `json:"bcc,omitempty"`              // Bcc
	Subject          string   `json:"subject"`                    // Tiêu đề
	Body             string   `json:"body"`                       // Nội dung (HTML)
	ReplyToMessageId string   `json:"replyToMessageId,omitempty"` // Message ID phía Nylas đang trả lời
	Attachments      []string `json:"attachments,omitempty"`      // File ID đính kèm đã upload
}

// UploadRequest là body upload file đính kèm: file đã được CRM ghi sẵn
// xuống đĩa, service chỉ đọc theo path và đẩy lên Nylas
type UploadRequest struct {
	Name       string `json:"name" validate:"required"`       // Tên file hiển thị
	Path       string `json:"path" validate:"required"`       // Đường dẫn file trên đĩa
	Type       string `json:"type" validate:"required"`       // Content type của file
	ErxesApiId string `json:"erxesApiId" validate:"required"` // ID integration phía CRM
}
