// Package models chứa các model liên quan đến tài khoản provider và integration
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ====================================
// TRẠNG THÁI INTEGRATION
// ====================================

const (
	IntegrationStatusPending = "pending" // Đã ghi nhận local, chưa xác nhận với CRM
	IntegrationStatusActive  = "active"  // Đã xác nhận với CRM, hoạt động bình thường
)

// Account đại diện cho một tài khoản provider đã được liên kết (OAuth hoặc IMAP).
// Một account có thể được nhiều integration tham chiếu qua AccountId.
type Account struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`                                   // ID của account
	Kind              string             `json:"kind" bson:"kind" validate:"required,provider_kind"`        // Loại provider (facebook, gmail, nylas-gmail, callpro, ...)
	Email             string             `json:"email,omitempty" bson:"email,omitempty"`                    // Email của tài khoản
	Name              string             `json:"name" bson:"name"`                                          // Tên hiển thị của tài khoản
	Host              string             `json:"host,omitempty" bson:"host,omitempty"`                      // IMAP host (chỉ dùng cho nylas-imap)
	Username          string             `json:"username,omitempty" bson:"username,omitempty"`              // Username đăng nhập (IMAP/Exchange)
	Password          string             `json:"-" bson:"password,omitempty"`                               // Password (IMAP/Exchange) - không trả về qua JSON
	Token             string             `json:"-" bson:"token,omitempty"`                                  // Access token của provider
	TokenSecret       string             `json:"-" bson:"tokenSecret,omitempty"`                            // Refresh token / token secret
	ExpireDate        string             `json:"expireDate,omitempty" bson:"expireDate,omitempty"`          // Thời điểm hết hạn của token
	Scope             string             `json:"scope,omitempty" bson:"scope,omitempty"`                    // OAuth scope đã cấp
	NylasToken        string             `json:"-" bson:"nylasToken,omitempty"`                             // Token Nylas (chỉ có khi account đã connect qua Nylas)
	NylasAccountId    string             `json:"nylasAccountId,omitempty" bson:"nylasAccountId,omitempty"`  // Account ID phía Nylas
	NylasBillingState string             `json:"nylasBillingState,omitempty" bson:"nylasBillingState,omitempty"` // Trạng thái billing phía Nylas (paid/cancelled)
	CreatedAt         int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`            // Thời gian tạo (UnixMilli)
	UpdatedAt         int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`            // Thời gian cập nhật (UnixMilli)
}

// Integration đại diện cho một kênh kết nối giữa CRM và một provider.
// ErxesApiId là ID phía CRM; AccountId tham chiếu đến Account bên trên.
type Integration struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`                                          // ID local của integration
	Kind                  string             `json:"kind" bson:"kind" validate:"required,provider_kind"`               // Loại provider
	ErxesApiId            string             `json:"erxesApiId" bson:"erxesApiId" validate:"required"`                 // ID của integration phía CRM
	AccountId             string             `json:"accountId,omitempty" bson:"accountId,omitempty"`                   // ID của Account đã liên kết (hex string)
	Status                string             `json:"status" bson:"status"`                                             // Trạng thái: pending / active
	Email                 string             `json:"email,omitempty" bson:"email,omitempty"`                           // Email của kênh (email providers)
	PhoneNumber           string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`               // Số điện thoại (callpro)
	RecordUrl             string             `json:"recordUrl,omitempty" bson:"recordUrl,omitempty"`                   // URL lấy file ghi âm (callpro)
	FacebookPageIds       []string           `json:"facebookPageIds,omitempty" bson:"facebookPageIds,omitempty"`       // Danh sách page IDs (facebook)
	FacebookPageTokensMap map[string]string  `json:"-" bson:"facebookPageTokensMap,omitempty"`                         // Map pageId -> page access token (facebook)
	GmailHistoryId        string             `json:"gmailHistoryId,omitempty" bson:"gmailHistoryId,omitempty"`         // History ID của lần sync Gmail gần nhất
	NylasToken            string             `json:"-" bson:"nylasToken,omitempty"`                                    // Token Nylas của kênh
	NylasAccountId        string             `json:"nylasAccountId,omitempty" bson:"nylasAccountId,omitempty"`         // Account ID phía Nylas
	NylasBillingState     string             `json:"nylasBillingState,omitempty" bson:"nylasBillingState,omitempty"`   // Trạng thái billing phía Nylas
	CreatedAt             int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`                   // Thời gian tạo (UnixMilli)
	UpdatedAt             int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`                   // Thời gian cập nhật (UnixMilli)
}
