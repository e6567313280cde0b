package gmailsvc

import (
	"context"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
)

// PushStopper là thao tác Gmail API mà bước thu hồi Gmail native cần
type PushStopper interface {
	StopPushNotification(ctx context.Context, accessToken, email string) error
}

// GmailRevokeService dừng push notification của mailbox trước khi xóa dữ liệu local
type GmailRevokeService struct {
	watch PushStopper // Client Gmail API
}

// NewGmailRevokeService tạo mới GmailRevokeService
func NewGmailRevokeService(watch PushStopper) *GmailRevokeService {
	return &GmailRevokeService{watch: watch}
}

// Revoke dừng kênh push notification của mailbox thuộc integration.
// Thất bại thì trả về lỗi để caller không xóa dữ liệu local.
func (s *GmailRevokeService) Revoke(ctx context.Context, account models.Account, integration models.Integration) error {
	email := integration.Email
	if email == "" {
		email = account.Email
	}
	return s.watch.StopPushNotification(ctx, account.Token, email)
}
