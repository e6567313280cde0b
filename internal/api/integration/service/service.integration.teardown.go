package integrationsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/api/provider"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// ====================================
// INTERFACE VÀ STRUCT
// ====================================

// IntegrationStore là tập thao tác tối thiểu engine cần trên collection integrations
type IntegrationStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (models.Integration, error)
	DeleteOne(ctx context.Context, filter interface{}) error
}

// AccountStore là tập thao tác tối thiểu engine cần trên collection accounts
type AccountStore interface {
	FindByIdHex(ctx context.Context, idHex string) (models.Account, error)
}

// DeletionSummary tổng hợp số bản ghi đã xóa trong một lần gỡ integration
type DeletionSummary struct {
	ErxesApiId    string `json:"erxesApiId"`    // ID phía CRM của integration đã gỡ
	Kind          string `json:"kind"`          // Loại provider
	Integrations  int64  `json:"integrations"`  // Số bản ghi integration đã xóa (0 hoặc 1)
	Customers     int64  `json:"customers"`     // Số khách hàng mirror đã xóa
	Conversations int64  `json:"conversations"` // Số cuộc trò chuyện đã xóa
	Messages      int64  `json:"messages"`      // Số tin nhắn đã xóa
	Posts         int64  `json:"posts"`         // Số bài viết đã xóa (facebook)
	Comments      int64  `json:"comments"`      // Số bình luận đã xóa (facebook)
}

// TeardownService thực hiện gỡ integration: thu hồi tài nguyên phía provider
// trước, sau đó xóa toàn bộ dữ liệu mirror local theo đúng thứ tự.
type TeardownService struct {
	integrations IntegrationStore   // Store integrations
	accounts     AccountStore       // Store accounts
	adapters     *provider.Registry // Registry adapter theo họ provider
}

// NewTeardownService tạo mới TeardownService
func NewTeardownService(integrations IntegrationStore, accounts AccountStore, adapters *provider.Registry) *TeardownService {
	return &TeardownService{
		integrations: integrations,
		accounts:     accounts,
		adapters:     adapters,
	}
}

// ====================================
// GỠ INTEGRATION
// ====================================

// RemoveIntegration gỡ integration theo identifier (erxesApiId hoặc accountId).
//
// Thứ tự bắt buộc:
//  1. Tìm integration - không tìm thấy thì trả về common.ErrNotFound,
//     KHÔNG có side effect nào.
//  2. Tìm account đã liên kết. Account không còn nghĩa là dữ liệu đã hỏng
//     từ trước - trả về common.ErrNotFound, KHÔNG xóa gì local: thiếu
//     credentials thì không thu hồi được phía provider, xóa local lúc này
//     sẽ để lại webhook mồ côi upstream.
//  3. Thu hồi tài nguyên phía provider (unsubscribe page, dừng push, ...).
//     Thu hồi thất bại thì dừng ngay - dữ liệu local giữ nguyên để lần gọi
//     sau thử lại.
//  4. Xóa dữ liệu mirror local. Snapshot danh sách conversation ID TRƯỚC khi
//     xóa conversations để còn xóa được messages theo $in.
//  5. Xóa bản ghi integration.
//
// Các bước xóa đều idempotent: chạy lại với cùng identifier sau khi đã gỡ
// xong sẽ trả về common.ErrNotFound ở bước 1.
func (s *TeardownService) RemoveIntegration(ctx context.Context, identifier string) (*DeletionSummary, error) {
	log := logger.GetAppLogger()

	integration, err := s.integrations.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// Bước 2: account liên kết là bắt buộc
	if integration.AccountId == "" {
		return nil, common.ErrNotFound
	}
	account, err := s.accounts.FindByIdHex(ctx, integration.AccountId)
	if err != nil {
		return nil, err
	}

	adapter, err := s.adapters.Resolve(integration.Kind, integration.NylasToken != "")
	if err != nil {
		return nil, err
	}

	// Bước 3: thu hồi upstream trước, xóa local sau
	if adapter.Revoke != nil {
		if err := adapter.Revoke(ctx, account, integration); err != nil {
			log.WithError(err).WithField("erxesApiId", integration.ErxesApiId).
				Error("🔌 [Teardown] Thu hồi tài nguyên phía provider thất bại, giữ nguyên dữ liệu local")
			return nil, err
		}
	}

	summary := &DeletionSummary{
		ErxesApiId: integration.ErxesApiId,
		Kind:       integration.Kind,
	}

	// Bước 4a: facebook dọn posts/comments theo từng page
	if adapter.Mirrors.Posts != nil {
		for _, pageId := range integration.FacebookPageIds {
			byPage := bson.M{"recipientId": pageId}

			n, err := adapter.Mirrors.Posts.DeleteMany(ctx, byPage)
			if err != nil {
				return nil, fmt.Errorf("failed to delete posts of page %s: %w", pageId, err)
			}
			summary.Posts += n

			n, err = adapter.Mirrors.Comments.DeleteMany(ctx, byPage)
			if err != nil {
				return nil, fmt.Errorf("failed to delete comments of page %s: %w", pageId, err)
			}
			summary.Comments += n
		}
	}

	// Bước 4b: snapshot conversation IDs trước khi xóa conversations
	byIntegration := bson.M{"integrationId": integration.ErxesApiId}
	conversationIds, err := adapter.Mirrors.Conversations.Distinct(ctx, "_id", byIntegration)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot conversation ids: %w", err)
	}

	if summary.Customers, err = adapter.Mirrors.Customers.DeleteMany(ctx, byIntegration); err != nil {
		return nil, fmt.Errorf("failed to delete customers: %w", err)
	}
	if summary.Conversations, err = adapter.Mirrors.Conversations.DeleteMany(ctx, byIntegration); err != nil {
		return nil, fmt.Errorf("failed to delete conversations: %w", err)
	}
	if len(conversationIds) > 0 {
		byConversation := bson.M{"conversationId": bson.M{"$in": conversationIds}}
		if summary.Messages, err = adapter.Mirrors.Messages.DeleteMany(ctx, byConversation); err != nil {
			return nil, fmt.Errorf("failed to delete messages: %w", err)
		}
	}

	// Bước 5: xóa bản ghi integration. Bản ghi đã biến mất (request trùng
	// chạy song song) không coi là lỗi.
	if err := s.integrations.DeleteOne(ctx, bson.M{"erxesApiId": integration.ErxesApiId}); err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	} else {
		summary.Integrations = 1
	}

	log.WithFields(map[string]interface{}{
		"erxesApiId":    summary.ErxesApiId,
		"kind":          summary.Kind,
		"customers":     summary.Customers,
		"conversations": summary.Conversations,
		"messages":      summary.Messages,
	}).Info("🧹 [Teardown] Đã gỡ integration và dọn dữ liệu mirror")

	return summary, nil
}
