package fbsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// PageGraph là tập thao tác Graph API mà bước thu hồi Facebook cần
type PageGraph interface {
	GetPageAccessToken(ctx context.Context, userToken, pageId string) (string, error)
	UnsubscribePage(ctx context.Context, pageToken, pageId string) error
}

// FbRevokeService thu hồi webhook subscription trên từng page của integration
type FbRevokeService struct {
	graph PageGraph // Client Graph API
}

// NewFbRevokeService tạo mới FbRevokeService
func NewFbRevokeService(graph PageGraph) *FbRevokeService {
	return &FbRevokeService{graph: graph}
}

// Revoke gỡ webhook subscription trên TẤT CẢ các page của integration.
// Duyệt hết danh sách page kể cả khi có page lỗi để thu hồi được tối đa;
// chỉ cần một page thất bại thì trả về lỗi để caller không xóa dữ liệu local.
func (s *FbRevokeService) Revoke(ctx context.Context, account models.Account, integration models.Integration) error {
	log := logger.GetAppLogger()

	var failedPages []string
	for _, pageId := range integration.FacebookPageIds {
		// Ưu tiên page token đã cache lúc tạo integration, fallback gọi Graph
		pageToken, ok := integration.FacebookPageTokensMap[pageId]
		if !ok || pageToken == "" {
			token, err := s.graph.GetPageAccessToken(ctx, account.Token, pageId)
			if err != nil {
				log.WithError(err).WithField("pageId", pageId).
					Warn("📵 [Facebook] Không lấy được page token khi thu hồi")
				failedPages = append(failedPages, pageId)
				continue
			}
			pageToken = token
		}

		if err := s.graph.UnsubscribePage(ctx, pageToken, pageId); err != nil {
			log.WithError(err).WithField("pageId", pageId).
				Warn("📵 [Facebook] Unsubscribe page thất bại")
			failedPages = append(failedPages, pageId)
		}
	}

	if len(failedPages) > 0 {
		return common.NewError(common.ErrCodeProviderUpstream,
			fmt.Sprintf("Không unsubscribe được các page: %s", strings.Join(failedPages, ", ")),
			common.StatusBadGateway, nil)
	}
	return nil
}
