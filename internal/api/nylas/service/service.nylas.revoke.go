package nylassvc

import (
	"context"

	"github.com/gopait/erxes-integrations/internal/api/integration/models"
)

// AccountDisabler là thao tác Nylas API mà bước thu hồi cần
type AccountDisabler interface {
	EnableOrDisableAccount(ctx context.Context, accountId string, enable bool) error
}

// NylasRevokeService downgrade account phía Nylas trước khi xóa dữ liệu local.
// Client được phân giải lúc gọi (không phải lúc tạo service) để trạng thái
// chưa-cấu-hình của Nylas SDK nổi lên đúng thời điểm thao tác cần nó.
type NylasRevokeService struct {
	resolve func() (AccountDisabler, error) // Trả về client hoặc ErrProviderUnconfigured
}

// NewNylasRevokeService tạo mới NylasRevokeService
func NewNylasRevokeService(resolve func() (AccountDisabler, error)) *NylasRevokeService {
	return &NylasRevokeService{resolve: resolve}
}

// Revoke tắt sync account phía Nylas. Integration chưa từng connect qua Nylas
// (không có account ID) thì không có gì để thu hồi.
func (s *NylasRevokeService) Revoke(ctx context.Context, account models.Account, integration models.Integration) error {
	accountId := integration.NylasAccountId
	if accountId == "" {
		accountId = account.NylasAccountId
	}
	if accountId == "" {
		return nil
	}

	client, err := s.resolve()
	if err != nil {
		return err
	}
	return client.EnableOrDisableAccount(ctx, accountId, false)
}
