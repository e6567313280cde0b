package integrationsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// IntegrationService là cấu trúc chứa các phương thức liên quan đến integration
type IntegrationService struct {
	*basesvc.BaseServiceMongoImpl[models.Integration]
}

// NewIntegrationService tạo mới IntegrationService
func NewIntegrationService() (*IntegrationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Integrations)
	if !exist {
		return nil, fmt.Errorf("failed to get integrations collection: %v", common.ErrNotFound)
	}
	return &IntegrationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Integration](coll),
	}, nil
}

// FindByIdentifier tìm integration theo identifier: khớp với erxesApiId HOẶC accountId.
// Cùng một identifier có thể là ID phía CRM hoặc ID của account đã liên kết.
func (s *IntegrationService) FindByIdentifier(ctx context.Context, identifier string) (models.Integration, error) {
	filter := bson.M{"$or": []bson.M{
		{"erxesApiId": identifier},
		{"accountId": identifier},
	}}
	return s.FindOne(ctx, filter, nil)
}

// FindByErxesApiId tìm integration theo ID phía CRM
func (s *IntegrationService) FindByErxesApiId(ctx context.Context, erxesApiId string) (models.Integration, error) {
	return s.FindOne(ctx, bson.M{"erxesApiId": erxesApiId}, nil)
}

// FindByEmail tìm integration theo email của kênh
func (s *IntegrationService) FindByEmail(ctx context.Context, email string) (models.Integration, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// CreatePending tạo integration mới ở trạng thái pending.
// Bản ghi chỉ chuyển sang active sau khi CRM xác nhận thành công (MarkActive);
// nếu CRM từ chối thì bản ghi pending phải được xóa (DeletePending).
func (s *IntegrationService) CreatePending(ctx context.Context, integration models.Integration) (models.Integration, error) {
	integration.Status = models.IntegrationStatusPending
	return s.InsertOne(ctx, integration)
}

// MarkActive chuyển integration từ pending sang active sau khi CRM xác nhận
func (s *IntegrationService) MarkActive(ctx context.Context, erxesApiId string) error {
	update := bson.M{"$set": bson.M{"status": models.IntegrationStatusActive}}
	return s.UpdateOne(ctx, bson.M{"erxesApiId": erxesApiId}, update, nil)
}

// DeletePending xóa bản ghi pending khi bước xác nhận với CRM thất bại (rollback)
func (s *IntegrationService) DeletePending(ctx context.Context, erxesApiId string) error {
	filter := bson.M{
		"erxesApiId": erxesApiId,
		"status":     models.IntegrationStatusPending,
	}
	// Không coi việc bản ghi đã biến mất là lỗi - rollback phải idempotent
	if err := s.DeleteOne(ctx, filter); err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return nil
}
