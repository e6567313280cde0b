// Package integrationsvc chứa các service quản lý account và integration
package integrationsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// AccountService là cấu trúc chứa các phương thức liên quan đến tài khoản provider
type AccountService struct {
	*basesvc.BaseServiceMongoImpl[models.Account]
}

// NewAccountService tạo mới AccountService
func NewAccountService() (*AccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Accounts)
	if !exist {
		return nil, fmt.Errorf("failed to get accounts collection: %v", common.ErrNotFound)
	}
	return &AccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Account](coll),
	}, nil
}

// FindByIdHex tìm account theo ID dạng hex string.
// Trả về common.ErrNotFound nếu ID không hợp lệ hoặc account không tồn tại.
func (s *AccountService) FindByIdHex(ctx context.Context, idHex string) (models.Account, error) {
	var zero models.Account
	objectID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return zero, common.ErrNotFound
	}
	return s.FindOneById(ctx, objectID)
}

// FindByNylasAccountId tìm account theo account ID phía Nylas
func (s *AccountService) FindByNylasAccountId(ctx context.Context, nylasAccountId string) (models.Account, error) {
	return s.FindOne(ctx, bson.M{"nylasAccountId": nylasAccountId}, nil)
}

// UpdateNylasState cập nhật thông tin Nylas cho account sau khi connect thành công
func (s *AccountService) UpdateNylasState(ctx context.Context, id primitive.ObjectID, nylasToken, nylasAccountId, billingState string) error {
	update := bson.M{"$set": bson.M{
		"nylasToken":        nylasToken,
		"nylasAccountId":    nylasAccountId,
		"nylasBillingState": billingState,
	}}
	return s.UpdateOne(ctx, bson.M{"_id": id}, update, nil)
}
