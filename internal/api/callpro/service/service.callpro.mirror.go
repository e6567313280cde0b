// Package callprosvc chứa các service thao tác dữ liệu mirror CallPro.
// CallPro không giữ tài nguyên nào phía upstream nên không có bước thu hồi.
package callprosvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	callpromodels "github.com/gopait/erxes-integrations/internal/api/callpro/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// CallProMirrorServices gom các service CRUD cho bộ collection mirror CallPro
type CallProMirrorServices struct {
	Customers     *basesvc.BaseServiceMongoImpl[callpromodels.CallProCustomer]            // callpro_customers
	Conversations *basesvc.BaseServiceMongoImpl[callpromodels.CallProConversation]        // callpro_conversations
	Messages      *basesvc.BaseServiceMongoImpl[callpromodels.CallProConversationMessage] // callpro_conversation_messages
}

func getCollection(name string) (*mongo.Collection, error) {
	coll, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
	}
	return coll, nil
}

// NewCallProMirrorServices tạo mới CallProMirrorServices từ các collection đã đăng ký
func NewCallProMirrorServices() (*CallProMirrorServices, error) {
	customers, err := getCollection(global.MongoDB_ColNames.CallProCustomers)
	if err != nil {
		return nil, err
	}
	conversations, err := getCollection(global.MongoDB_ColNames.CallProConversations)
	if err != nil {
		return nil, err
	}
	messages, err := getCollection(global.MongoDB_ColNames.CallProMessages)
	if err != nil {
		return nil, err
	}

	return &CallProMirrorServices{
		Customers:     basesvc.NewBaseServiceMongo[callpromodels.CallProCustomer](customers),
		Conversations: basesvc.NewBaseServiceMongo[callpromodels.CallProConversation](conversations),
		Messages:      basesvc.NewBaseServiceMongo[callpromodels.CallProConversationMessage](messages),
	}, nil
}
