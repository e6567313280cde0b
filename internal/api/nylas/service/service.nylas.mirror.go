// Package nylassvc chứa các service cho kênh email sync qua Nylas:
// dữ liệu mirror, cấu hình provider và bước thu hồi account.
package nylassvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	nylasmodels "github.com/gopait/erxes-integrations/internal/api/nylas/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// NylasMirrorServices gom các service CRUD cho bộ collection mirror Nylas Gmail
type NylasMirrorServices struct {
	Customers     *basesvc.BaseServiceMongoImpl[nylasmodels.NylasGmailCustomer]            // nylas_gmail_customers
	Conversations *basesvc.BaseServiceMongoImpl[nylasmodels.NylasGmailConversation]        // nylas_gmail_conversations
	Messages      *basesvc.BaseServiceMongoImpl[nylasmodels.NylasGmailConversationMessage] // nylas_gmail_conversation_messages
}

func getCollection(name string) (*mongo.Collection, error) {
	coll, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
	}
	return coll, nil
}

// NewNylasMirrorServices tạo mới NylasMirrorServices từ các collection đã đăng ký
func NewNylasMirrorServices() (*NylasMirrorServices, error) {
	customers, err := getCollection(global.MongoDB_ColNames.NylasGmailCustomers)
	if err != nil {
		return nil, err
	}
	conversations, err := getCollection(global.MongoDB_ColNames.NylasGmailConversations)
	if err != nil {
		return nil, err
	}
	messages, err := getCollection(global.MongoDB_ColNames.NylasGmailMessages)
	if err != nil {
		return nil, err
	}

	return &NylasMirrorServices{
		Customers:     basesvc.NewBaseServiceMongo[nylasmodels.NylasGmailCustomer](customers),
		Conversations: basesvc.NewBaseServiceMongo[nylasmodels.NylasGmailConversation](conversations),
		Messages:      basesvc.NewBaseServiceMongo[nylasmodels.NylasGmailConversationMessage](messages),
	}, nil
}

// FindMessageByErxesApiId tìm bức thư theo ID message phía CRM
func (s *NylasMirrorServices) FindMessageByErxesApiId(ctx context.Context, erxesApiMessageId string) (nylasmodels.NylasGmailConversationMessage, error) {
	return s.Messages.FindOne(ctx, bson.M{"erxesApiMessageId": erxesApiMessageId}, nil)
}
