// Package gmailsvc chứa các service thao tác dữ liệu mirror Gmail native
package gmailsvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	gmailmodels "github.com/gopait/erxes-integrations/internal/api/gmail/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// GmailMirrorServices gom các service CRUD cho bộ collection mirror Gmail native
type GmailMirrorServices struct {
	Customers     *basesvc.BaseServiceMongoImpl[gmailmodels.GmailCustomer]            // gmail_customers
	Conversations *basesvc.BaseServiceMongoImpl[gmailmodels.GmailConversation]        // gmail_conversations
	Messages      *basesvc.BaseServiceMongoImpl[gmailmodels.GmailConversationMessage] // gmail_conversation_messages
}

func getCollection(name string) (*mongo.Collection, error) {
	coll, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
	}
	return coll, nil
}

// NewGmailMirrorServices tạo mới GmailMirrorServices từ các collection đã đăng ký
func NewGmailMirrorServices() (*GmailMirrorServices, error) {
	customers, err := getCollection(global.MongoDB_ColNames.GmailCustomers)
	if err != nil {
		return nil, err
	}
	conversations, err := getCollection(global.MongoDB_ColNames.GmailConversations)
	if err != nil {
		return nil, err
	}
	messages, err := getCollection(global.MongoDB_ColNames.GmailMessages)
	if err != nil {
		return nil, err
	}

	return &GmailMirrorServices{
		Customers:     basesvc.NewBaseServiceMongo[gmailmodels.GmailCustomer](customers),
		Conversations: basesvc.NewBaseServiceMongo[gmailmodels.GmailConversation](conversations),
		Messages:      basesvc.NewBaseServiceMongo[gmailmodels.GmailConversationMessage](messages),
	}, nil
}
