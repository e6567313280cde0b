// Package fbsvc chứa các service thao tác dữ liệu mirror Facebook
package fbsvc

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/gopait/erxes-integrations/internal/api/base/service"
	fbmodels "github.com/gopait/erxes-integrations/internal/api/facebook/models"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// FbMirrorServices gom các service CRUD cho toàn bộ collection mirror Facebook.
// Engine gỡ integration dùng bộ này làm MirrorSet của họ facebook.
type FbMirrorServices struct {
	Customers     *basesvc.BaseServiceMongoImpl[fbmodels.FbCustomer]            // fb_customers
	Conversations *basesvc.BaseServiceMongoImpl[fbmodels.FbConversation]        // fb_conversations
	Messages      *basesvc.BaseServiceMongoImpl[fbmodels.FbConversationMessage] // fb_conversation_messages
	Posts         *basesvc.BaseServiceMongoImpl[fbmodels.FbPost]                // fb_posts
	Comments      *basesvc.BaseServiceMongoImpl[fbmodels.FbComment]             // fb_comments
}

func getCollection(name string) (*mongo.Collection, error) {
	coll, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
	}
	return coll, nil
}

// NewFbMirrorServices tạo mới FbMirrorServices từ các collection đã đăng ký
func NewFbMirrorServices() (*FbMirrorServices, error) {
	customers, err := getCollection(global.MongoDB_ColNames.FbCustomers)
	if err != nil {
		return nil, err
	}
	conversations, err := getCollection(global.MongoDB_ColNames.FbConversations)
	if err != nil {
		return nil, err
	}
	messages, err := getCollection(global.MongoDB_ColNames.FbMessages)
	if err != nil {
		return nil, err
	}
	posts, err := getCollection(global.MongoDB_ColNames.FbPosts)
	if err != nil {
		return nil, err
	}
	comments, err := getCollection(global.MongoDB_ColNames.FbComments)
	if err != nil {
		return nil, err
	}

	return &FbMirrorServices{
		Customers:     basesvc.NewBaseServiceMongo[fbmodels.FbCustomer](customers),
		Conversations: basesvc.NewBaseServiceMongo[fbmodels.FbConversation](conversations),
		Messages:      basesvc.NewBaseServiceMongo[fbmodels.FbConversationMessage](messages),
		Posts:         basesvc.NewBaseServiceMongo[fbmodels.FbPost](posts),
		Comments:      basesvc.NewBaseServiceMongo[fbmodels.FbComment](comments),
	}, nil
}
