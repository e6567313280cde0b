package nylassvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	integrationsvc "github.com/gopait/erxes-integrations/internal/api/integration/service"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	nylasmodels "github.com/gopait/erxes-integrations/internal/api/nylas/models"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// MessageFetcher là thao tác Nylas API mà sync cần
type MessageFetcher interface {
	GetMessage(ctx context.Context, accessToken, messageId string) (*nylasclient.Message, error)
}

// NylasSyncService đồng bộ thư mới từ Nylas về bộ collection mirror.
// Được webhook dispatcher gọi cho mỗi delta "message.created".
type NylasSyncService struct {
	mirrors       *NylasMirrorServices            // Bộ collection mirror
	accounts      *integrationsvc.AccountService  // Store accounts
	integrations  *integrationsvc.IntegrationService // Store integrations
	resolveClient func() (MessageFetcher, error)  // Trả về client hoặc ErrProviderUnconfigured
}

// NewNylasSyncService tạo mới NylasSyncService
func NewNylasSyncService(
	mirrors *NylasMirrorServices,
	accounts *integrationsvc.AccountService,
	integrations *integrationsvc.IntegrationService,
	resolveClient func() (MessageFetcher, error),
) *NylasSyncService {
	return &NylasSyncService{
		mirrors:       mirrors,
		accounts:      accounts,
		integrations:  integrations,
		resolveClient: resolveClient,
	}
}

// toParticipants chuyển danh sách participant dạng map từ Nylas API thành model
func toParticipants(raw []map[string]interface{}) []nylasmodels.EmailParticipant {
	var participants []nylasmodels.EmailParticipant
	for _, item := range raw {
		participant := nylasmodels.EmailParticipant{}
		if name, ok := item["name"].(string); ok {
			participant.Name = name
		}
		if email, ok := item["email"].(string); ok {
			participant.Email = email
		}
		if participant.Email == "" {
			continue
		}
		participants = append(participants, participant)
	}
	return participants
}

// SyncMessages lấy bức thư mới từ Nylas và upsert customer, conversation,
// message vào bộ mirror. Upsert theo ID phía provider nên delta trùng lặp
// (Nylas gửi lại cùng một object) không tạo bản ghi đôi.
func (s *NylasSyncService) SyncMessages(ctx context.Context, accountId, messageId string) error {
	log := logger.GetAppLogger()

	account, err := s.accounts.FindByNylasAccountId(ctx, accountId)
	if err != nil {
		return fmt.Errorf("no account for nylas account %s: %w", accountId, err)
	}

	integration, err := s.integrations.FindByEmail(ctx, account.Email)
	if err != nil {
		return fmt.Errorf("no integration for email %s: %w", account.Email, err)
	}

	client, err := s.resolveClient()
	if err != nil {
		return err
	}

	message, err := client.GetMessage(ctx, account.NylasToken, messageId)
	if err != nil {
		return err
	}

	from := toParticipants(message.From)
	if len(from) == 0 {
		return fmt.Errorf("message %s has no sender", messageId)
	}
	sender := from[0]

	now := time.Now().UnixMilli()

	// Upsert customer theo địa chỉ gửi
	customer, err := s.mirrors.Customers.FindOneAndUpdate(ctx,
		bson.M{"email": sender.Email, "integrationId": integration.ErxesApiId},
		bson.M{
			"$set":         bson.M{"firstName": sender.Name, "updatedAt": now},
			"$setOnInsert": bson.M{"email": sender.Email, "integrationId": integration.ErxesApiId, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	// Upsert conversation theo thread
	conversation, err := s.mirrors.Conversations.FindOneAndUpdate(ctx,
		bson.M{"threadId": message.ThreadId, "integrationId": integration.ErxesApiId},
		bson.M{
			"$set": bson.M{"content": message.Subject, "from": sender.Email, "to": account.Email, "updatedAt": now},
			"$setOnInsert": bson.M{
				"threadId":      message.ThreadId,
				"integrationId": integration.ErxesApiId,
				"createdAt":     now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	if err != nil {
		return fmt.Errorf("failed to upsert conversation: %w", err)
	}

	// Upsert message theo message ID phía Nylas
	_, err = s.mirrors.Messages.FindOneAndUpdate(ctx,
		bson.M{"messageId": message.Id},
		bson.M{
			"$set": bson.M{
				"accountId":      message.AccountId,
				"threadId":       message.ThreadId,
				"conversationId": conversation.ID,
				"subject":        message.Subject,
				"body":           message.Body,
				"from":           from,
				"to":             toParticipants(message.To),
				"cc":             toParticipants(message.Cc),
				"bcc":            toParticipants(message.Bcc),
				"customerId":     customer.ID.Hex(),
				"updatedAt":      now,
			},
			"$setOnInsert": bson.M{"messageId": message.Id, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After))
	if err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"accountId": accountId,
		"messageId": messageId,
		"threadId":  message.ThreadId,
	}).Info("📨 [Nylas] Đã sync thư mới về mirror")

	return nil
}
