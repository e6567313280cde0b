// Package nylashdl chứa các handler HTTP cho domain Nylas
package nylashdl

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/gopait/erxes-integrations/internal/api/base/handler"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	"github.com/gopait/erxes-integrations/internal/api/nylas/dto"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// deltaTypeMessageCreated là loại delta duy nhất dispatcher quan tâm
const deltaTypeMessageCreated = "message.created"

// SyncFunc đồng bộ một bức thư mới về mirror
type SyncFunc func(ctx context.Context, accountId, messageId string) error

// NylasWebhookHandler xử lý webhook từ Nylas: verify challenge lúc đăng ký
// và nhận deltas khi mailbox có thay đổi.
type NylasWebhookHandler struct {
	secret string   // HMAC key (Nylas client secret)
	sync   SyncFunc // Hàm sync cho mỗi delta message.created
}

// NewNylasWebhookHandler tạo mới NylasWebhookHandler
func NewNylasWebhookHandler(secret string, sync SyncFunc) *NylasWebhookHandler {
	return &NylasWebhookHandler{
		secret: secret,
		sync:   sync,
	}
}

// HandleVerify xử lý bước verify webhook của Nylas: echo lại nguyên văn
// query param "challenge".
func (h *NylasWebhookHandler) HandleVerify(c fiber.Ctx) error {
	return c.Status(common.StatusOK).SendString(c.Query("challenge"))
}

// HandleWebhook nhận deltas từ Nylas.
//
// Chữ ký X-Nylas-Signature (HMAC-SHA256 hex của raw body) phải khớp trước khi
// parse bất cứ thứ gì. Deltas được xử lý TUẦN TỰ theo thứ tự trong payload;
// một delta lỗi chỉ bị log và bỏ qua, không chặn các delta phía sau và không
// đổi response - Nylas luôn nhận "success" để không retry cả batch.
func (h *NylasWebhookHandler) HandleWebhook(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()

		rawBody := c.Body()
		signature := c.Get("X-Nylas-Signature")
		if !nylasclient.VerifyWebhookSignature(rawBody, signature, h.secret) {
			log.Warn("🔐 [NYLAS WEBHOOK] Chữ ký không khớp, từ chối payload")
			return basehdl.HandleResponse(c, nil, common.ErrSignatureMismatch)
		}

		var req dto.WebhookRequest
		if err := json.Unmarshal(rawBody, &req); err != nil {
			log.WithError(err).Warn("📨 [NYLAS WEBHOOK] Không thể parse request body")
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		ctx := c.Context()
		for _, delta := range req.Deltas {
			if delta.Type != deltaTypeMessageCreated {
				continue
			}
			if err := h.sync(ctx, delta.ObjectData.AccountId, delta.ObjectData.Id); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"accountId": delta.ObjectData.AccountId,
					"messageId": delta.ObjectData.Id,
				}).Error("📨 [NYLAS WEBHOOK] Sync delta thất bại, bỏ qua")
			}
		}

		return c.Status(common.StatusOK).SendString("success")
	})
}
