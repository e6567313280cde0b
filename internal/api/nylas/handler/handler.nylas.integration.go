package nylashdl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/gopait/erxes-integrations/internal/api/base/handler"
	"github.com/gopait/erxes-integrations/internal/api/integration/models"
	integrationsvc "github.com/gopait/erxes-integrations/internal/api/integration/service"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	"github.com/gopait/erxes-integrations/internal/api/nylas/dto"
	nylassvc "github.com/gopait/erxes-integrations/internal/api/nylas/service"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
	"github.com/gopait/erxes-integrations/internal/logger"
)

// NylasIntegrationHandler xử lý các thao tác trên kênh email qua Nylas:
// tạo kênh, đọc thư, gửi thư và file đính kèm.
type NylasIntegrationHandler struct {
	accountService     *integrationsvc.AccountService
	integrationService *integrationsvc.IntegrationService
	providerService    *nylassvc.NylasProviderService
	mirrorServices     *nylassvc.NylasMirrorServices
}

// NewNylasIntegrationHandler tạo mới NylasIntegrationHandler
func NewNylasIntegrationHandler() (*NylasIntegrationHandler, error) {
	accountService, err := integrationsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %v", err)
	}

	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}

	mirrorServices, err := nylassvc.NewNylasMirrorServices()
	if err != nil {
		return nil, fmt.Errorf("failed to create nylas mirror services: %v", err)
	}

	return &NylasIntegrationHandler{
		accountService:     accountService,
		integrationService: integrationService,
		providerService:    nylassvc.NewNylasProviderService(global.ServerConfig),
		mirrorServices:     mirrorServices,
	}, nil
}

// HandleCreateIntegration tạo kênh email mới qua Nylas.
//
// Trình tự:
//  1. Ghi bản ghi integration ở trạng thái pending.
//  2. Connect mailbox vào Nylas (authorize + token).
//  3. Lưu token/account ID Nylas vào account và integration.
//  4. Chuyển integration sang active.
//
// Bất kỳ bước nào thất bại sau khi đã ghi pending đều rollback: xóa bản ghi
// pending, và nếu đã connect được với Nylas thì downgrade account lại.
func (h *NylasIntegrationHandler) HandleCreateIntegration(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()
		ctx := c.Context()

		var req dto.CreateIntegrationRequest
		if err := c.Bind().Body(&req); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(req); err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
		}

		account, err := h.accountService.FindByIdHex(ctx, req.AccountId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		email := account.Email

		pending, err := h.integrationService.CreatePending(ctx, models.Integration{
			Kind:       req.Kind,
			ErxesApiId: req.IntegrationId,
			AccountId:  req.AccountId,
			Email:      email,
		})
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		rollback := func(connected *nylasclient.ConnectedAccount) {
			if connected != nil {
				if client, clientErr := nylasclient.Default(); clientErr == nil {
					if disableErr := client.EnableOrDisableAccount(ctx, connected.AccountId, false); disableErr != nil {
						log.WithError(disableErr).Warn("🔁 [NYLAS] Rollback: downgrade account thất bại")
					}
				}
			}
			if deleteErr := h.integrationService.DeletePending(ctx, req.IntegrationId); deleteErr != nil {
				log.WithError(deleteErr).Warn("🔁 [NYLAS] Rollback: xóa bản ghi pending thất bại")
			}
		}

		client, err := nylasclient.Default()
		if err != nil {
			rollback(nil)
			return basehdl.HandleResponse(c, nil, err)
		}

		settings, err := h.providerService.GetProviderSettings(req.Kind, account.TokenSecret)
		if err != nil {
			rollback(nil)
			return basehdl.HandleResponse(c, nil, err)
		}
		providerConfig, err := h.providerService.GetProviderConfig(req.Kind)
		if err != nil {
			rollback(nil)
			return basehdl.HandleResponse(c, nil, err)
		}

		connected, err := client.ConnectProvider(ctx, account.Name, email,
			nylassvc.ProviderName(req.Kind), providerConfig.Scope, settings)
		if err != nil {
			rollback(nil)
			return basehdl.HandleResponse(c, nil, err)
		}

		if err := h.accountService.UpdateNylasState(ctx, account.ID,
			connected.AccessToken, connected.AccountId, connected.BillingState); err != nil {
			rollback(connected)
			return basehdl.HandleResponse(c, nil, err)
		}

		if err := h.integrationService.UpdateOne(ctx,
			bson.M{"erxesApiId": req.IntegrationId},
			bson.M{"$set": bson.M{
				"nylasToken":        connected.AccessToken,
				"nylasAccountId":    connected.AccountId,
				"nylasBillingState": connected.BillingState,
			}}, nil); err != nil {
			rollback(connected)
			return basehdl.HandleResponse(c, nil, err)
		}

		if err := h.integrationService.MarkActive(ctx, req.IntegrationId); err != nil {
			rollback(connected)
			return basehdl.HandleResponse(c, nil, err)
		}

		log.WithFields(map[string]interface{}{
			"erxesApiId": req.IntegrationId,
			"kind":       req.Kind,
			"email":      email,
		}).Info("✉️ [NYLAS] Đã tạo kênh email mới")

		return basehdl.HandleResponse(c, fiber.Map{
			"id":             pending.ID.Hex(),
			"erxesApiId":     req.IntegrationId,
			"kind":           req.Kind,
			"email":          email,
			"nylasAccountId": connected.AccountId,
			"status":         models.IntegrationStatusActive,
		}, nil)
	})
}

// HandleGetMessage trả về một bức thư mirror theo ID message phía CRM.
// Kèm integrationEmail để client hiển thị thư đang thuộc kênh nào.
func (h *NylasIntegrationHandler) HandleGetMessage(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		ctx := c.Context()

		erxesApiMessageId := c.Query("erxesApiMessageId")
		integrationId := c.Query("integrationId")
		if erxesApiMessageId == "" || integrationId == "" {
			return basehdl.HandleResponse(c, nil, common.ErrRequiredField)
		}

		integration, err := h.integrationService.FindByErxesApiId(ctx, integrationId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		message, err := h.mirrorServices.FindMessageByErxesApiId(ctx, erxesApiMessageId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, fiber.Map{
			"message":          message,
			"integrationEmail": integration.Email,
		}, nil)
	})
}

// HandleUpload đọc file đính kèm từ đường dẫn trong body và đẩy lên Nylas
// qua token của kênh
func (h *NylasIntegrationHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		ctx := c.Context()

		var req dto.UploadRequest
		if err := c.Bind().Body(&req); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(req); err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
		}

		integration, err := h.integrationService.FindByErxesApiId(ctx, req.ErxesApiId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		data, err := os.ReadFile(req.Path)
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "Không đọc được file upload", common.StatusBadRequest, err))
		}

		client, err := nylasclient.Default()
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		uploaded, err := client.UploadFile(ctx, integration.NylasToken, req.Name, req.Type, data)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, uploaded, nil)
	})
}

// HandleGetAttachment tải file đính kèm từ Nylas và trả thẳng nội dung về client
func (h *NylasIntegrationHandler) HandleGetAttachment(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		ctx := c.Context()

		attachmentId := c.Query("attachmentId")
		integrationId := c.Query("integrationId")
		if attachmentId == "" || integrationId == "" {
			return basehdl.HandleResponse(c, nil, common.ErrRequiredField)
		}

		integration, err := h.integrationService.FindByErxesApiId(ctx, integrationId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		client, err := nylasclient.Default()
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		data, meta, err := client.GetAttachment(ctx, integration.NylasToken, attachmentId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		if meta.ContentType != "" {
			c.Set("Content-Type", meta.ContentType)
		}
		// Client truyền được tên file hiển thị, mặc định lấy tên file phía Nylas
		filename := c.Query("filename")
		if filename == "" {
			filename = meta.Filename
		}
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Status(common.StatusOK).Send(data)
	})
}

// HandleSendMessage gửi thư mới (hoặc thư trả lời) qua kênh Nylas.
// Nội dung thư nằm trong trường data dưới dạng chuỗi JSON do CRM đóng gói.
func (h *NylasIntegrationHandler) HandleSendMessage(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		ctx := c.Context()

		var req dto.SendMessageRequest
		if err := c.Bind().Body(&req); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(req); err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
		}

		var params dto.SendMessageParams
		if err := json.Unmarshal([]byte(req.Data), &params); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		integration, err := h.integrationService.FindByErxesApiId(ctx, req.ErxesApiId)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		client, err := nylasclient.Default()
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		subject := params.Subject
		if params.ReplyToMessageId != "" {
			subject = nylassvc.BuildReplySubject(subject)
		}

		sent, err := client.SendMessage(ctx, integration.NylasToken, &nylasclient.SendMessageRequest{
			Subject:          subject,
			Body:             params.Body,
			To:               toAddressMaps(params.To),
			Cc:               toAddressMaps(params.Cc),
			Bcc:              toAddressMaps(params.Bcc),
			ReplyToMessageId: params.ReplyToMessageId,
			FileIds:          params.Attachments,
		})
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		return basehdl.HandleResponse(c, sent, nil)
	})
}

// toAddressMaps chuyển chuỗi địa chỉ phân cách dấu phẩy thành payload
// participant của Nylas
func toAddressMaps(emailStr string) []map[string]string {
	participants := nylassvc.BuildEmailAddress(emailStr)
	if len(participants) == 0 {
		return nil
	}
	result := make([]map[string]string, 0, len(participants))
	for _, p := range participants {
		result = append(result, map[string]string{"email": p.Email})
	}
	return result
}
