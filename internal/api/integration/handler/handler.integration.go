// Package integrationhdl chứa các handler HTTP cho việc quản lý integration
package integrationhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/gopait/erxes-integrations/internal/api/base/handler"
	callprosvc "github.com/gopait/erxes-integrations/internal/api/callpro/service"
	fbclient "github.com/gopait/erxes-integrations/internal/api/facebook/client"
	fbsvc "github.com/gopait/erxes-integrations/internal/api/facebook/service"
	gmailclient "github.com/gopait/erxes-integrations/internal/api/gmail/client"
	gmailsvc "github.com/gopait/erxes-integrations/internal/api/gmail/service"
	integrationsvc "github.com/gopait/erxes-integrations/internal/api/integration/service"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	nylassvc "github.com/gopait/erxes-integrations/internal/api/nylas/service"
	"github.com/gopait/erxes-integrations/internal/api/provider"
	"github.com/gopait/erxes-integrations/internal/common"
	"github.com/gopait/erxes-integrations/internal/global"
)

// IntegrationHandler xử lý các thao tác trên integration: tra cứu và gỡ bỏ
type IntegrationHandler struct {
	integrationService *integrationsvc.IntegrationService
	teardownService    *integrationsvc.TeardownService
}

// buildAdapterRegistry dựng registry adapter với đầy đủ bốn họ provider
func buildAdapterRegistry() (*provider.Registry, error) {
	registry := provider.NewRegistry()

	fbMirrors, err := fbsvc.NewFbMirrorServices()
	if err != nil {
		return nil, fmt.Errorf("failed to create facebook mirror services: %v", err)
	}
	fbRevoke := fbsvc.NewFbRevokeService(fbclient.NewGraphClient())
	registry.Register(&provider.Adapter{
		Family: provider.FamilyFacebook,
		Mirrors: provider.MirrorSet{
			Customers:     fbMirrors.Customers,
			Conversations: fbMirrors.Conversations,
			Messages:      fbMirrors.Messages,
			Posts:         fbMirrors.Posts,
			Comments:      fbMirrors.Comments,
		},
		Revoke: fbRevoke.Revoke,
	})

	gmailMirrors, err := gmailsvc.NewGmailMirrorServices()
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail mirror services: %v", err)
	}
	gmailRevoke := gmailsvc.NewGmailRevokeService(gmailclient.NewWatchClient())
	registry.Register(&provider.Adapter{
		Family: provider.FamilyGmail,
		Mirrors: provider.MirrorSet{
			Customers:     gmailMirrors.Customers,
			Conversations: gmailMirrors.Conversations,
			Messages:      gmailMirrors.Messages,
		},
		Revoke: gmailRevoke.Revoke,
	})

	nylasMirrors, err := nylassvc.NewNylasMirrorServices()
	if err != nil {
		return nil, fmt.Errorf("failed to create nylas mirror services: %v", err)
	}
	nylasRevoke := nylassvc.NewNylasRevokeService(func() (nylassvc.AccountDisabler, error) {
		return nylasclient.Default()
	})
	registry.Register(&provider.Adapter{
		Family: provider.FamilyNylas,
		Mirrors: provider.MirrorSet{
			Customers:     nylasMirrors.Customers,
			Conversations: nylasMirrors.Conversations,
			Messages:      nylasMirrors.Messages,
		},
		Revoke: nylasRevoke.Revoke,
	})

	callproMirrors, err := callprosvc.NewCallProMirrorServices()
	if err != nil {
		return nil, fmt.Errorf("failed to create callpro mirror services: %v", err)
	}
	// CallPro không giữ tài nguyên phía upstream nên không có bước thu hồi
	registry.Register(&provider.Adapter{
		Family: provider.FamilyCallPro,
		Mirrors: provider.MirrorSet{
			Customers:     callproMirrors.Customers,
			Conversations: callproMirrors.Conversations,
			Messages:      callproMirrors.Messages,
		},
	})

	return registry, nil
}

// NewIntegrationHandler tạo mới IntegrationHandler
func NewIntegrationHandler() (*IntegrationHandler, error) {
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}

	accountService, err := integrationsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %v", err)
	}

	adapters, err := buildAdapterRegistry()
	if err != nil {
		return nil, err
	}

	return &IntegrationHandler{
		integrationService: integrationService,
		teardownService:    integrationsvc.NewTeardownService(integrationService, accountService, adapters),
	}, nil
}

// removeIntegrationRequest là body của endpoint gỡ integration
type removeIntegrationRequest struct {
	IntegrationId string `json:"integrationId" validate:"required"` // erxesApiId hoặc accountId
}

// HandleRemoveIntegration gỡ một integration: thu hồi tài nguyên phía provider
// rồi xóa toàn bộ dữ liệu mirror. Trả về số bản ghi đã xóa theo từng collection.
func (h *IntegrationHandler) HandleRemoveIntegration(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req removeIntegrationRequest
		if err := c.Bind().Body(&req); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		if err := global.Validate.Struct(req); err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "integrationId không được để trống",
				common.StatusBadRequest, nil))
		}

		summary, err := h.teardownService.RemoveIntegration(c.Context(), req.IntegrationId)
		return basehdl.HandleResponse(c, summary, err)
	})
}

// HandleFindIntegrations liệt kê các integration, lọc được theo kind
func (h *IntegrationHandler) HandleFindIntegrations(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		filter := bson.M{}
		if kind := c.Query("kind"); kind != "" {
			filter["kind"] = kind
		}

		integrations, err := h.integrationService.Find(c.Context(), filter, nil)
		return basehdl.HandleResponse(c, integrations, err)
	})
}
