// Package router đăng ký các route thuộc domain Nylas: webhook (public),
// tạo kênh, đọc/gửi thư và file đính kèm.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	integrationsvc "github.com/gopait/erxes-integrations/internal/api/integration/service"
	nylasclient "github.com/gopait/erxes-integrations/internal/api/nylas/client"
	nylashdl "github.com/gopait/erxes-integrations/internal/api/nylas/handler"
	nylassvc "github.com/gopait/erxes-integrations/internal/api/nylas/service"
	"github.com/gopait/erxes-integrations/internal/global"
)

// Register đăng ký tất cả route Nylas lên app
func Register(app fiber.Router) error {
	mirrorServices, err := nylassvc.NewNylasMirrorServices()
	if err != nil {
		return fmt.Errorf("create nylas mirror services: %w", err)
	}
	accountService, err := integrationsvc.NewAccountService()
	if err != nil {
		return fmt.Errorf("create account service: %w", err)
	}
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return fmt.Errorf("create integration service: %w", err)
	}

	syncService := nylassvc.NewNylasSyncService(mirrorServices, accountService, integrationService,
		func() (nylassvc.MessageFetcher, error) {
			return nylasclient.Default()
		})

	webhookHandler := nylashdl.NewNylasWebhookHandler(
		global.ServerConfig.NylasClientSecret, syncService.SyncMessages)
	app.Get("/nylas/webhook", webhookHandler.HandleVerify)
	app.Post("/nylas/webhook", webhookHandler.HandleWebhook)

	integrationHandler, err := nylashdl.NewNylasIntegrationHandler()
	if err != nil {
		return fmt.Errorf("create nylas integration handler: %w", err)
	}
	app.Post("/nylas/create-integration", integrationHandler.HandleCreateIntegration)
	app.Get("/nylas/get-message", integrationHandler.HandleGetMessage)
	app.Post("/nylas/upload", integrationHandler.HandleUpload)
	app.Get("/nylas/get-attachment", integrationHandler.HandleGetAttachment)
	app.Post("/nylas/send", integrationHandler.HandleSendMessage)

	return nil
}
