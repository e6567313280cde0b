// Package router đăng ký toàn bộ route của service lên Fiber app
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	integrationhdl "github.com/gopait/erxes-integrations/internal/api/integration/handler"
	nylasrouter "github.com/gopait/erxes-integrations/internal/api/nylas/router"
)

// SetupRoutes đăng ký tất cả route: health check, quản lý integration
// và domain Nylas.
func SetupRoutes(app *fiber.App) error {
	// Health check cho load balancer / orchestrator
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	integrationHandler, err := integrationhdl.NewIntegrationHandler()
	if err != nil {
		return fmt.Errorf("create integration handler: %w", err)
	}
	app.Get("/integrations", integrationHandler.HandleFindIntegrations)
	app.Post("/integrations/remove", integrationHandler.HandleRemoveIntegration)

	if err := nylasrouter.Register(app); err != nil {
		return fmt.Errorf("register nylas routes: %w", err)
	}

	return nil
}
