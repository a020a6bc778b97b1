package vault

import (
	"go-ghlsync/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type VaultApi struct {
	controller *VaultController
}

func NewVaultApi(controller *VaultController) api.Route {
	return &VaultApi{
		controller: controller,
	}
}

// Setup registers the inbound CRM webhook. The CRM cannot send a JWT,
// so the endpoint is unauthenticated like the OAuth callbacks.
func (h *VaultApi) Setup(app *fiber.App) {
	app.Get("/accounts/smartvault/webhook", h.controller.Describe)
	app.Post("/accounts/smartvault/webhook", h.controller.Webhook)
}
