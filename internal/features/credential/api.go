package credential

import (
	"go-ghlsync/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type CredentialApi struct {
	controller *CredentialController
}

func NewCredentialApi(controller *CredentialController) api.Route {
	return &CredentialApi{
		controller: controller,
	}
}

// Setup registers the OAuth endpoints for both upstreams. These are
// browser-facing redirect targets, so they stay outside the auth group.
func (h *CredentialApi) Setup(app *fiber.App) {
	accounts := app.Group("/accounts")

	accounts.Get("/auth/connect", h.controller.GHLConnect)
	accounts.Get("/auth/callback", h.controller.GHLCallback)
	accounts.Get("/auth/tokens", h.controller.GHLTokens)

	accounts.Get("/smartvault/connect", h.controller.SmartVaultConnect)
	accounts.Get("/smartvault/callback", h.controller.SmartVaultCallback)
	accounts.Get("/smartvault/auth", h.controller.SmartVaultAuth)
	accounts.Post("/smartvault/auth", h.controller.SmartVaultAuth)
	accounts.Post("/smartvault/refresh", h.controller.SmartVaultRefresh)
}
