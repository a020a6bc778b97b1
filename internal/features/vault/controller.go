package vault

import (
	"github.com/gofiber/fiber/v2"
)

type VaultController struct {
	Service VaultService
}

func NewVaultController(service VaultService) *VaultController {
	return &VaultController{
		Service: service,
	}
}

// Describe answers GET probes so the webhook URL can be verified
// from a browser before wiring it into a workflow
func (ctrl *VaultController) Describe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"endpoint": "smartvault webhook",
		"method":   "POST",
		"fields":   []string{"first_name", "last_name", "email", "phone"},
	})
}

// Webhook accepts a CRM workflow payload and creates a vault client
func (ctrl *VaultController) Webhook(c *fiber.Ctx) error {
	var req WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.CreateClient(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created",
		"result":  result,
	})
}
