package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{
		Service: service,
	}
}

// RunAll triggers a combined contact and opportunity sync
func (ctrl *SyncController) RunAll(c *fiber.Ctx) error {
	summary, err := ctrl.Service.RunAll(c.Context())
	return ctrl.respond(c, summary, err)
}

// RunOpportunities triggers an opportunity-only sync
func (ctrl *SyncController) RunOpportunities(c *fiber.Ctx) error {
	summary, err := ctrl.Service.RunOpportunities(c.Context())
	return ctrl.respond(c, summary, err)
}

// RunContacts triggers a contact-only sync
func (ctrl *SyncController) RunContacts(c *fiber.Ctx) error {
	summary, err := ctrl.Service.RunContacts(c.Context())
	return ctrl.respond(c, summary, err)
}

// ListLogs returns recent sync run records, newest first
func (ctrl *SyncController) ListLogs(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 20))

	logs, err := ctrl.Service.ListLogs(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}

func (ctrl *SyncController) respond(c *fiber.Ctx, summary *RunSummary, err error) error {
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   err.Error(),
			"summary": summary,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Sync completed",
		"summary": summary,
	})
}
