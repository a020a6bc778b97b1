package sync

import (
	"go-ghlsync/internal/common/api"
	"go-ghlsync/internal/config"
	"go-ghlsync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) api.Route {
	return &SyncApi{
		controller: controller,
		config:     config,
	}
}

func (h *SyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/sync", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/run", h.controller.RunAll)
	group.Post("/opportunities", h.controller.RunOpportunities)
	group.Post("/contacts", h.controller.RunContacts)
	group.Get("/logs", h.controller.ListLogs)
}
