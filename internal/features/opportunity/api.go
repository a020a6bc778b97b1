package opportunity

import (
	"go-ghlsync/internal/common/api"
	"go-ghlsync/internal/config"
	"go-ghlsync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OpportunityApi struct {
	controller *OpportunityController
	config     *config.Config
}

func NewOpportunityApi(controller *OpportunityController, config *config.Config) api.Route {
	return &OpportunityApi{
		controller: controller,
		config:     config,
	}
}

func (h *OpportunityApi) Setup(app *fiber.App) {
	group := app.Group("/api/opportunities", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
}
