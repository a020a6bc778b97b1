package contact

import (
	"go-ghlsync/internal/common/api"
	"go-ghlsync/internal/config"
	"go-ghlsync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContactApi struct {
	controller *ContactController
	config     *config.Config
}

func NewContactApi(controller *ContactController, config *config.Config) api.Route {
	return &ContactApi{
		controller: controller,
		config:     config,
	}
}

func (h *ContactApi) Setup(app *fiber.App) {
	group := app.Group("/api/contacts", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", h.controller.List)
}
