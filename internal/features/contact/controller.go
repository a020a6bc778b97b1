package contact

import (
	"github.com/gofiber/fiber/v2"
)

type ContactController struct {
	Repo ContactRepository
}

func NewContactController(repo ContactRepository) *ContactController {
	return &ContactController{
		Repo: repo,
	}
}

// List returns synchronized contacts, newest first
func (ctrl *ContactController) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	contacts, err := ctrl.Repo.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	total, err := ctrl.Repo.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"contacts": contacts,
		"count":    len(contacts),
		"total":    total,
	})
}
