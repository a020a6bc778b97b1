package opportunity

import (
	"github.com/gofiber/fiber/v2"
)

type OpportunityController struct {
	Repo OpportunityRepository
}

func NewOpportunityController(repo OpportunityRepository) *OpportunityController {
	return &OpportunityController{
		Repo: repo,
	}
}

// List returns synchronized opportunities, newest update first
func (ctrl *OpportunityController) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 50))
	offset := int64(c.QueryInt("offset", 0))

	opportunities, err := ctrl.Repo.List(c.Context(), limit, offset)
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
		"opportunities": opportunities,
		"count":         len(opportunities),
		"total":         total,
	})
}
