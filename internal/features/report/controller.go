package report

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Service ReportService
}

func NewReportController(service ReportService) *ReportController {
	return &ReportController{
		Service: service,
	}
}

// ExportOpportunities streams the opportunity workbook as a download
func (ctrl *ReportController) ExportOpportunities(c *fiber.Ctx) error {
	data, filename, err := ctrl.Service.ExportOpportunities(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
