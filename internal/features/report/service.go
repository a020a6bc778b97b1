package report

import (
	"context"
	"fmt"
	"time"

	"go-ghlsync/internal/features/opportunity"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	ExportOpportunities(ctx context.Context) ([]byte, string, error)
}

type ReportServiceImpl struct {
	OppRepo opportunity.OpportunityRepository
}

func NewReportService(oppRepo opportunity.OpportunityRepository) ReportService {
	return &ReportServiceImpl{
		OppRepo: oppRepo,
	}
}

var opportunityColumns = []string{
	"ID", "Name", "Value", "Pipeline", "Stage", "Status",
	"Assigned To", "Contact", "Company", "Email", "Phone",
	"Created At", "Updated At",
}

// ExportOpportunities renders every synchronized opportunity into a
// single-sheet workbook.
func (s *ReportServiceImpl) ExportOpportunities(ctx context.Context) ([]byte, string, error) {
	opportunities, err := s.OppRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Opportunities"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range opportunityColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, opp := range opportunities {
		for colIdx, val := range opportunityRow(opp) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			switch v := val.(type) {
			case time.Time:
				f.SetCellValue(sheetName, cell, v.Format("2006-01-02 15:04:05"))
			case primitive.Decimal128:
				f.SetCellValue(sheetName, cell, v.String())
			default:
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}

	for i := range opportunityColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("opportunities_%s.xlsx", time.Now().Format("20060102_150405"))
	return buffer.Bytes(), filename, nil
}

func opportunityRow(opp opportunity.Opportunity) []any {
	return []any{
		opp.ID,
		opp.Name,
		opp.MonetaryValue,
		opp.PipelineName,
		opp.PipelineStageName,
		opp.Status,
		opp.AssignedUserName,
		opp.ContactName,
		opp.ContactCompanyName,
		opp.ContactEmail,
		opp.ContactPhone,
		opp.CreatedAt,
		opp.UpdatedAt,
	}
}
