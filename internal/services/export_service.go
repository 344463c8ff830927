package services

import (
	"fmt"
	"strings"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Projects"

var exportHeaders = []string{
	"ID", "Name", "Description", "Link", "Author", "Language",
	"Category", "Technologies", "Stars", "Forks",
}

// ExportService renders the project set as an Excel workbook
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildWorkbook creates a single-sheet workbook listing the given projects
func (s *ExportService) BuildWorkbook(projects []*models.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, project := range projects {
		values := []interface{}{
			project.ID,
			project.Name,
			project.Description,
			project.Link,
			project.Author,
			project.Language,
			project.Category,
			strings.Join(project.Technologies, ", "),
			project.Stars,
			project.Forks,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
