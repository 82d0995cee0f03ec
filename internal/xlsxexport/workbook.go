// Package xlsxexport renders extraction results as an Excel workbook.
package xlsxexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"flowcase/internal/csvexport"
	"flowcase/internal/domain"
)

// SheetName is the name of the scenarios worksheet.
const SheetName = "Scenarios"

// BuildWorkbook creates a workbook with one sheet: the CSV header columns
// followed by one row per scenario. The caller owns closing the file.
func BuildWorkbook(scenarios []domain.Scenario) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, name := range csvexport.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i := range scenarios {
		row := csvexport.ScenarioToRow(&scenarios[i])
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, val); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", i, err)
			}
		}
	}

	// Wide columns for the free-text fields.
	if err := f.SetColWidth(SheetName, "A", "E", 40); err != nil {
		return nil, err
	}

	return f, nil
}

// BuildFilename returns the download filename for the workbook.
func BuildFilename(documentName string) string {
	name := csvexport.BuildFilename(documentName)
	return name[:len(name)-len(".csv")] + ".xlsx"
}
