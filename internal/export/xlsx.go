// Package export renders calculation results for the outside world:
// a spreadsheet file and a clipboard text block.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// xlsxHeaders is the fixed column layout of the spreadsheet export.
var xlsxHeaders = []string{"Element Name", "Size", "Length", "Parameter Name", "Source"}

const (
	xlsxSheet = "Element Lengths"
	headerRow = 1
	// dataStartRow leaves one blank row between the header and the data.
	dataStartRow = 3
)

// columnWidths pairs each column letter with a readable width.
var columnWidths = map[string]float64{
	"A": 40,
	"B": 14,
	"C": 20,
	"D": 22,
	"E": 10,
}

// WriteXLSX writes the result to an xlsx workbook at path.
// Layout: bold header in row 1, one row per record starting at row 3,
// then a totals row carrying the mm and m totals.
func WriteXLSX(path string, result *core.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}

	for i, header := range xlsxHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, rec := range result.Records {
		values := []any{rec.ElementName, rec.Size, rec.LengthDisplay, rec.ParameterName, rec.Source.String()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, dataStartRow+i)
			if err != nil {
				return fmt.Errorf("failed to build data cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}

	// Totals row directly below the data, in mm and m through the fixed
	// feet-to-meters constant
	totalRow := dataStartRow + len(result.Records)
	meters := result.Summary.TotalFeet * core.MetersPerFoot
	if err := f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", totalRow), "TOTAL"); err != nil {
		return fmt.Errorf("failed to write totals label: %w", err)
	}
	total := fmt.Sprintf("%.2f mm / %.2f m", meters*1000, meters)
	if err := f.SetCellValue(xlsxSheet, fmt.Sprintf("C%d", totalRow), total); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}
