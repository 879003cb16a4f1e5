package projections

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"citysense-be/models"

	"github.com/xuri/excelize/v2"
)

// ExportHeader is the column order of every export.
var ExportHeader = []string{
	"ID",
	"Title",
	"Category",
	"Priority",
	"Status",
	"Department",
	"Reporter",
	"Location",
	"Created Date",
}

const exportDateLayout = "02 Jan, 15:04"

// ExportRows builds one row per issue, in snapshot order.
func ExportRows(snapshot []models.Issue) [][]string {
	rows := make([][]string, 0, len(snapshot))
	for _, issue := range snapshot {
		rows = append(rows, []string{
			issue.ID.Hex(),
			issue.Title,
			string(issue.Category),
			string(issue.Priority),
			string(issue.Status),
			issue.AssignedDepartment,
			issue.Reporter.Name,
			issue.Location.Address,
			issue.CreatedAt.Local().Format(exportDateLayout),
		})
	}
	return rows
}

// ExportCSV serializes snapshot as CSV with a header row.
func ExportCSV(snapshot []models.Issue) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(ExportRows(snapshot)); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX serializes snapshot as a single-sheet Excel workbook.
func ExportXLSX(snapshot []models.Issue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Issues"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	rows := append([][]string{ExportHeader}, ExportRows(snapshot)...)
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(ExportHeader), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 26); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 40); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
