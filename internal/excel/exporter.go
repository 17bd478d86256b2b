package excel

import (
	"fmt"

	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	conceptsSheet = "Concepts"
)

// ExportProgress writes a progress report workbook to path.
// The Summary sheet lists each phase and the overall total; the Concepts
// sheet lists every concept with its completion mark.
func ExportProgress(path string, roadmap models.Roadmap, summary progress.Summary, isCompleted func(conceptID string) bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(conceptsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{{"Phase", "Title", "Completed", "Total", "Progress"}}
	for _, p := range summary.Phases {
		rows = append(rows, []interface{}{p.PhaseID, p.Title, p.CompletedCount, p.TotalCount, round1(p.Progress)})
	}
	rows = append(rows, []interface{}{"overall", roadmap.Title, summary.CompletedCount, summary.TotalCount, round1(summary.Overall)})
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"Phase", "Concept", "Name", "Label", "Completed"}}
	for _, p := range roadmap.Phases {
		for _, c := range p.Concepts {
			rows = append(rows, []interface{}{p.ID, c.ID, c.Name, string(c.Label), isCompleted(c.ID)})
		}
	}
	if err := writeRows(f, conceptsSheet, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int64(progress.Clamp(v)*10+0.5)) / 10
}
