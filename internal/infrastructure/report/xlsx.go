// Package report renders dashboard aggregates into downloadable files.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/contractlens/legal-intel/internal/core/domain"
)

// XLSXRenderer writes dashboard counts into a workbook with one sheet
// per metadata domain. Labels are sorted for stable output.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Render(counts domain.DashboardCounts) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheets := []struct {
		name   string
		header string
		counts map[string]int
	}{
		{"Agreement Types", "Agreement Type", counts.AgreementTypes},
		{"Governing Laws", "Governing Law", counts.GoverningLaws},
		{"Industries", "Industry", counts.Industries},
		{"Geographies", "Geography", counts.Geographies},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := workbook.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := workbook.NewSheet(sheet.name); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeSheet(workbook, sheet.name, sheet.header, sheet.counts); err != nil {
			return nil, err
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(workbook *excelize.File, sheet, header string, counts map[string]int) error {
	if err := workbook.SetSheetRow(sheet, "A1", &[]any{header, "Documents"}); err != nil {
		return fmt.Errorf("write header on %s: %w", sheet, err)
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for i, label := range labels {
		cell := fmt.Sprintf("A%d", i+2)
		if err := workbook.SetSheetRow(sheet, cell, &[]any{label, counts[label]}); err != nil {
			return fmt.Errorf("write row on %s: %w", sheet, err)
		}
	}
	return nil
}
