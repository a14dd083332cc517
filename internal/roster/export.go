package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	missingValue   = "N/A"
	missingRemarks = "No remarks yet."
	defaultSheet   = "Sheet1"
)

var exportHeader = []any{"Roll No", "Name", "Section", "Remarks"}

// Export writes classes as an XLSX workbook with one sheet per class.
func Export(w io.Writer, classes []Class) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(classes) == 0 {
		if err := f.SetSheetName(defaultSheet, "Roster"); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		if err := f.SetSheetRow("Roster", "A1", &exportHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, c := range classes {
		sheet := sheetName(c)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}

		for j, st := range c.Students {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			row := []any{
				orDefault(st.RollNo, missingValue),
				st.Name,
				orDefault(st.Section, missingValue),
				orDefault(st.Remarks, missingRemarks),
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, j+2, err)
			}
		}
	}

	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetName uses the class name, falling back to the id when the name
// contains characters excel rejects. Sheet names are capped at 31 runes.
func sheetName(c Class) string {
	name := c.Name
	if name == "" || strings.ContainsAny(name, `[]:*?/\`) {
		name = c.ID
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
