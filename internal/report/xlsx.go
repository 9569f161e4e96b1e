package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes the tables as one XLSX workbook, one sheet per
// table, in the given order.
func WriteWorkbook(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return err
	}

	for i, t := range tables {
		if i == 0 {
			if err = f.SetSheetName("Sheet1", t.Name); err != nil {
				return err
			}
		} else {
			if _, err = f.NewSheet(t.Name); err != nil {
				return err
			}
		}
		if err = writeSheet(f, t, headerStyle); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	for col, value := range t.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err = f.SetCellValue(t.Name, cell, value); err != nil {
			return err
		}
		if err = f.SetCellStyle(t.Name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for rowIdx, row := range t.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(t.Name, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
