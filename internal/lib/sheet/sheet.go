// Package sheet renders dashboard tables as XLSX workbooks.
package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Table struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

func Write(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(table.Name)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if table.Name != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for col, title := range table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, cell, title); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}

	for i, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(table.Name, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	return f.Write(w)
}
