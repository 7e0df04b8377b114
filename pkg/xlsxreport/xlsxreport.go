// Package xlsxreport renders tabular reports into styled xlsx workbooks.
// Each table becomes one sheet with an optional title row, a styled frozen
// header and an optional bar chart beside the data.
package xlsxreport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Builtin number formats useful for report columns.
const (
	NumFmtDecimal = 2 // 0.00
	NumFmtMoney   = 4 // #,##0.00
)

const defaultColWidth = 14

// Column describes one table column.
type Column struct {
	Header string
	Width  float64 // zero picks a default
	NumFmt int     // excelize builtin format id, zero leaves cells general
}

// Table is one sheet worth of report rows.
type Table struct {
	Sheet   string
	Title   string
	Columns []Column
	Rows    [][]interface{}
	Chart   *BarChart
}

// BarChart asks for a column chart over two columns of the table.
type BarChart struct {
	Title    string
	LabelCol int // zero-based index of the category column
	ValueCol int // zero-based index of the value column
}

// WriteFile renders every table into its own sheet and saves the workbook
// at path. Sheets keep the order of the tables slice.
func WriteFile(path string, tables []Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	w, err := newWriter(f)
	if err != nil {
		return fmt.Errorf("failed to prepare styles: %w", err)
	}
	for i, table := range tables {
		if err := w.addSheet(i, table); err != nil {
			return fmt.Errorf("failed to render sheet %q: %w", table.Sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

type writer struct {
	f           *excelize.File
	titleStyle  int
	headerStyle int
	numFmts     map[int]int
}

func newWriter(f *excelize.File) (*writer, error) {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: hexColor("#FFFFFF")},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{hexColor("#4472C4")},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	return &writer{
		f:           f,
		titleStyle:  titleStyle,
		headerStyle: headerStyle,
		numFmts:     make(map[int]int),
	}, nil
}

func (w *writer) addSheet(index int, table Table) error {
	sheet := table.Sheet
	if index == 0 {
		if err := w.f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	if table.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetCellValue(sheet, cell, table.Title); err != nil {
			return err
		}
		if len(table.Columns) > 1 {
			end, _ := excelize.CoordinatesToCellName(len(table.Columns), row)
			if err := w.f.MergeCell(sheet, cell, end); err != nil {
				return err
			}
			if err := w.f.SetCellStyle(sheet, cell, end, w.titleStyle); err != nil {
				return err
			}
		} else if err := w.f.SetCellStyle(sheet, cell, cell, w.titleStyle); err != nil {
			return err
		}
		row++
	}

	headerRow := row
	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := w.f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, cell, cell, w.headerStyle); err != nil {
			return err
		}

		name, _ := excelize.ColumnNumberToName(i + 1)
		width := col.Width
		if width <= 0 {
			width = defaultColWidth
		}
		if err := w.f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	row++

	firstData := row
	for i := range table.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetSheetRow(sheet, cell, &table.Rows[i]); err != nil {
			return err
		}
		row++
	}
	lastData := row - 1

	if len(table.Rows) > 0 {
		for i, col := range table.Columns {
			if col.NumFmt == 0 {
				continue
			}
			styleID, err := w.numFmtStyle(col.NumFmt)
			if err != nil {
				return err
			}
			start, _ := excelize.CoordinatesToCellName(i+1, firstData)
			end, _ := excelize.CoordinatesToCellName(i+1, lastData)
			if err := w.f.SetCellStyle(sheet, start, end, styleID); err != nil {
				return err
			}
		}
	}

	topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
	if err := w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if table.Chart != nil && len(table.Rows) > 0 {
		if err := w.addChart(sheet, table, headerRow, firstData, lastData); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) numFmtStyle(code int) (int, error) {
	if id, ok := w.numFmts[code]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(&excelize.Style{NumFmt: code})
	if err != nil {
		return 0, err
	}
	w.numFmts[code] = id
	return id, nil
}

func (w *writer) addChart(sheet string, table Table, headerRow, firstData, lastData int) error {
	chart := table.Chart
	labels, err := excelize.ColumnNumberToName(chart.LabelCol + 1)
	if err != nil {
		return err
	}
	values, err := excelize.ColumnNumberToName(chart.ValueCol + 1)
	if err != nil {
		return err
	}

	// anchor the chart two columns right of the table
	anchor, err := excelize.CoordinatesToCellName(len(table.Columns)+2, headerRow)
	if err != nil {
		return err
	}

	return w.f.AddChart(sheet, anchor, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$%d", sheet, values, headerRow),
			Categories: fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, labels, firstData, labels, lastData),
			Values:     fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, values, firstData, values, lastData),
		}},
		Title:  []excelize.RichTextRun{{Text: chart.Title}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
}

func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}
