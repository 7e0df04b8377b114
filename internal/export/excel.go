package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/pkg/xlsxreport"
)

const workbookName = "payroll_report.xlsx"

// ExcelSink writes every report table into one workbook, a sheet per table.
type ExcelSink struct {
	dir   string
	title cases.Caser
	log   zerolog.Logger
}

// NewExcelSink creates a sink writing under dir.
func NewExcelSink(dir string, log zerolog.Logger) *ExcelSink {
	return &ExcelSink{dir: dir, title: cases.Title(language.English), log: log}
}

// Write renders the workbook and returns its path.
func (s *ExcelSink) Write(ctx context.Context, reports []domain.ReportTable) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", fmt.Errorf("no report tables to export")
	}

	dir, err := newReportDir(s.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, workbookName)
	if err := xlsxreport.WriteFile(path, s.workbook(reports)); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}
	s.log.Info().Str("path", path).Int("sheets", len(reports)).Msg("wrote excel report")
	return path, nil
}

func (s *ExcelSink) workbook(reports []domain.ReportTable) []xlsxreport.Table {
	tables := make([]xlsxreport.Table, 0, len(reports))
	for _, r := range reports {
		t := xlsxreport.Table{
			Sheet: s.sheetName(r.Name),
			Title: r.Title,
			Rows:  r.Rows,
		}
		for _, col := range r.Columns {
			t.Columns = append(t.Columns, xlsxreport.Column{
				Header: col,
				Width:  colWidth(col),
				NumFmt: colNumFmt(col),
			})
		}
		if r.Chart != nil {
			t.Chart = &xlsxreport.BarChart{
				Title:    r.Chart.Title,
				LabelCol: r.Chart.LabelCol,
				ValueCol: r.Chart.ValueCol,
			}
		}
		tables = append(tables, t)
	}
	return tables
}

// sheetName turns a table name like "department_summary" into a sheet label.
func (s *ExcelSink) sheetName(name string) string {
	return s.title.String(strings.ReplaceAll(name, "_", " "))
}

func colNumFmt(col string) int {
	switch {
	case strings.HasSuffix(col, "_pay") || col == "total_tax":
		return xlsxreport.NumFmtMoney
	case strings.HasSuffix(col, "_hours") || col == "hours_worked":
		return xlsxreport.NumFmtDecimal
	}
	return 0
}

func colWidth(col string) float64 {
	if w := len(col) + 4; w > 12 {
		return float64(w)
	}
	return 12
}
