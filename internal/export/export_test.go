package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

func sampleReports() []domain.ReportTable {
	return []domain.ReportTable{
		{
			Name:    "department_summary",
			Title:   "Payroll Summary by Department",
			Columns: []string{"department", "employee_count", "total_gross_pay"},
			Rows: [][]interface{}{
				{"Sales", 2, 750.0},
				{"IT", 1, 480.0},
			},
		},
		{
			Name:    "monthly_summary",
			Title:   "Payroll Totals by Month",
			Columns: []string{"month", "total_gross_pay"},
			Rows: [][]interface{}{
				{"2024-01", 730.5},
			},
			Chart: &domain.ChartSpec{Title: "Gross Pay by Month", LabelCol: 0, ValueCol: 1},
		},
	}
}

func TestExcelSinkWrite(t *testing.T) {
	base := t.TempDir()
	sink := NewExcelSink(base, zerolog.Nop())

	path, err := sink.Write(context.Background(), sampleReports())
	require.NoError(t, err)
	assert.Equal(t, "payroll_report.xlsx", filepath.Base(path))
	assert.True(t, strings.HasPrefix(filepath.Base(filepath.Dir(path)), dirPrefix))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Department Summary", "Monthly Summary"}, f.GetSheetList())
	dept, err := f.GetCellValue("Department Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Sales", dept)
}

func TestExcelSinkNoReports(t *testing.T) {
	sink := NewExcelSink(t.TempDir(), zerolog.Nop())
	_, err := sink.Write(context.Background(), nil)
	assert.Error(t, err)
}

func TestCSVSinkWrite(t *testing.T) {
	base := t.TempDir()
	sink := NewCSVSink(base, zerolog.Nop())

	dir, err := sink.Write(context.Background(), sampleReports())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(dir), dirPrefix))

	data, err := os.ReadFile(filepath.Join(dir, "department_summary.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "department,employee_count,total_gross_pay", lines[0])
	assert.Equal(t, "Sales,2,750", lines[1])
	assert.Equal(t, "IT,1,480", lines[2])

	_, err = os.Stat(filepath.Join(dir, "monthly_summary.csv"))
	assert.NoError(t, err)
}

func TestNewSink(t *testing.T) {
	log := zerolog.Nop()

	sink, err := New("", t.TempDir(), log)
	require.NoError(t, err)
	assert.IsType(t, &ExcelSink{}, sink)

	sink, err = New("xlsx", t.TempDir(), log)
	require.NoError(t, err)
	assert.IsType(t, &ExcelSink{}, sink)

	sink, err = New(FormatCSV, t.TempDir(), log)
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, sink)

	_, err = New("pdf", t.TempDir(), log)
	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestNewSinks(t *testing.T) {
	log := zerolog.Nop()

	sinks, err := NewSinks(FormatBoth, t.TempDir(), log)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.IsType(t, &ExcelSink{}, sinks[0])
	assert.IsType(t, &CSVSink{}, sinks[1])

	sinks, err = NewSinks(FormatCSV, t.TempDir(), log)
	require.NoError(t, err)
	assert.Len(t, sinks, 1)

	_, err = NewSinks("pdf", t.TempDir(), log)
	assert.Error(t, err)
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "887.5", cellString(887.5))
	assert.Equal(t, "42", cellString(42))
	assert.Equal(t, "Sales", cellString("Sales"))
	assert.Equal(t, "", cellString(nil))
}
