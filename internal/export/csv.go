package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// CSVSink writes one csv file per report table into the run directory.
type CSVSink struct {
	dir string
	log zerolog.Logger
}

// NewCSVSink creates a sink writing under dir.
func NewCSVSink(dir string, log zerolog.Logger) *CSVSink {
	return &CSVSink{dir: dir, log: log}
}

// Write renders the csv files and returns the run directory.
func (s *CSVSink) Write(ctx context.Context, reports []domain.ReportTable) (string, error) {
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
	for _, table := range reports {
		path := filepath.Join(dir, table.Name+".csv")
		if err := writeCSV(path, table); err != nil {
			return "", err
		}
	}
	s.log.Info().Str("dir", dir).Int("files", len(reports)).Msg("wrote csv reports")
	return dir, nil
}

func writeCSV(path string, table domain.ReportTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
