// Package export writes finished report tables to files. Every run gets its
// own timestamped directory under the configured export root so reruns never
// clobber earlier output.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// Output formats.
const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatBoth  = "both"
)

const dirPrefix = "payroll_reports_"

// New picks a sink for the given format. Reports land under baseDir.
func New(format, baseDir string, log zerolog.Logger) (domain.ReportSink, error) {
	switch format {
	case "", FormatExcel, "xlsx":
		return NewExcelSink(baseDir, log), nil
	case FormatCSV:
		return NewCSVSink(baseDir, log), nil
	default:
		return nil, &domain.ConfigurationError{Field: "export_format", Reason: fmt.Sprintf("unknown format %q", format)}
	}
}

// NewSinks expands the format selection into sinks, "both" yielding excel
// and csv together.
func NewSinks(format, baseDir string, log zerolog.Logger) ([]domain.ReportSink, error) {
	formats := []string{format}
	if format == FormatBoth {
		formats = []string{FormatExcel, FormatCSV}
	}
	sinks := make([]domain.ReportSink, 0, len(formats))
	for _, f := range formats {
		sink, err := New(f, baseDir, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

// newReportDir creates the timestamped output directory for one export run.
func newReportDir(base string) (string, error) {
	if base == "" {
		base = "."
	}
	dir := filepath.Join(base, dirPrefix+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	return dir, nil
}
