// Package seed generates sample payroll input files for demos and local runs.
package seed

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// Presets accepted by Config.Preset.
const (
	PresetSmall  = "small"
	PresetMedium = "medium"
	PresetLarge  = "large"
)

var (
	departments = []string{"Sales", "Engineering", "IT", "HR", "Finance", "Marketing", "Operations", "Support"}
	firstNames  = []string{"Alice", "Bob", "Carol", "David", "Elena", "Frank", "Grace", "Henry", "Ivy", "James", "Karen", "Liam", "Mona", "Nadia", "Oscar", "Priya"}
	lastNames   = []string{"Nguyen", "Smith", "Garcia", "Chen", "Patel", "Johnson", "Kim", "Brown", "Okafor", "Ivanov", "Tanaka", "Muller"}
)

// Config controls how much sample data is generated and how it is shaped.
type Config struct {
	Preset    string // small, medium or large
	Employees int    // employees on the roster, overrides the preset when > 0
	Months    int    // one file per month, overrides the preset when > 0
	DirtyRows int    // malformed rows appended to each file
	Seed      int64  // rng seed; 0 seeds from the clock
	Delimiter string // field delimiter, default ","
}

type employee struct {
	id         string
	name       string
	department string
	rate       float64
}

// Generator writes sample payroll files shaped like real input, so the
// output can be fed straight to the run command.
type Generator struct {
	cfg Config
	rng *rand.Rand
	log zerolog.Logger
}

func presetCounts(preset string) (employees, months int, err error) {
	switch preset {
	case "", PresetSmall:
		return 8, 2, nil
	case PresetMedium:
		return 25, 3, nil
	case PresetLarge:
		return 120, 6, nil
	default:
		return 0, 0, &domain.ConfigurationError{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", preset)}
	}
}

// New builds a Generator. An unknown preset is a ConfigurationError.
func New(cfg Config, log zerolog.Logger) (*Generator, error) {
	employees, months, err := presetCounts(cfg.Preset)
	if err != nil {
		return nil, err
	}
	if cfg.Employees <= 0 {
		cfg.Employees = employees
	}
	if cfg.Months <= 0 {
		cfg.Months = months
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(rngSeed)), log: log}, nil
}

// WriteFiles writes one payroll file per month under dir and returns the
// paths in the order they were written, which is also lexicographic order.
func (g *Generator) WriteFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	roster := g.roster()
	month := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	paths := make([]string, 0, g.cfg.Months)
	for m := 0; m < g.cfg.Months; m++ {
		path := filepath.Join(dir, fmt.Sprintf("payroll_%s.csv", month.Format("2006_01")))
		if err := g.writeFile(path, roster, month); err != nil {
			return nil, err
		}
		g.log.Info().Str("file", path).Int("employees", len(roster)).Msg("sample file written")
		paths = append(paths, path)
		month = month.AddDate(0, 1, 0)
	}
	return paths, nil
}

// roster builds the employees that appear in every generated month.
func (g *Generator) roster() []employee {
	roster := make([]employee, 0, g.cfg.Employees)
	for i := 0; i < g.cfg.Employees; i++ {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]
		roster = append(roster, employee{
			id:         fmt.Sprintf("E%03d", i+1),
			name:       first + " " + last,
			department: departments[g.rng.Intn(len(departments))],
			rate:       18 + g.rng.Float64()*50,
		})
	}
	return roster
}

func (g *Generator) writeFile(path string, roster []employee, month time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = []rune(g.cfg.Delimiter)[0]

	header := []string{
		domain.FieldEmployeeID,
		domain.FieldEmployeeName,
		domain.FieldDepartment,
		domain.FieldHoursWorked,
		domain.FieldHourlyRate,
		domain.FieldPayDate,
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	payDate := month.AddDate(0, 1, -1).Format("2006-01-02")
	for _, e := range roster {
		// 24 to 56 hours keeps a realistic share of rows over the
		// 40-hour overtime line.
		hours := 24 + g.rng.Float64()*32
		record := []string{
			e.id,
			e.name,
			e.department,
			strconv.FormatFloat(hours, 'f', 1, 64),
			strconv.FormatFloat(e.rate, 'f', 2, 64),
			payDate,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	for i := 0; i < g.cfg.DirtyRows; i++ {
		if err := w.Write(g.dirtyRow(i, payDate)); err != nil {
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

// dirtyRow returns a malformed row the validator is guaranteed to reject,
// cycling through the rejection reasons an operator hits in practice.
func (g *Generator) dirtyRow(i int, payDate string) []string {
	dept := departments[g.rng.Intn(len(departments))]
	switch i % 4 {
	case 0:
		return []string{"", "No Id", dept, "40", "20.00", payDate}
	case 1:
		return []string{fmt.Sprintf("EBAD%02d", i), "Bad Hours", dept, "abc", "20.00", payDate}
	case 2:
		return []string{fmt.Sprintf("EBAD%02d", i), "No Department", "", "38", "19.00", payDate}
	default:
		return []string{fmt.Sprintf("EBAD%02d", i), "Negative Rate", dept, "40", "-5.00", payDate}
	}
}
