package builder

import (
	"testing"
	"time"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("employee_id", "gross_pay").
			From("payroll_records").
			Where("load_batch_id = ?", "b1").
			Build()
		expected := "SELECT employee_id, gross_pay FROM payroll_records WHERE load_batch_id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != "b1" {
			t.Errorf("expected args [b1], got %v", args)
		}
	})

	t.Run("Select with multiple where conditions", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("employee_id").
			From("payroll_records").
			Where("superseded_at IS NULL").
			Where("source_file = ?", "jan.csv").
			Where("load_batch_id <> ?", "b1").
			Build()
		expected := "SELECT employee_id FROM payroll_records WHERE superseded_at IS NULL AND source_file = $1 AND load_batch_id <> $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("ingestion_log", "batch_id", "source_file", "status").
			Values("b1", "jan.csv", "loaded").
			Build()
		expected := "INSERT INTO ingestion_log (batch_id, source_file, status) VALUES ($1, $2, $3)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 || args[0] != "b1" || args[2] != "loaded" {
			t.Errorf("expected args [b1 jan.csv loaded], got %v", args)
		}
	})

	t.Run("Insert with conflict key", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("payroll_records", "employee_id", "load_batch_id", "source_file").
			Values("E001", "b1", "jan.csv").
			OnConflictDoNothing("employee_id", "load_batch_id", "source_file").
			Build()
		expected := "INSERT INTO payroll_records (employee_id, load_batch_id, source_file) VALUES ($1, $2, $3) " +
			"ON CONFLICT (employee_id, load_batch_id, source_file) DO NOTHING"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 3 {
			t.Errorf("expected 3 args, got %v", args)
		}
	})

	t.Run("Update places set args before where args", func(t *testing.T) {
		now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		b := NewSQLBuilder()
		query, args := b.Update("payroll_records").
			Set("superseded_at", now).
			Where("source_file = ?", "jan.csv").
			Where("superseded_at IS NULL").
			Build()
		expected := "UPDATE payroll_records SET superseded_at = $1 WHERE source_file = $2 AND superseded_at IS NULL"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != now || args[1] != "jan.csv" {
			t.Errorf("expected args [now jan.csv], got %v", args)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Delete("payroll_records").
			Where("superseded_at IS NOT NULL").
			Build()
		expected := "DELETE FROM payroll_records WHERE superseded_at IS NOT NULL"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 0 {
			t.Errorf("expected 0 args, got %v", args)
		}
	})
}

func TestSQLBuilderAggregates(t *testing.T) {
	t.Run("GroupBy with OrderBy", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("department", "SUM(gross_pay) AS total_gross_pay").
			From("payroll_records").
			Where("superseded_at IS NULL").
			GroupBy("department").
			OrderBy("total_gross_pay DESC").
			OrderBy("department ASC").
			Build()
		expected := "SELECT department, SUM(gross_pay) AS total_gross_pay FROM payroll_records " +
			"WHERE superseded_at IS NULL GROUP BY department ORDER BY total_gross_pay DESC, department ASC"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 0 {
			t.Errorf("expected 0 args, got %v", args)
		}
	})

	t.Run("Having numbers placeholders after where", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("employee_id", "COUNT(*) AS n").
			From("payroll_records").
			Where("load_batch_id = ?", "b1").
			GroupBy("employee_id").
			Having("COUNT(*) > ?", 1).
			Build()
		expected := "SELECT employee_id, COUNT(*) AS n FROM payroll_records WHERE load_batch_id = $1 " +
			"GROUP BY employee_id HAVING COUNT(*) > $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "b1" || args[1] != 1 {
			t.Errorf("expected args [b1 1], got %v", args)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		b := NewSQLBuilder()
		query, _ := b.Select("employee_id", "gross_pay").
			From("payroll_records").
			OrderBy("gross_pay DESC").
			Limit(5).
			Build()
		expected := "SELECT employee_id, gross_pay FROM payroll_records ORDER BY gross_pay DESC LIMIT 5"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})
}
