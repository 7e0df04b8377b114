package cleaner

import (
	"math"
	"testing"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/internal/tax"
)

func flatTen(t *testing.T) tax.Policy {
	t.Helper()
	p, err := tax.NewFlatRate(0.10)
	if err != nil {
		t.Fatalf("failed to build policy: %v", err)
	}
	return p
}

func raw(fields map[string]string) domain.RawRow {
	return domain.RawRow{File: "jan.csv", Line: 3, Fields: fields}
}

func TestClean(t *testing.T) {
	t.Run("valid row becomes a record", func(t *testing.T) {
		c := New(flatTen(t))
		rec, rejects := c.Clean(raw(map[string]string{
			domain.FieldEmployeeID:  " E001 ",
			domain.FieldDepartment:  "sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25",
		}), "batch-1")
		if rejects != nil {
			t.Fatalf("unexpected rejections: %v", rejects)
		}
		if rec.EmployeeID != "E001" {
			t.Errorf("expected trimmed id E001, got %q", rec.EmployeeID)
		}
		if rec.Department != "Sales" {
			t.Errorf("expected canonical Sales, got %q", rec.Department)
		}
		if rec.GrossPay != 1000 {
			t.Errorf("expected gross 1000, got %v", rec.GrossPay)
		}
		if rec.Tax != 100 {
			t.Errorf("expected tax 100, got %v", rec.Tax)
		}
		if rec.NetPay != 900 {
			t.Errorf("expected net 900, got %v", rec.NetPay)
		}
		if rec.LoadBatchID != "batch-1" || rec.SourceFile != "jan.csv" {
			t.Errorf("provenance not carried: %+v", rec)
		}
	})

	t.Run("non-numeric hours yields rejection never a record", func(t *testing.T) {
		c := New(flatTen(t))
		for _, hours := range []string{"forty", "", "4O", "NaN"} {
			rec, rejects := c.Clean(raw(map[string]string{
				domain.FieldEmployeeID:  "E001",
				domain.FieldDepartment:  "Sales",
				domain.FieldHoursWorked: hours,
				domain.FieldHourlyRate:  "25",
			}), "b")
			if rec != nil {
				t.Errorf("hours=%q: expected no record, got %+v", hours, rec)
			}
			if len(rejects) == 0 {
				t.Errorf("hours=%q: expected rejections", hours)
			}
		}
	})

	t.Run("derived fields are consistent", func(t *testing.T) {
		brackets := []tax.Bracket{
			{UpperBound: 500, Rate: 0.10},
			{UpperBound: 0, Rate: 0.25},
		}
		bracketed, err := tax.NewBracketed(brackets)
		if err != nil {
			t.Fatalf("failed to build policy: %v", err)
		}
		for _, policy := range []tax.Policy{flatTen(t), bracketed} {
			rec, rejects := New(policy).Clean(raw(map[string]string{
				domain.FieldEmployeeID:  "E001",
				domain.FieldDepartment:  "Sales",
				domain.FieldHoursWorked: "37.5",
				domain.FieldHourlyRate:  "31.20",
			}), "b")
			if rejects != nil {
				t.Fatalf("unexpected rejections: %v", rejects)
			}
			if math.Abs(rec.GrossPay-rec.HoursWorked*rec.HourlyRate) > 1e-9 {
				t.Errorf("%s: gross %v != hours*rate", policy.Name(), rec.GrossPay)
			}
			if math.Abs(rec.NetPay-(rec.GrossPay-rec.Tax)) > 1e-9 {
				t.Errorf("%s: net %v != gross-tax", policy.Name(), rec.NetPay)
			}
			if rec.Tax < 0 || rec.Tax > rec.GrossPay {
				t.Errorf("%s: tax %v outside [0, gross]", policy.Name(), rec.Tax)
			}
		}
	})

	t.Run("overtime split above forty hours", func(t *testing.T) {
		c := New(flatTen(t))
		rec, _ := c.Clean(raw(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "45.5",
			domain.FieldHourlyRate:  "20",
		}), "b")
		if !rec.Overtime {
			t.Error("expected overtime flag")
		}
		if rec.RegularHours != 40 || math.Abs(rec.OvertimeHours-5.5) > 1e-9 {
			t.Errorf("unexpected split: regular=%v overtime=%v", rec.RegularHours, rec.OvertimeHours)
		}
		if rec.GrossPay != 910 {
			t.Errorf("overtime must not change gross, got %v", rec.GrossPay)
		}
	})

	t.Run("no overtime at exactly forty hours", func(t *testing.T) {
		c := New(flatTen(t))
		rec, _ := c.Clean(raw(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "20",
		}), "b")
		if rec.Overtime || rec.OvertimeHours != 0 || rec.RegularHours != 40 {
			t.Errorf("unexpected overtime split: %+v", rec)
		}
	})

	t.Run("optional columns are normalized when present", func(t *testing.T) {
		c := New(flatTen(t))
		rec, rejects := c.Clean(raw(map[string]string{
			domain.FieldEmployeeID:   "E001",
			domain.FieldEmployeeName: "  jane DOE ",
			domain.FieldDepartment:   "it",
			domain.FieldPayDate:      "2024/03/15",
			domain.FieldNotes:        " late submission ",
			domain.FieldHoursWorked:  "38",
			domain.FieldHourlyRate:   "30",
		}), "b")
		if rejects != nil {
			t.Fatalf("unexpected rejections: %v", rejects)
		}
		if rec.EmployeeName != "Jane Doe" {
			t.Errorf("expected Jane Doe, got %q", rec.EmployeeName)
		}
		if rec.Department != "It" {
			t.Errorf("expected It, got %q", rec.Department)
		}
		if rec.PayDate != "2024-03-15" {
			t.Errorf("expected normalized date, got %q", rec.PayDate)
		}
		if rec.Notes != "late submission" {
			t.Errorf("expected trimmed notes, got %q", rec.Notes)
		}
	})
}

func TestCanonicalDepartment(t *testing.T) {
	c := New(flatTen(t))
	for _, in := range []string{"Sales", "sales", " SALES ", "sALeS"} {
		if got := c.CanonicalDepartment(in); got != "Sales" {
			t.Errorf("CanonicalDepartment(%q) = %q, want Sales", in, got)
		}
	}
	if got := c.CanonicalDepartment("human  resources"); got != "Human Resources" {
		t.Errorf("expected Human Resources, got %q", got)
	}
}
