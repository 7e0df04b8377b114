// Package tax implements the withholding policies applied during cleaning.
package tax

import (
	"fmt"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// Policy names accepted in configuration.
const (
	PolicyFlatRate  = "flat_rate"
	PolicyBracketed = "bracketed"
)

// DefaultFlatRate is the withholding rate used when none is configured.
const DefaultFlatRate = 0.10

// Policy computes the tax withheld from a gross pay amount
type Policy interface {
	Name() string
	Withhold(gross float64) float64
}

// New builds the policy selected by name. Policy parameters are validated
// here, at startup, so a malformed policy never reaches row processing.
func New(name string, flatRate float64, brackets []Bracket) (Policy, error) {
	switch name {
	case "", PolicyFlatRate:
		return NewFlatRate(flatRate)
	case PolicyBracketed:
		return NewBracketed(brackets)
	default:
		return nil, &domain.ConfigurationError{Field: "tax_policy", Reason: fmt.Sprintf("unknown policy %q", name)}
	}
}

// FlatRate withholds a fixed fraction of gross pay
type FlatRate struct {
	rate float64
}

// NewFlatRate creates a flat-rate policy. A zero rate falls back to the
// default rate; negative rates and rates above 1 are rejected.
func NewFlatRate(rate float64) (*FlatRate, error) {
	if rate == 0 {
		rate = DefaultFlatRate
	}
	if rate < 0 || rate > 1 {
		return nil, &domain.ConfigurationError{Field: "tax.flat_rate", Reason: fmt.Sprintf("rate %v outside [0, 1]", rate)}
	}
	return &FlatRate{rate: rate}, nil
}

func (p *FlatRate) Name() string { return PolicyFlatRate }

func (p *FlatRate) Withhold(gross float64) float64 {
	if gross <= 0 {
		return 0
	}
	return gross * p.rate
}

// Bracket taxes the portion of gross pay between the previous bound and
// UpperBound at Rate. UpperBound <= 0 marks the final, unbounded bracket.
type Bracket struct {
	UpperBound float64 `yaml:"upper_bound" json:"upper_bound"`
	Rate       float64 `yaml:"rate" json:"rate"`
}

// Bracketed withholds progressively across ordered brackets
type Bracketed struct {
	brackets []Bracket
}

// NewBracketed creates a bracketed policy. Bounds must be strictly ascending,
// rates must lie in [0, 1], and the final bracket must be unbounded.
func NewBracketed(brackets []Bracket) (*Bracketed, error) {
	if len(brackets) == 0 {
		return nil, &domain.ConfigurationError{Field: "tax.brackets", Reason: "bracketed policy requires at least one bracket"}
	}
	prev := 0.0
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return nil, &domain.ConfigurationError{Field: "tax.brackets", Reason: fmt.Sprintf("bracket %d: rate %v outside [0, 1]", i, b.Rate)}
		}
		last := i == len(brackets)-1
		if last {
			if b.UpperBound > 0 {
				return nil, &domain.ConfigurationError{Field: "tax.brackets", Reason: "final bracket must be unbounded"}
			}
			continue
		}
		if b.UpperBound <= prev {
			return nil, &domain.ConfigurationError{Field: "tax.brackets", Reason: fmt.Sprintf("bracket %d: bound %v not above %v", i, b.UpperBound, prev)}
		}
		prev = b.UpperBound
	}
	return &Bracketed{brackets: brackets}, nil
}

func (p *Bracketed) Name() string { return PolicyBracketed }

func (p *Bracketed) Withhold(gross float64) float64 {
	if gross <= 0 {
		return 0
	}
	var tax float64
	lower := 0.0
	for _, b := range p.brackets {
		if b.UpperBound <= 0 || gross <= b.UpperBound {
			tax += (gross - lower) * b.Rate
			return tax
		}
		tax += (b.UpperBound - lower) * b.Rate
		lower = b.UpperBound
	}
	return tax
}
