package domain

import "fmt"

// Validation rule identifiers reported by store validation.
const (
	RuleGrossNegative   = "gross_negative"
	RuleNetExceedsGross = "net_exceeds_gross"
	RuleDuplicateKey    = "duplicate_key"
	RuleBlankDepartment = "blank_department"
	RuleGrossMismatch   = "gross_mismatch"
)

// RowRejected reports a single input row that failed validation.
// The row never reaches the store; the rest of its file continues.
type RowRejected struct {
	File   string `json:"file"`
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *RowRejected) Error() string {
	return fmt.Sprintf("row rejected: %s row %d: %s: %s", e.File, e.Row, e.Field, e.Reason)
}

// FileFailed reports a source file the batch could not load at all
type FileFailed struct {
	File string
	Err  error
}

func (e *FileFailed) Error() string {
	return fmt.Sprintf("file failed: %s: %v", e.File, e.Err)
}

func (e *FileFailed) Unwrap() error { return e.Err }

// StoreWriteFailed reports a persistence failure that is not a key collision
type StoreWriteFailed struct {
	File string
	Err  error
}

func (e *StoreWriteFailed) Error() string {
	return fmt.Sprintf("store write failed: %s: %v", e.File, e.Err)
}

func (e *StoreWriteFailed) Unwrap() error { return e.Err }

// ValidationViolation reports one integrity rule broken by stored data.
// Validation only reports; it never repairs.
type ValidationViolation struct {
	Rule   string `json:"rule"`
	Count  int    `json:"count"`
	Detail string `json:"detail"`
}

func (e *ValidationViolation) Error() string {
	return fmt.Sprintf("validation violation: %s (%d rows): %s", e.Rule, e.Count, e.Detail)
}

// ConfigurationError reports an invalid configuration value, raised at
// startup before any file is touched
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
