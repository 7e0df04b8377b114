// Package parser reads delimited payroll files into header-keyed raw rows.
package parser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// headerAliases maps legacy column spellings to canonical names.
var headerAliases = map[string]string{
	"emp_id":   domain.FieldEmployeeID,
	"emp_name": domain.FieldEmployeeName,
	"dept":     domain.FieldDepartment,
}

var recognized = map[string]bool{
	domain.FieldEmployeeID:   true,
	domain.FieldEmployeeName: true,
	domain.FieldDepartment:   true,
	domain.FieldPayDate:      true,
	domain.FieldNotes:        true,
	domain.FieldHoursWorked:  true,
	domain.FieldHourlyRate:   true,
}

// File is one fully parsed source file
type File struct {
	Path   string
	Header map[string]int // canonical column name -> column index
	Rows   []domain.RawRow
}

// Parser reads delimited text files with a single header row
type Parser struct {
	comma rune
}

// New creates a parser for the given delimiter. The aliases "tab", "pipe"
// and "semicolon" are accepted; empty selects comma.
func New(delimiter string) (*Parser, error) {
	switch strings.ToLower(delimiter) {
	case "", ",", "comma":
		return &Parser{comma: ','}, nil
	case "\t", "\\t", "tab":
		return &Parser{comma: '\t'}, nil
	case "|", "pipe":
		return &Parser{comma: '|'}, nil
	case ";", "semicolon":
		return &Parser{comma: ';'}, nil
	}
	runes := []rune(delimiter)
	if len(runes) == 1 {
		return &Parser{comma: runes[0]}, nil
	}
	return nil, &domain.ConfigurationError{Field: "delimiter", Reason: fmt.Sprintf("unusable delimiter %q", delimiter)}
}

// ParseFile reads path in full. Header names are canonicalized, unrecognized
// columns are dropped, and cell values are trimmed. Rows whose cells are all
// empty are skipped. An unreadable, empty, or structurally malformed file is
// an error; the caller decides how to isolate it.
func (p *Parser) ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.Comma = p.comma
	// Inconsistent column counts are a row-level concern, not a file error.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited data: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	out := &File{Path: path, Header: canonicalizeHeader(all[0])}
	for i, cells := range all[1:] {
		if rowEmpty(cells) {
			continue
		}
		fields := make(map[string]string, len(out.Header))
		for name, col := range out.Header {
			if col < len(cells) {
				fields[name] = strings.TrimSpace(cells[col])
			} else {
				fields[name] = ""
			}
		}
		out.Rows = append(out.Rows, domain.RawRow{File: path, Line: i + 1, Fields: fields})
	}
	return out, nil
}

// canonicalName lowercases a header cell and joins its words with
// underscores, so "Hours Worked" and "hours_worked" match.
func canonicalName(h string) string {
	h = strings.TrimPrefix(h, "﻿")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Join(strings.Fields(h), "_")
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return h
}

func canonicalizeHeader(cells []string) map[string]int {
	header := make(map[string]int)
	for i, cell := range cells {
		name := canonicalName(cell)
		if !recognized[name] {
			continue
		}
		// first occurrence wins on duplicate headers
		if _, dup := header[name]; dup {
			continue
		}
		header[name] = i
	}
	return header
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
