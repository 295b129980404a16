// Package csvimport turns uploaded CSV files into candidate leads.
//
// Parsing is all-or-nothing: a file either yields every row that carries a
// name, email and phone, or it is rejected as a whole. Rows missing one of
// those fields are dropped silently; there is no per-row error report.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"conectaleads/internal/model"
)

var (
	ErrTooFewLines       = errors.New("file must contain a header row and at least one data row")
	ErrNoValidLeads      = errors.New("no valid leads found in file; check that the name, email and phone columns are present")
	ErrMalformed         = errors.New("malformed csv file")
	ErrUnsupportedFormat = errors.New("excel import is not supported; use CSV files")
)

// Canonical field names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldCity     = "city"
	FieldPlanType = "plan_type"
)

// headerAliases maps lower-cased, trimmed header cells to canonical fields.
var headerAliases = map[string]string{
	"nome":          FieldName,
	"name":          FieldName,
	"email":         FieldEmail,
	"e-mail":        FieldEmail,
	"telefone":      FieldPhone,
	"phone":         FieldPhone,
	"cidade":        FieldCity,
	"city":          FieldCity,
	"tipo de plano": FieldPlanType,
	"tipo_plano":    FieldPlanType,
	"plano":         FieldPlanType,
	"plan":          FieldPlanType,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CanonicalField returns the canonical field for a header cell, matching
// case-insensitively. ok is false for unrecognized headers.
func CanonicalField(header string) (field string, ok bool) {
	field, ok = headerAliases[strings.ToLower(strings.TrimSpace(header))]
	return field, ok
}

// ParseFile rejects spreadsheet uploads by extension and parses everything
// else as CSV.
func ParseFile(r io.Reader, filename string) ([]model.ImportedLead, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls", ".xlsx":
		return nil, ErrUnsupportedFormat
	}
	return Parse(r)
}

// Parse reads a whole CSV document and returns the accepted leads.
// The first non-blank record is the header row.
func Parse(r io.Reader) ([]model.ImportedLead, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	records, err := readRecords(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrTooFewLines
	}

	fields := make([]string, len(records[0]))
	for i, h := range records[0] {
		fields[i], _ = CanonicalField(h)
	}

	leads := make([]model.ImportedLead, 0, len(records)-1)
	for _, rec := range records[1:] {
		if lead, ok := buildLead(fields, rec); ok {
			leads = append(leads, lead)
		}
	}
	if len(leads) == 0 {
		return nil, ErrNoValidLeads
	}
	return leads, nil
}

func readRecords(data []byte) ([][]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	lines := lineOffsets(data)

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for i := range rec {
			line, col := cr.FieldPos(i)
			start := lines[line-1] + col - 1
			if start < len(data) && data[start] == '"' && !quoteClosed(data, start) {
				return nil, fmt.Errorf("%w: unterminated quoted field at line %d", ErrMalformed, line)
			}
		}
		if isBlank(rec) {
			continue
		}
		records = append(records, rec)
	}
}

// lineOffsets returns the byte offset where each line starts.
func lineOffsets(data []byte) []int {
	offsets := []int{0}
	for i, b := range data {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// quoteClosed reports whether the quoted field opening at data[start] ends
// before EOF. With lazy quotes a quote only closes the field when followed by
// a delimiter, a line break or the end of input; anything else is literal.
func quoteClosed(data []byte, start int) bool {
	for i := start + 1; i < len(data); i++ {
		if data[i] != '"' {
			continue
		}
		if i+1 == len(data) {
			return true
		}
		switch data[i+1] {
		case '"':
			i++
		case ',', '\n', '\r':
			return true
		}
	}
	return false
}

// isBlank reports whether a line held nothing but whitespace. Rows made of
// empty delimited cells still count as data rows.
func isBlank(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}

// buildLead assigns values to fields by column position. Later columns mapped
// to the same field win when non-empty.
func buildLead(fields, rec []string) (model.ImportedLead, bool) {
	values := make(map[string]string, len(headerAliases))
	for i, field := range fields {
		if field == "" || i >= len(rec) {
			continue
		}
		if v := cleanValue(rec[i]); v != "" {
			values[field] = v
		}
	}

	lead := model.ImportedLead{
		Name:     values[FieldName],
		Email:    values[FieldEmail],
		Phone:    values[FieldPhone],
		City:     optional(values[FieldCity]),
		PlanType: optional(values[FieldPlanType]),
	}
	if lead.Name == "" || lead.Email == "" || lead.Phone == "" {
		return model.ImportedLead{}, false
	}
	return lead, true
}

func cleanValue(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, `"`, ""))
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
