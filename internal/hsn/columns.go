package hsn

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Unresolved marks a field with no matching header cell.
const Unresolved = -1

const (
	CanonicalCode        = "HSNCode"
	CanonicalDescription = "Description"
)

// ColumnNames holds optional exact header names that take precedence over
// the canonical normalized match.
type ColumnNames struct {
	Code        string
	Description string
}

// ColumnMapping is the position of the code and description columns in one fetch.
type ColumnMapping struct {
	Code        int
	Description int
}

// Resolved reports whether both fields were bound.
func (m ColumnMapping) Resolved() bool {
	return m.Code != Unresolved && m.Description != Unresolved
}

// Missing lists the canonical names of unbound fields.
func (m ColumnMapping) Missing() []string {
	var missing []string
	if m.Code == Unresolved {
		missing = append(missing, CanonicalCode)
	}
	if m.Description == Unresolved {
		missing = append(missing, CanonicalDescription)
	}
	return missing
}

// Normalize lower-cases s and removes spaces and underscores.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// ResolveColumns maps the header row to the code and description fields.
// It has no side effects; use ReportUnresolved to surface missing fields.
func ResolveColumns(header []string, names ColumnNames) ColumnMapping {
	return ColumnMapping{
		Code:        resolveField(header, names.Code, CanonicalCode),
		Description: resolveField(header, names.Description, CanonicalDescription),
	}
}

func resolveField(header []string, override, canonical string) int {
	if override != "" {
		for i, name := range header {
			if name == override {
				return i
			}
		}
	}

	// first occurrence wins on duplicate normalized names
	want := Normalize(canonical)
	for i, name := range header {
		if Normalize(name) == want {
			return i
		}
	}
	return Unresolved
}

// ReportUnresolved logs a warning for every field the mapping could not bind.
func ReportUnresolved(m ColumnMapping, header []string, names ColumnNames) {
	if m.Code == Unresolved {
		log.Warn().
			Str("field", CanonicalCode).
			Str("override", names.Code).
			Strs("headers", header).
			Msg("Could not match HSN code column in sheet headers")
	}
	if m.Description == Unresolved {
		log.Warn().
			Str("field", CanonicalDescription).
			Str("override", names.Description).
			Strs("headers", header).
			Msg("Could not match description column in sheet headers")
	}
}
