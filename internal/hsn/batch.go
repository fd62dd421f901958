package hsn

import (
	"fmt"
	"strings"
)

// Status values for ValidationResult.
const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

const (
	msgEmpty       = "HSN code cannot be empty."
	msgNotNumeric  = "HSN code must be numeric."
	msgNotFound    = "HSN code not found in master data."
	msgUnavailable = "HSN master data not available: %v"
)

// ValidationResult is the user-facing verdict for one submitted code.
type ValidationResult struct {
	Code        string `json:"hsn_code"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// Valid reports whether the code was found in the master data.
func (r ValidationResult) Valid() bool {
	return r.Status == StatusValid
}

// ValidateCodes checks each submitted code after trimming it. When the master
// data is unusable (incomplete mapping or no data rows) every code is an
// error, before any per-code check. Otherwise empty or non-numeric codes are
// rejected before lookup.
func (v *Validator) ValidateCodes(codes []string) []ValidationResult {
	results := make([]ValidationResult, 0, len(codes))
	if err := v.unavailable(); err != nil {
		for _, raw := range codes {
			results = append(results, ValidationResult{
				Code:    strings.TrimSpace(raw),
				Status:  StatusError,
				Message: fmt.Sprintf(msgUnavailable, err),
			})
		}
		return results
	}

	for _, raw := range codes {
		results = append(results, v.validateCode(strings.TrimSpace(raw)))
	}
	return results
}

func (v *Validator) unavailable() error {
	if !v.mapping.Resolved() {
		return &ConfigurationError{
			Reason: fmt.Sprintf("missing %s", strings.Join(v.mapping.Missing(), ", ")),
			Err:    ErrColumnsNotResolved,
		}
	}
	if len(v.rows) == 0 {
		return ErrNoData
	}
	return nil
}

func (v *Validator) validateCode(code string) ValidationResult {
	res := ValidationResult{Code: code, Status: StatusInvalid}

	switch {
	case code == "":
		res.Message = msgEmpty
		return res
	case !IsNumeric(code):
		res.Message = msgNotNumeric
		return res
	}

	found, err := v.Lookup(code)
	if err != nil {
		res.Status = StatusError
		res.Message = fmt.Sprintf(msgUnavailable, err)
		return res
	}

	if !found.Found {
		res.Message = msgNotFound
		return res
	}
	res.Status = StatusValid
	res.Description = found.Description
	res.Message = "HSN code is valid. Description: " + found.Description
	return res
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
