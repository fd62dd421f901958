package hsn

import "slices"

// Record is the code/description view of one data row.
type Record struct {
	Code        string
	Description string
}

// Result is the outcome of a single lookup. A miss is a valid result, not an error.
type Result struct {
	Found       bool   `json:"found"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Validator looks codes up in an immutable snapshot of fetched rows.
// It is safe for concurrent use because nothing is written after construction.
type Validator struct {
	mapping ColumnMapping
	rows    [][]string
}

// NewValidator copies rows, so later changes to the caller's slices do not
// reach the validator.
func NewValidator(mapping ColumnMapping, rows [][]string) *Validator {
	snapshot := make([][]string, len(rows))
	for i, row := range rows {
		snapshot[i] = slices.Clone(row)
	}
	return &Validator{
		mapping: mapping,
		rows:    snapshot,
	}
}

// Len returns the number of data rows in the snapshot.
func (v *Validator) Len() int {
	return len(v.rows)
}

// Lookup scans rows in fetch order for an exact, case-sensitive match on the
// code column and returns the first hit.
func (v *Validator) Lookup(code string) (Result, error) {
	if !v.mapping.Resolved() {
		return Result{}, v.unavailable()
	}

	for _, row := range v.rows {
		if cell(row, v.mapping.Code) == code {
			return Result{
				Found:       true,
				Code:        code,
				Description: cell(row, v.mapping.Description),
			}, nil
		}
	}
	return Result{Found: false, Code: code}, nil
}

// Records derives a Record for each data row. It returns nil when the
// mapping is incomplete.
func (v *Validator) Records() []Record {
	if !v.mapping.Resolved() {
		return nil
	}
	records := make([]Record, 0, len(v.rows))
	for _, row := range v.rows {
		records = append(records, Record{
			Code:        cell(row, v.mapping.Code),
			Description: cell(row, v.mapping.Description),
		})
	}
	return records
}
