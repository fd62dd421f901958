package hsn

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnsNotResolved is returned by lookups on an incomplete ColumnMapping.
	ErrColumnsNotResolved = errors.New("columns not resolved")
	// ErrMissingCredentials indicates the sheet source is not configured.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrNoData indicates the master sheet has a header but no data rows.
	ErrNoData = errors.New("master sheet has no data rows")

	ErrSpreadsheetNotFound = errors.New("spreadsheet not found or not shared with the service account")
	ErrSheetNotFound       = errors.New("worksheet not found")
	ErrPermissionDenied    = errors.New("permission denied")
)

// ConfigurationError reports settings or sheet layout that make validation impossible.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// FetchError wraps a failure to read the master data source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
