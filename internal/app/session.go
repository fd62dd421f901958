package app

import (
	"context"
	"slices"

	"hsn_validator/internal/hsn"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session is one fetch of the master data with its resolved columns.
// Sessions are read-only after LoadSession returns.
type Session struct {
	ID        string
	Header    []string
	Columns   hsn.ColumnMapping
	Validator *hsn.Validator
}

// LoadSession fetches the table once and resolves its columns. An unresolved
// mapping is logged, not returned as an error: lookups on the session fail
// closed instead.
func LoadSession(ctx context.Context, fetcher Fetcher, names hsn.ColumnNames) (*Session, error) {
	id := uuid.NewString()
	logger := log.With().Str("session", id).Logger()

	table, err := fetcher.FetchTable(ctx)
	if err != nil {
		return nil, err
	}

	mapping := hsn.ResolveColumns(table.Header, names)
	if mapping.Resolved() {
		logger.Info().
			Str("code_column", table.Header[mapping.Code]).
			Str("description_column", table.Header[mapping.Description]).
			Int("rows", len(table.Rows)).
			Msg("Resolved HSN columns")
	} else {
		hsn.ReportUnresolved(mapping, table.Header, names)
	}

	return &Session{
		ID:        id,
		Header:    slices.Clone(table.Header),
		Columns:   mapping,
		Validator: hsn.NewValidator(mapping, table.Rows),
	}, nil
}
