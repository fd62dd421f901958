package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hsn_validator/internal/hsn"
	"hsn_validator/internal/retry"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
)

// SheetFetcher reads one tab of a Google spreadsheet as an hsn.Table.
type SheetFetcher struct {
	client        *Client
	spreadsheetID string
	sheetName     string
	retry         retry.Config
}

func NewSheetFetcher(client *Client, spreadsheetID, sheetName string, retryConfig retry.Config) *SheetFetcher {
	return &SheetFetcher{
		client:        client,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		retry:         retryConfig,
	}
}

// FetchTable reads the whole tab. Missing spreadsheets, tabs and permission
// failures are not retried.
func (f *SheetFetcher) FetchTable(ctx context.Context) (hsn.Table, error) {
	log.Debug().
		Str("spreadsheet_id", f.spreadsheetID).
		Str("sheet", f.sheetName).
		Msg("Fetching sheet data")

	readRange := quoteSheetName(f.sheetName)
	values, err := retry.WithRetry(ctx, f.retry, func(ctx context.Context) ([][]interface{}, error) {
		values, err := f.client.ReadSheet(ctx, f.spreadsheetID, readRange)
		if err != nil {
			return nil, classifyError(err)
		}
		return values, nil
	})
	if err != nil {
		return hsn.Table{}, &hsn.FetchError{
			Source: fmt.Sprintf("spreadsheet %s sheet %q", f.spreadsheetID, f.sheetName),
			Err:    err,
		}
	}

	table := hsn.NewTable(toStrings(values))
	log.Info().
		Str("sheet", f.sheetName).
		Int("rows", len(table.Rows)).
		Strs("headers", table.Header).
		Msg("Fetched sheet data")
	return table, nil
}

// quoteSheetName builds an A1 range covering the whole tab.
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func classifyError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusNotFound:
		return retry.Permanent(fmt.Errorf("%w: %v", hsn.ErrSpreadsheetNotFound, err))
	case http.StatusBadRequest:
		// the API answers 400 "Unable to parse range" for an unknown tab
		if strings.Contains(gerr.Message, "Unable to parse range") {
			return retry.Permanent(fmt.Errorf("%w: %v", hsn.ErrSheetNotFound, err))
		}
		return retry.Permanent(err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return retry.Permanent(fmt.Errorf("%w: %v", hsn.ErrPermissionDenied, err))
	}
	return err
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j := range row {
			cells[j] = extractStringField(row, j)
		}
		rows[i] = cells
	}
	return rows
}

// extractStringField safely extracts a trimmed string field from a row at the given index
func extractStringField(row []interface{}, index int) string {
	if len(row) > index && row[index] != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
	}
	return ""
}
