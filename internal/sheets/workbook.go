package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"hsn_validator/internal/hsn"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// WorkbookFetcher reads the master data from a local .xlsx export instead of
// the Sheets API.
type WorkbookFetcher struct {
	path      string
	sheetName string
}

func NewWorkbookFetcher(path, sheetName string) *WorkbookFetcher {
	return &WorkbookFetcher{path: path, sheetName: sheetName}
}

// FetchTable opens the workbook and reads the named sheet, or the first
// sheet when no name was given.
func (f *WorkbookFetcher) FetchTable(ctx context.Context) (hsn.Table, error) {
	source := fmt.Sprintf("workbook %s", f.path)
	if err := ctx.Err(); err != nil {
		return hsn.Table{}, &hsn.FetchError{Source: source, Err: err}
	}

	wb, err := excelize.OpenFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %v", hsn.ErrSpreadsheetNotFound, err)
		}
		return hsn.Table{}, &hsn.FetchError{Source: source, Err: err}
	}
	defer wb.Close()

	sheetName := f.sheetName
	if sheetName == "" {
		sheetName = wb.GetSheetName(0)
	}
	if idx, err := wb.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return hsn.Table{}, &hsn.FetchError{
			Source: source,
			Err:    fmt.Errorf("%w: %q", hsn.ErrSheetNotFound, sheetName),
		}
	}

	rows, err := wb.GetRows(sheetName)
	if err != nil {
		return hsn.Table{}, &hsn.FetchError{Source: source, Err: err}
	}
	for _, row := range rows {
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
	}

	table := hsn.NewTable(rows)
	log.Info().
		Str("workbook", f.path).
		Str("sheet", sheetName).
		Int("rows", len(table.Rows)).
		Strs("headers", table.Header).
		Msg("Read workbook data")
	return table, nil
}
