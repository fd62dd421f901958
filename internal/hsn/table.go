package hsn

// Table is one fetch of the master sheet: the header row and the data rows
// below it. A Table is never modified after it is built.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable splits fetched values into header and data rows.
func NewTable(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	return Table{
		Header: values[0],
		Rows:   values[1:],
	}
}

// cell returns the value at index, or "" when the row is too short.
// The Sheets API drops trailing empty cells, so short rows are normal.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
