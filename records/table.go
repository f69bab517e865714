package records

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// Table is the normalised content of a sheet: the header row and a record for each
// data row.
type Table struct {
	Header  Header
	Records []Record
}

// ParseCSV converts an exported CSV document to a Table. The first line is the header
// and each subsequent line that tokenizes to exactly as many fields as the header is
// converted to a record. Lines with any other number of fields are skipped.
func ParseCSV(text string) *Table {
	lines := Lines(text)
	if len(lines) == 0 {
		return &Table{
			Header:  Header{},
			Records: []Record{},
		}
	}

	header := Header(Tokenize(lines[0]))
	records := []Record{}

	for _, line := range lines[1:] {
		if row := Tokenize(line); len(row) == len(header) {
			records = append(records, MakeRecord(header, row))
		}
	}

	return &Table{
		Header:  header,
		Records: records,
	}
}

// FromGrid converts a Sheets API value range to a Table. The first row is the header
// and every subsequent row is converted to a record, with missing trailing cells
// mapped to "".
func FromGrid(data *sheets.ValueRange) (*Table, error) {
	if data == nil || len(data.Values) == 0 {
		return nil, fmt.Errorf("Empty sheet")
	}

	header := Header(cells(data.Values[0]))
	records := []Record{}

	for _, row := range data.Values[1:] {
		records = append(records, MakeRecord(header, cells(row)))
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

func cells(row []any) []string {
	values := make([]string, len(row))
	for i, v := range row {
		switch cell := v.(type) {
		case string:
			values[i] = cell

		case nil:
			values[i] = ""

		default:
			values[i] = fmt.Sprintf("%v", cell)
		}
	}

	return values
}
