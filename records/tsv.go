package records

import (
	"encoding/csv"
	"fmt"
	"io"
)

// MakeTSV writes the header and records as tab separated values.
func MakeTSV(f io.Writer, header Header, records []Record) error {
	if len(header) == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	// ... header
	columns := MakeRecord(header, nil).Keys()
	if err := w.Write(columns); err != nil {
		return err
	}

	// ... records
	for _, record := range records {
		row := make([]string, len(columns))
		for i, k := range columns {
			row[i], _ = record.Get(k)
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
