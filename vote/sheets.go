package vote

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

// SheetsCounter is a Counter backed by the Google Sheets v4 values API.
type SheetsCounter struct {
	google *sheets.Service
}

func NewSheetsCounter(google *sheets.Service) *SheetsCounter {
	return &SheetsCounter{
		google: google,
	}
}

func (c *SheetsCounter) Read(ctx context.Context, spreadsheet, cell string) (string, error) {
	response, err := c.google.Spreadsheets.Values.Get(spreadsheet, cell).Context(ctx).Do()
	if err != nil {
		return "", err
	}

	if len(response.Values) > 0 && len(response.Values[0]) > 0 {
		if v := response.Values[0][0]; v != nil {
			return fmt.Sprintf("%v", v), nil
		}
	}

	return "", nil
}

func (c *SheetsCounter) Write(ctx context.Context, spreadsheet, cell, value string) error {
	rq := sheets.ValueRange{
		Values: [][]any{
			[]any{value},
		},
	}

	if _, err := c.google.Spreadsheets.Values.Update(spreadsheet, cell, &rq).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return types.AcquisitionError{
			Message: types.UpstreamMessage(err, "Failed to update value"),
			Err:     err,
		}
	}

	return nil
}
