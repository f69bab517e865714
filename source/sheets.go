package source

import (
	"context"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

// Sheets reads value ranges through the Google Sheets v4 API.
type Sheets struct {
	google *sheets.Service
}

func NewSheets(google *sheets.Service) *Sheets {
	return &Sheets{
		google: google,
	}
}

func (s *Sheets) Values(ctx context.Context, spreadsheet, area string) (*sheets.ValueRange, error) {
	response, err := s.google.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, types.AcquisitionError{
			Message: types.UpstreamMessage(err, "Failed to fetch data"),
			Err:     err,
		}
	}

	return response, nil
}
