package commands

import (
	"context"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

// newSheetsService creates a Sheets API client authorised with either the OAuth2
// credentials file or the API key (in that order of preference).
func newSheetsService(ctx context.Context, google config.Google) (*sheets.Service, error) {
	options := []option.ClientOption{}

	switch {
	case google.Credentials != "":
		client, err := authorize(ctx, google.Credentials, SHEETS)
		if err != nil {
			return nil, err
		}

		options = append(options, option.WithHTTPClient(client))

	case google.APIKey != "":
		options = append(options, option.WithAPIKey(google.APIKey))
	}

	if google.Endpoint != "" {
		options = append(options, option.WithEndpoint(google.Endpoint))
	}

	return sheets.NewService(ctx, options...)
}

func exists(file string) bool {
	_, err := os.Stat(file)

	return err == nil
}
