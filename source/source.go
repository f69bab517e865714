// Package source acquires the rows of a spreadsheet, either as a bulk CSV export or as
// a value range read through the Google Sheets API, and normalises them to records.
package source

import (
	"context"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/records"
	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

type Method string

const (
	CSV Method = "csv"
	API Method = "api"
)

// Exporter retrieves a worksheet as a CSV document.
type Exporter interface {
	Export(ctx context.Context, spreadsheet, gid string) (string, error)
}

// Ranger retrieves a range of cell values.
type Ranger interface {
	Values(ctx context.Context, spreadsheet, area string) (*sheets.ValueRange, error)
}

// Result is the unfiltered content of a sheet. NoData is set if the Sheets API
// returned an empty range.
type Result struct {
	Method  Method
	Header  records.Header
	Records []records.Record
	NoData  bool
}

type Source struct {
	exporter Exporter
	ranger   Ranger
}

// NewSource creates a Source that uses the exporter for CSV requests and the ranger
// for API requests. ranger may be nil if no credential is configured.
func NewSource(exporter Exporter, ranger Ranger) *Source {
	return &Source{
		exporter: exporter,
		ranger:   ranger,
	}
}

// SelectMethod returns the acquisition method for a request. The API is used only if
// a credential is configured and the request did not ask for the CSV export.
func SelectMethod(credential bool, csv string) Method {
	if csv == "true" || !credential {
		return CSV
	}

	return API
}

// Query retrieves all the records for the resolved request settings.
func (s *Source) Query(ctx context.Context, q config.Query) (*Result, error) {
	if strings.TrimSpace(q.SheetID) == "" {
		return nil, types.ConfigurationError{Message: "Missing Sheet ID"}
	}

	method := SelectMethod(q.Credential, q.CSV)

	log.Debugf("sheet:%v  method:%v  range:%v  gid:%v", q.SheetID, method, q.Range, q.GID)

	switch method {
	case API:
		return s.values(ctx, q.SheetID, q.Range)

	default:
		return s.export(ctx, q.SheetID, q.GID)
	}
}

func (s *Source) export(ctx context.Context, spreadsheet, gid string) (*Result, error) {
	if s.exporter == nil {
		return nil, types.ConfigurationError{Message: "CSV export not configured"}
	}

	text, err := s.exporter.Export(ctx, spreadsheet, gid)
	if err != nil {
		return nil, err
	}

	table := records.ParseCSV(text)

	return &Result{
		Method:  CSV,
		Header:  table.Header,
		Records: table.Records,
	}, nil
}

func (s *Source) values(ctx context.Context, spreadsheet, area string) (*Result, error) {
	if s.ranger == nil {
		return nil, types.ConfigurationError{Message: "Sheets API not configured"}
	}

	response, err := s.ranger.Values(ctx, spreadsheet, area)
	if err != nil {
		return nil, err
	}

	if response == nil || len(response.Values) == 0 {
		return &Result{
			Method:  API,
			Header:  records.Header{},
			Records: []records.Record{},
			NoData:  true,
		}, nil
	}

	table, err := records.FromGrid(response)
	if err != nil {
		return nil, types.AcquisitionError{Message: err.Error(), Err: err}
	}

	return &Result{
		Method:  API,
		Header:  table.Header,
		Records: table.Records,
	}, nil
}
