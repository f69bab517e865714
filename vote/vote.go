// Package vote implements the vote counter update: a validated request increments the
// counter cell for a sheet row by reading the current value and writing it back plus one.
//
// The read and the write are independent API calls with no lock or conditional write
// between them, so concurrent votes for the same row can overwrite each other.
package vote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/records"
	"github.com/uhppoted/uhppoted-app-sheets-votes/types"
)

// MaxRowIndex is the largest row index with a counter cell inside the Sheets grid
// limit of 10,000,000 rows.
const MaxRowIndex = 10_000_000 - 2

// Request identifies the vote target. Both fields are pointers so that an absent field
// can be distinguished from a zero value.
type Request struct {
	QuestionID *string `json:"questionId"`
	RowIndex   *int    `json:"rowIndex"`
}

// UnmarshalJSON decodes a vote request. A field that is present but null is set to an
// invalid value rather than left nil, so that it is rejected as invalid instead of
// missing.
func (rq *Request) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*rq = Request{}

	if raw, ok := fields["questionId"]; ok {
		id := ""
		if !null(raw) {
			if err := json.Unmarshal(raw, &id); err != nil {
				return err
			}
		}

		rq.QuestionID = &id
	}

	if raw, ok := fields["rowIndex"]; ok {
		row := -1
		if !null(raw) {
			if err := json.Unmarshal(raw, &row); err != nil {
				return err
			}
		}

		rq.RowIndex = &row
	}

	return nil
}

func null(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Result is returned for a successful vote. NewCount is nil if the vote was not
// recorded in the spreadsheet.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	NewCount *int   `json:"newCount"`
}

// Counter reads and writes a single cell of a spreadsheet.
type Counter interface {
	Read(ctx context.Context, spreadsheet, cell string) (string, error)
	Write(ctx context.Context, spreadsheet, cell, value string) error
}

type Updater struct {
	counter Counter
	target  config.Target
}

// NewUpdater creates an Updater for the resolved vote settings. counter may be nil if
// no credential is configured.
func NewUpdater(counter Counter, target config.Target) *Updater {
	return &Updater{
		counter: counter,
		target:  target,
	}
}

// Validate checks that the request has both a question ID and a row index and that the
// question ID identifies a real question.
func Validate(rq Request) error {
	if rq.QuestionID == nil || rq.RowIndex == nil {
		return types.ValidationError{Message: "Missing questionId or rowIndex"}
	}

	if id := *rq.QuestionID; id == "" || strings.HasPrefix(id, records.UnknownIDPrefix) {
		return types.ValidationError{Message: "Invalid question ID"}
	}

	if *rq.RowIndex < 0 || *rq.RowIndex > MaxRowIndex {
		return types.ValidationError{Message: "Invalid row index"}
	}

	return nil
}

// Vote validates the request and increments the counter for the row. If no credential
// is configured the vote is accepted but not recorded.
func (u *Updater) Vote(ctx context.Context, rq Request) (*Result, error) {
	if err := Validate(rq); err != nil {
		return nil, err
	}

	if u.target.SheetID == "" {
		return nil, types.ConfigurationError{Message: "Missing configuration"}
	}

	if !u.target.Credential {
		return &Result{
			Success:  true,
			Message:  "Vote recorded locally only",
			NewCount: nil,
		}, nil
	}

	if u.counter == nil {
		return nil, types.ConfigurationError{Message: "Sheets API not configured"}
	}

	cell := Cell(u.target, *rq.RowIndex)

	current, err := u.counter.Read(ctx, u.target.SheetID, cell)
	if err != nil {
		return nil, types.AcquisitionError{Message: "Failed to fetch current value", Err: err}
	}

	count := Parse(current) + 1

	if err := u.counter.Write(ctx, u.target.SheetID, cell, strconv.Itoa(count)); err != nil {
		return nil, err
	}

	log.Infof("vote  question:%v  cell:%v  count:%v", *rq.QuestionID, cell, count)

	return &Result{
		Success:  true,
		NewCount: &count,
	}, nil
}

// Cell returns the A1 address of the counter for a (zero based) display row. The +2
// skips the header row and converts to one based row numbers.
func Cell(target config.Target, row int) string {
	return fmt.Sprintf("%v!%v%v", SheetName(target.Sheet), target.Column, row+2)
}

var bare = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
var cellref = regexp.MustCompile(`^[A-Za-z]{1,3}[0-9]+$`)

// SheetName returns the sheet name as it must appear in an A1 range: unchanged if it is
// a plain identifier, otherwise single quoted with embedded quotes doubled.
func SheetName(sheet string) string {
	if bare.MatchString(sheet) && !cellref.MatchString(sheet) {
		return sheet
	}

	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

var integer = regexp.MustCompile(`^\s*([+-]?[0-9]+)`)

// Parse returns the integer at the start of a cell value, or 0 if the cell is blank or
// does not start with an integer.
func Parse(v string) int {
	if match := integer.FindStringSubmatch(v); len(match) > 1 {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return n
		}
	}

	return 0
}
