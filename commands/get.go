package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/records"
)

var GetCmd = Get{
	url:    "",
	area:   "",
	gid:    "",
	csv:    false,
	all:    false,
	format: "json",
	file:   "",
}

// Get retrieves the spreadsheet records and writes them to a JSON or TSV file (or
// stdout).
type Get struct {
	url    string
	area   string
	gid    string
	csv    bool
	all    bool
	format string
	file   string
	stdout io.Writer
}

type getResponse struct {
	Data          []records.Record `json:"data"`
	Total         int              `json:"total"`
	TotalOriginal int              `json:"totalOriginal"`
	Method        string           `json:"method"`
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the records from a Google Sheets worksheet"
}

func (cmd *Get) Usage() string {
	return "[--url <url>] [--range <range>] [--gid <gid>] [--csv] [--all] [--format json|tsv] [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options]\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves the records from a Google Sheets worksheet, discards the records with a blank")
	fmt.Println("  second column and writes the result as JSON or TSV")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get --url \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\" \\\n", APP)
	fmt.Println(`                                     --format tsv \`)
	fmt.Println(`                                     --file "votes.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("get", flag.ExitOnError)

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL or ID. Defaults to the configured GOOGLE_SHEET_ID")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Sheet1!A:Z'")
	flagset.StringVar(&cmd.gid, "gid", cmd.gid, "Worksheet 'gid' for the CSV export")
	flagset.BoolVar(&cmd.csv, "csv", cmd.csv, "Uses the CSV export even if a Google credential is configured")
	flagset.BoolVar(&cmd.all, "all", cmd.all, "Includes the records with a blank second column")
	flagset.StringVar(&cmd.format, "format", cmd.format, "Output format (json or tsv)")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Output file. Defaults to stdout")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, options := arguments(args...)

	conf, err := options.load()
	if err != nil {
		return err
	}

	defer log.Sync()

	format := strings.ToLower(strings.TrimSpace(cmd.format))
	if format != "json" && format != "tsv" {
		return fmt.Errorf("invalid --format '%v' - expected 'json' or 'tsv'", cmd.format)
	}

	params := config.Params{
		Range: cmd.area,
		GID:   cmd.gid,
	}

	if cmd.url != "" {
		if params.SheetID, err = spreadsheetID(cmd.url); err != nil {
			return err
		}

		conf.Google.SheetID = ""
	}

	if cmd.csv {
		params.CSV = "true"
	}

	source, _, err := components(ctx, conf)
	if err != nil {
		return err
	}

	result, err := source.Query(ctx, config.Resolve(conf.Google, params))
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	list := result.Records
	if !cmd.all {
		list = records.Filter(result.Records)
	}

	log.Debugf("retrieved %v records (%v after filtering) using %v", len(result.Records), len(list), result.Method)

	write := func(w io.Writer) error {
		if format == "tsv" {
			return records.MakeTSV(w, result.Header, list)
		}

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(getResponse{
			Data:          list,
			Total:         len(list),
			TotalOriginal: len(result.Records),
			Method:        string(result.Method),
		})
	}

	if cmd.file == "" {
		return write(stdout(cmd.stdout))
	}

	return save(cmd.file, write)
}

// save writes to a temporary file and renames it once complete.
func save(file string, write func(io.Writer) error) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".votes-*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), file); err != nil {
		return err
	}

	log.Infof("retrieved records to file %s", file)

	return nil
}
