package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/source"
	"github.com/uhppoted/uhppoted-app-sheets-votes/vote"
)

const APP = "uhppoted-app-sheets-votes"

// Options are the global command line options shared by all commands.
type Options struct {
	Debug  bool
	Config string
	DotEnv string
}

// arguments unpacks the (context, options) pair passed to Execute by main. Either may
// be omitted.
func arguments(args ...any) (context.Context, *Options) {
	ctx := context.Background()
	options := &Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = v
		}
	}

	return ctx, options
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}

// load reads the configuration and initialises the logger. A missing default
// configuration file is ignored.
func (o *Options) load() (*config.Config, error) {
	file := o.Config
	if file == DEFAULT_CONFIG && !exists(file) {
		file = ""
	}

	conf, err := config.Load(file, o.DotEnv)
	if err != nil {
		return nil, err
	}

	level := conf.Logging.Level
	if o.Debug {
		level = "debug"
	}

	if err := log.Configure(level, conf.Logging.Format); err != nil {
		return nil, err
	}

	return conf, nil
}

// components constructs the sheet source and vote updater for the configuration. The
// Sheets API client is only created if a credential is configured.
func components(ctx context.Context, conf *config.Config) (*source.Source, *vote.Updater, error) {
	exporter := source.NewExport(conf.Google.ExportURL, http.DefaultClient)
	target := config.ResolveVote(conf.Google, conf.Vote)

	if !conf.Google.HasCredential() {
		return source.NewSource(exporter, nil), vote.NewUpdater(nil, target), nil
	}

	google, err := newSheetsService(ctx, conf.Google)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	return source.NewSource(exporter, source.NewSheets(google)), vote.NewUpdater(vote.NewSheetsCounter(google), target), nil
}

// spreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything that is
// not a URL is assumed to be the ID itself.
func spreadsheetID(url string) (string, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "https://") {
		return url, nil
	}

	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(url)
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}
