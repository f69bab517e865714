package commands

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uhppoted/uhppoted-app-sheets-votes/httpd"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
)

var RunCmd = Run{
	bind: "",
}

// Run starts the HTTP server for the sheet and vote API.
type Run struct {
	bind string
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Runs the sheet and vote HTTP API"
}

func (cmd *Run) Usage() string {
	return "[--bind <address>]"
}

func (cmd *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] run [--bind <address>]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the HTTP API that serves the spreadsheet records (GET /api/sheets) and updates")
	fmt.Println("  the vote counters (POST /api/vote) until interrupted.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --config sheets-votes.yaml run --bind 0.0.0.0:8080\n", APP)
	fmt.Println()
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("run", flag.ExitOnError)

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP bind address (overrides the configuration), e.g. '0.0.0.0:8080'")

	return flagset
}

func (cmd *Run) Execute(args ...any) error {
	ctx, options := arguments(args...)

	conf, err := options.load()
	if err != nil {
		return err
	}

	defer log.Sync()

	if cmd.bind != "" {
		conf.HTTP.Bind = cmd.bind
	}

	source, updater, err := components(ctx, conf)
	if err != nil {
		return err
	}

	if conf.Google.SheetID == "" {
		log.Warnf("GOOGLE_SHEET_ID not configured - sheet requests require a 'sheet_id' parameter and votes will be rejected")
	}

	if !conf.Google.HasCredential() {
		log.Infof("no Google credential configured - using CSV export and client side vote counts")
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return httpd.NewServer(conf.Google, source, updater).Run(ctx, conf.HTTP)
}
