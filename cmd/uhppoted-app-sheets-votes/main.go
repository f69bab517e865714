package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/uhppoted-app-sheets-votes/commands"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.RunCmd,
	&commands.GetCmd,
	&commands.VoteCmd,
}

var options = commands.Options{
	Debug:  false,
	Config: commands.DEFAULT_CONFIG,
	DotEnv: commands.DEFAULT_DOTENV,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.StringVar(&options.Config, "config", options.Config, "Configuration file path")
	flag.StringVar(&options.DotEnv, "env", options.DotEnv, ".env file path")
	flag.Parse()

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
