package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/records"
	"github.com/uhppoted/uhppoted-app-sheets-votes/vote"
)

var VoteCmd = Vote{
	question: "",
	row:      -1,
}

// Vote increments the vote counter for a single row of the configured spreadsheet.
type Vote struct {
	question string
	row      int
	stdout   io.Writer
}

func (cmd *Vote) Name() string {
	return "vote"
}

func (cmd *Vote) Description() string {
	return "Records a vote for a spreadsheet row"
}

func (cmd *Vote) Usage() string {
	return "[--question <id>] --row <index>"
}

func (cmd *Vote) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] vote [--question <id>] --row <index>\n", APP)
	fmt.Println()
	fmt.Println("  Increments the vote counter cell for a row of the configured spreadsheet. The row index")
	fmt.Println("  is the zero based index into the filtered records returned by 'get'. If the question ID")
	fmt.Println("  is not specified it is taken from the first column of the row.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s vote --row 3\n", APP)
	fmt.Printf("    %s vote --question Q4 --row 3\n", APP)
	fmt.Println()
}

func (cmd *Vote) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("vote", flag.ExitOnError)

	flagset.StringVar(&cmd.question, "question", cmd.question, "Question ID. Defaults to the first column of the row")
	flagset.IntVar(&cmd.row, "row", cmd.row, "Zero based row index")

	return flagset
}

func (cmd *Vote) Execute(args ...any) error {
	ctx, options := arguments(args...)

	if cmd.row < 0 {
		return fmt.Errorf("--row is a required option")
	}

	conf, err := options.load()
	if err != nil {
		return err
	}

	defer log.Sync()

	source, updater, err := components(ctx, conf)
	if err != nil {
		return err
	}

	question := cmd.question
	if question == "" {
		result, err := source.Query(ctx, config.Resolve(conf.Google, config.Params{}))
		if err != nil {
			return fmt.Errorf("unable to retrieve question ID from sheet (%v)", err)
		}

		list := records.Filter(result.Records)
		if cmd.row >= len(list) {
			return fmt.Errorf("invalid row %v - sheet has %v records", cmd.row, len(list))
		}

		question = records.ID(list[cmd.row], cmd.row)
	}

	result, err := updater.Vote(ctx, vote.Request{
		QuestionID: &question,
		RowIndex:   &cmd.row,
	})

	if err != nil {
		return fmt.Errorf("vote for '%v' failed (%v)", question, err)
	}

	bytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout(cmd.stdout), "%s\n", bytes)

	return nil
}
