package commands

const (
	_etc = "/usr/local/etc/uhppoted"

	DEFAULT_CONFIG = _etc + "/sheets-votes/sheets-votes.yaml"
	DEFAULT_DOTENV = ".env"
)
