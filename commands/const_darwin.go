package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted"

	DEFAULT_CONFIG = _etc + "/sheets-votes/sheets-votes.yaml"
	DEFAULT_DOTENV = ".env"
)
