// Package config loads the service configuration and resolves the per-request settings.
//
// Settings are taken (in increasing order of precedence) from the built-in defaults, an
// optional YAML configuration file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRange     = "Sheet1!A:Z"
	DefaultGID       = "0"
	DefaultExportURL = "https://docs.google.com/spreadsheets"
)

type Config struct {
	Google  Google  `yaml:"google"`
	Vote    Vote    `yaml:"vote"`
	HTTP    HTTP    `yaml:"http"`
	Logging Logging `yaml:"logging"`
}

type Google struct {
	SheetID     string `yaml:"sheet-id"`
	APIKey      string `yaml:"api-key"`
	Credentials string `yaml:"credentials"`
	Range       string `yaml:"range"`
	ExportURL   string `yaml:"export-url"`
	Endpoint    string `yaml:"endpoint"`
}

// Vote identifies the column holding the vote counters. The counter for display row N
// is in <sheet>!<column><N+2>.
type Vote struct {
	Sheet  string `yaml:"sheet"`
	Column string `yaml:"column"`
}

type HTTP struct {
	Bind           string        `yaml:"bind"`
	MaxConnections int           `yaml:"max-connections"`
	ReadTimeout    time.Duration `yaml:"read-timeout"`
	WriteTimeout   time.Duration `yaml:"write-timeout"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Env is a snapshot of the environment variables relevant to the configuration.
type Env map[string]string

var vars = map[string]func(*Config, string) error{
	"GOOGLE_SHEET_ID":      func(c *Config, v string) error { c.Google.SheetID = v; return nil },
	"GOOGLE_API_KEY":       func(c *Config, v string) error { c.Google.APIKey = v; return nil },
	"GOOGLE_CREDENTIALS":   func(c *Config, v string) error { c.Google.Credentials = v; return nil },
	"SHEET_RANGE":          func(c *Config, v string) error { c.Google.Range = v; return nil },
	"EXPORT_URL":           func(c *Config, v string) error { c.Google.ExportURL = v; return nil },
	"SHEETS_ENDPOINT":      func(c *Config, v string) error { c.Google.Endpoint = v; return nil },
	"VOTE_SHEET":           func(c *Config, v string) error { c.Vote.Sheet = v; return nil },
	"VOTE_COLUMN":          func(c *Config, v string) error { c.Vote.Column = v; return nil },
	"HTTP_BIND":            func(c *Config, v string) error { c.HTTP.Bind = v; return nil },
	"HTTP_MAX_CONNECTIONS": func(c *Config, v string) (err error) { c.HTTP.MaxConnections, err = strconv.Atoi(v); return },
	"HTTP_READ_TIMEOUT":    func(c *Config, v string) (err error) { c.HTTP.ReadTimeout, err = time.ParseDuration(v); return },
	"HTTP_WRITE_TIMEOUT":   func(c *Config, v string) (err error) { c.HTTP.WriteTimeout, err = time.ParseDuration(v); return },
	"LOG_LEVEL":            func(c *Config, v string) error { c.Logging.Level = v; return nil },
	"LOG_FORMAT":           func(c *Config, v string) error { c.Logging.Format = v; return nil },
}

func NewConfig() *Config {
	return &Config{
		Google: Google{
			ExportURL: DefaultExportURL,
		},
		Vote: Vote{
			Sheet:  "Sheet1",
			Column: "C",
		},
		HTTP: HTTP{
			Bind:           "0.0.0.0:8080",
			MaxConnections: 0,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load initialises the configuration from the (optional) YAML file, the (optional)
// .env file and the process environment, in that order, and validates the result.
func Load(file, dotenv string) (*Config, error) {
	c := NewConfig()

	if file != "" {
		if err := c.load(file); err != nil {
			return nil, fmt.Errorf("error loading configuration file %v (%v)", file, err)
		}
	}

	env := Environ()
	if dotenv != "" {
		if err := env.merge(dotenv); err != nil {
			return nil, fmt.Errorf("error loading %v (%v)", dotenv, err)
		}
	}

	if err := c.Apply(env); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) load(file string) error {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(bytes, c)
}

// Apply overrides the configuration with the non-empty values in env.
func (c *Config) Apply(env Env) error {
	for k, f := range vars {
		if v := strings.TrimSpace(env[k]); v != "" {
			if err := f(c, v); err != nil {
				return fmt.Errorf("invalid value for %v (%v)", k, err)
			}
		}
	}

	return nil
}

// Validate checks the configuration and reports all the problems found.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Vote.Sheet) == "" {
		errs = append(errs, "vote sheet is required")
	}

	if !regexp.MustCompile(`^[A-Za-z]{1,3}$`).MatchString(c.Vote.Column) {
		errs = append(errs, fmt.Sprintf("invalid vote column '%v' - expected something like 'C'", c.Vote.Column))
	}

	if c.HTTP.MaxConnections < 0 {
		errs = append(errs, "HTTP max connections must be non-negative")
	}

	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		errs = append(errs, "HTTP timeouts must be non-negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%v' - must be one of debug, info, warn, error", c.Logging.Level))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format '%v' - must be one of console, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// HasCredential returns true if either an API key or a credentials file is configured.
func (g Google) HasCredential() bool {
	return strings.TrimSpace(g.APIKey) != "" || strings.TrimSpace(g.Credentials) != ""
}

// Environ returns a snapshot of the configuration variables in the process environment.
func Environ() Env {
	env := Env{}
	for k := range vars {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}

	return env
}

// merge adds the values from a .env file that are not already set. A missing file is
// not an error.
func (env Env) merge(file string) error {
	values, err := godotenv.Read(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	for k, v := range values {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}

	return nil
}
