package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	clearenv(t)

	c, err := Load("", "")
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if c.Google.ExportURL != DefaultExportURL {
		t.Errorf("Incorrect export URL - expected:%v, got:%v", DefaultExportURL, c.Google.ExportURL)
	}

	if c.Google.Range != "" {
		t.Errorf("Incorrect default range - expected:%q, got:%q", "", c.Google.Range)
	}

	if c.Vote.Sheet != "Sheet1" || c.Vote.Column != "C" {
		t.Errorf("Incorrect vote column - expected:%v!%v, got:%v!%v", "Sheet1", "C", c.Vote.Sheet, c.Vote.Column)
	}

	if c.HTTP.Bind != "0.0.0.0:8080" {
		t.Errorf("Incorrect bind address - expected:%v, got:%v", "0.0.0.0:8080", c.HTTP.Bind)
	}

	if c.Google.HasCredential() {
		t.Errorf("Expected no credential configured")
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearenv(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "votes.yaml")
	dotenv := filepath.Join(dir, ".env")

	yaml := `
google:
  sheet-id: from-yaml
  range: Votes!A:D
vote:
  column: D
http:
  bind: 127.0.0.1:9000
  read-timeout: 5s
logging:
  level: debug
`

	if err := os.WriteFile(file, []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(dotenv, []byte("GOOGLE_SHEET_ID=from-dotenv\nGOOGLE_API_KEY=dotenv-key\nHTTP_MAX_CONNECTIONS=16\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GOOGLE_SHEET_ID", "from-env")

	c, err := Load(file, dotenv)
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if c.Google.SheetID != "from-env" {
		t.Errorf("Incorrect sheet ID - expected:%v, got:%v", "from-env", c.Google.SheetID)
	}

	if c.Google.APIKey != "dotenv-key" {
		t.Errorf("Incorrect API key - expected:%v, got:%v", "dotenv-key", c.Google.APIKey)
	}

	if c.Google.Range != "Votes!A:D" {
		t.Errorf("Incorrect range - expected:%v, got:%v", "Votes!A:D", c.Google.Range)
	}

	if c.Vote.Column != "D" || c.Vote.Sheet != "Sheet1" {
		t.Errorf("Incorrect vote column - expected:%v!%v, got:%v!%v", "Sheet1", "D", c.Vote.Sheet, c.Vote.Column)
	}

	if c.HTTP.ReadTimeout != 5*time.Second {
		t.Errorf("Incorrect read timeout - expected:%v, got:%v", 5*time.Second, c.HTTP.ReadTimeout)
	}

	if c.HTTP.MaxConnections != 16 {
		t.Errorf("Incorrect max connections - expected:%v, got:%v", 16, c.HTTP.MaxConnections)
	}

	if c.Logging.Level != "debug" {
		t.Errorf("Incorrect log level - expected:%v, got:%v", "debug", c.Logging.Level)
	}
}

func TestLoadWithMissingDotEnv(t *testing.T) {
	clearenv(t)

	if _, err := Load("", filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Unexpected error for missing .env file (%v)", err)
	}
}

func TestLoadWithMissingConfigFile(t *testing.T) {
	clearenv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Errorf("Expected error for missing configuration file")
	}
}

func TestLoadWithInvalidEnvironment(t *testing.T) {
	tests := map[string]string{
		"HTTP_MAX_CONNECTIONS": "lots",
		"HTTP_READ_TIMEOUT":    "soon",
		"VOTE_COLUMN":          "C1",
		"LOG_LEVEL":            "verbose",
		"LOG_FORMAT":           "xml",
	}

	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			clearenv(t)
			t.Setenv(k, v)

			if _, err := Load("", ""); err == nil {
				t.Errorf("Expected error for %v=%v", k, v)
			}
		})
	}
}

func TestHasCredential(t *testing.T) {
	tests := []struct {
		google   Google
		expected bool
	}{
		{Google{}, false},
		{Google{APIKey: "  "}, false},
		{Google{APIKey: "key"}, true},
		{Google{Credentials: "/etc/credentials.json"}, true},
	}

	for _, test := range tests {
		if v := test.google.HasCredential(); v != test.expected {
			t.Errorf("Incorrect HasCredential for %+v - expected:%v, got:%v", test.google, test.expected, v)
		}
	}
}

func clearenv(t *testing.T) {
	t.Helper()

	for k := range vars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
