package config

import (
	"net/url"
	"strings"
)

// Params holds the optional query parameters of a sheet request.
type Params struct {
	SheetID string
	Range   string
	CSV     string
	GID     string
}

// Query is the fully resolved set of settings for a single sheet request.
type Query struct {
	SheetID    string
	Range      string
	GID        string
	CSV        string
	Credential bool
}

// Target is the fully resolved set of settings for a single vote request.
type Target struct {
	SheetID    string
	Sheet      string
	Column     string
	Credential bool
}

func ParamsFromQuery(q url.Values) Params {
	return Params{
		SheetID: q.Get("sheet_id"),
		Range:   q.Get("range"),
		CSV:     q.Get("csv"),
		GID:     q.Get("gid"),
	}
}

// Resolve merges the configured settings with the request parameters. The configured
// sheet ID and range take precedence over the request parameters, which take precedence
// over the defaults. The credential is never taken from the request.
func Resolve(g Google, p Params) Query {
	return Query{
		SheetID:    first(g.SheetID, p.SheetID),
		Range:      first(g.Range, p.Range, DefaultRange),
		GID:        first(p.GID, DefaultGID),
		CSV:        p.CSV,
		Credential: g.HasCredential(),
	}
}

// ResolveVote returns the vote settings, which are taken from the configuration only.
func ResolveVote(g Google, v Vote) Target {
	return Target{
		SheetID:    strings.TrimSpace(g.SheetID),
		Sheet:      first(v.Sheet, "Sheet1"),
		Column:     strings.ToUpper(first(v.Column, "C")),
		Credential: g.HasCredential(),
	}
}

func first(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	return ""
}
