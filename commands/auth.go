package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// authorize returns an HTTP client authorised by the credentials file. A service
// account (or other Google credentials) file is used directly; an OAuth2 client
// ('installed' or 'web') file requires a previously saved <name>.tokens file alongside it.
func authorize(ctx context.Context, credentials string, scope string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	if config, err := google.ConfigFromJSON(b, scope); err == nil {
		tokens := tokensFile(credentials)

		token, err := tokenFromFile(tokens)
		if err != nil {
			return nil, fmt.Errorf("missing/invalid OAuth2 tokens file %v (%v)", tokens, err)
		}

		return config.Client(ctx, token), nil
	}

	creds, err := google.CredentialsFromJSON(ctx, b, scope)
	if err != nil {
		return nil, err
	}

	return oauth2.NewClient(ctx, creds.TokenSource), nil
}

// tokensFile returns the path of the OAuth2 tokens file for a credentials file,
// e.g. .google/credentials.json -> .google/credentials.tokens
func tokensFile(credentials string) string {
	dir, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%v)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
