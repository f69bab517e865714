package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
)

var AuthoriseCmd = Authorise{
	credentials: "",
	bind:        "127.0.0.1:8081",
}

// Authorise runs the OAuth2 consent flow for an OAuth2 client credentials file and
// saves the resulting tokens alongside it for use by 'run', 'get' and 'vote'.
type Authorise struct {
	credentials string
	bind        string
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises uhppoted-app-sheets-votes to access a Google Sheets worksheet"
}

func (cmd *Authorise) Usage() string {
	return "[--credentials <file>] [--bind <address>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [--credentials <file>]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises uhppoted-app-sheets-votes to read and update a Google Sheets worksheet using an")
	fmt.Println("  OAuth2 client credentials file. The tokens are saved to <credentials>.tokens in the same")
	fmt.Println("  directory as the credentials file.")
	fmt.Println()
	fmt.Println("  Service account credentials and API keys do not need to be authorised.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials \".google/credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file. Defaults to GOOGLE_CREDENTIALS")
	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "Local address for the OAuth2 redirect")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, options := arguments(args...)

	conf, err := options.load()
	if err != nil {
		return err
	}

	defer log.Sync()

	credentials := cmd.credentials
	if strings.TrimSpace(credentials) == "" {
		credentials = conf.Google.Credentials
	}

	if strings.TrimSpace(credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	b, err := os.ReadFile(credentials)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return fmt.Errorf("invalid OAuth2 client credentials (%v)", err)
	}

	listener, err := net.Listen("tcp", cmd.bind)
	if err != nil {
		return err
	}

	config.RedirectURL = fmt.Sprintf("http://%v/", listener.Addr())

	state := nonce()
	codes := make(chan string, 1)

	r := chi.NewRouter()
	r.Get("/", callback(state, codes))

	srv := &http.Server{
		Handler: r,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Errorf("%v", err)
		}
	}()

	defer srv.Shutdown(context.Background())

	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Printf("\n  Open the following URL in your browser to authorise access:\n\n  %v\n\n", url)

	if err := browse(url); err != nil {
		log.Debugf("could not open browser (%v)", err)
	}

	interrupt, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	select {
	case <-interrupt.Done():
		fmt.Printf("\n.. cancelled\n\n")
		return nil

	case code := <-codes:
		token, err := config.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token from web (%v)", err)
		}

		tokens := tokensFile(credentials)
		if err := saveToken(tokens, token); err != nil {
			return err
		}

		log.Infof("saved OAuth2 tokens to %v", tokens)
	}

	return nil
}

// callback handles the OAuth2 redirect, passing on the authorisation code if the
// state matches.
func callback(state string, codes chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, rq *http.Request) {
		code := rq.FormValue("code")

		if rq.FormValue("state") != state || code == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		select {
		case codes <- code:
			fmt.Fprintln(w, "Authorised - you can close this window")
		default:
			http.Error(w, "Already authorised", http.StatusConflict)
		}
	}
}

func browse(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()

	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func nonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "state-token"
	}

	return hex.EncodeToString(b)
}
