// Package httpd implements the HTTP API: GET /api/sheets returns the filtered sheet
// records as JSON and POST /api/vote increments the vote counter for a row.
package httpd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/uhppoted/uhppoted-app-sheets-votes/config"
	"github.com/uhppoted/uhppoted-app-sheets-votes/log"
	"github.com/uhppoted/uhppoted-app-sheets-votes/source"
	"github.com/uhppoted/uhppoted-app-sheets-votes/vote"
)

// Querier retrieves the unfiltered records for a sheet request.
type Querier interface {
	Query(ctx context.Context, q config.Query) (*source.Result, error)
}

// Voter applies a vote request.
type Voter interface {
	Vote(ctx context.Context, rq vote.Request) (*vote.Result, error)
}

type Server struct {
	google  config.Google
	source  Querier
	voter   Voter
	router  *chi.Mux
	timeout time.Duration
}

func NewServer(google config.Google, source Querier, voter Voter) *Server {
	s := &Server{
		google:  google,
		source:  source,
		voter:   voter,
		router:  chi.NewRouter(),
		timeout: 30 * time.Second,
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.router.HandleFunc("/api/sheets", s.query)
	s.router.HandleFunc("/api/vote", s.vote)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP requests on the configured bind address until the context is
// cancelled, after which the server is shut down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.HTTP) error {
	listener, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listener, cfg)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener, cfg config.HTTP) error {
	if cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConnections)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("listening on %v", listener.Addr())

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		log.Infof("shutting down")

		return srv.Shutdown(shutdown)
	})

	return g.Wait()
}
