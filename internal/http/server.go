package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"saldo/internal/core"
	"saldo/internal/log"
	"saldo/internal/middleware/ratelimit"
	"saldo/internal/middleware/security"
	"saldo/internal/middleware/trace"
	"saldo/internal/view"
	appweb "saldo/web"
)

// TransactionStore is what the handlers need from the store.
type TransactionStore interface {
	Add(ctx context.Context, in core.NewTransaction) (core.Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (core.Transaction, bool)
	List() []core.Transaction
	PersistenceErr() error
}

// Options configure NewServer.
type Options struct {
	Addr               string
	Store              TransactionStore
	Formatter          *view.Formatter
	Logger             *log.Logger
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	store     TransactionStore
	formatter *view.Formatter
	logger    *log.Logger
	limiter   *ratelimit.Limiter
	tracer    *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Formatter == nil {
		return nil, fmt.Errorf("formatter is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	s := &Server{
		templates: t,
		store:     opts.Store,
		formatter: opts.Formatter,
		logger:    logger,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
			Logger:            logger,
		}),
		tracer: trace.NewMiddleware(logger, clientIP),
	}

	mux := http.NewServeMux()

	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	// Pages and partials
	mux.Handle("GET /{$}", security.NoStore(http.HandlerFunc(s.handleIndex)))
	mux.Handle("GET /ui/transactions", security.NoStore(http.HandlerFunc(s.handleTransactionsPartial)))
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("POST /transactions/{id}/delete", s.handleDeleteTransaction)

	// JSON API
	mux.Handle("GET /api/transactions", security.NoStore(http.HandlerFunc(s.handleAPIList)))
	mux.HandleFunc("POST /api/transactions", s.handleAPICreate)
	mux.Handle("GET /api/transactions/{id}", security.NoStore(http.HandlerFunc(s.handleAPIGet)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleAPIDelete)
	mux.Handle("GET /api/summary", security.NoStore(http.HandlerFunc(s.handleAPISummary)))
	mux.HandleFunc("GET /api/categories", s.handleAPICategories)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.limiter.Middleware(clientIP, nil)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.tracer.Middleware(headers.Middleware(limit(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Shutdown gracefully shuts down the server and its background routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
