package httpserver

import (
	"context"
	"net/http"

	"virtualboard/authapi/internal/config"
	"virtualboard/authapi/internal/logging"
	authusecase "virtualboard/authapi/internal/usecase/auth"
)

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer  *http.Server
	router      *http.ServeMux
	authService *authusecase.Service
	logger      logging.Logger
	addr        string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, authService *authusecase.Service, logger logging.Logger) *Server {
	mux := http.NewServeMux()
	addr := cfg.Addr()

	srv := &Server{
		router:      mux,
		authService: authService,
		logger:      logger,
		addr:        addr,
	}

	handler := withLogging(withRecovery(withCORS(mux, cfg.AllowedOrigins), logger), logger)
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Router exposes the underlying ServeMux so routes can be registered.
func (s *Server) Router() *http.ServeMux {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
