// Package web wires the HTTP surface of the Beacon API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/purabshah12/beacon/internal/common/config"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/report"
	"github.com/purabshah12/beacon/internal/web/handlers"
	"github.com/purabshah12/beacon/internal/web/middleware"
)

// Server is the Beacon HTTP server.
type Server struct {
	config     *config.Config
	logger     logger.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates the server around an already-constructed ranker and
// report store; dependency construction stays in main.
func NewServer(cfg *config.Config, ranker handlers.Matcher, store *report.Store, log logger.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "web-server"}),
	}

	s.setupRoutes(ranker, store)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes(ranker handlers.Matcher, store *report.Store) {
	s.router = mux.NewRouter()

	uploadHandler := &handlers.UploadHandler{
		UploadDir: s.config.Storage.UploadDir,
		MaxBytes:  s.config.Storage.MaxUploadBytes,
		Logger:    s.logger,
	}
	matchHandler := &handlers.MatchHandler{Ranker: ranker, Logger: s.logger}
	itemsHandler := &handlers.ItemsHandler{Store: store, Logger: s.logger}
	assetsHandler := &handlers.AssetsHandler{UploadDir: s.config.Storage.UploadDir, Logger: s.logger}

	s.router.HandleFunc("/", handlers.Root).Methods("GET")
	s.router.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")
	s.router.HandleFunc("/match", matchHandler.Match).Methods("POST")

	s.router.HandleFunc("/items", itemsHandler.List).Methods("GET")
	s.router.HandleFunc("/items", itemsHandler.Create).Methods("POST")
	s.router.HandleFunc("/items/{id:[0-9]+}", itemsHandler.Get).Methods("GET")
	s.router.HandleFunc("/items/{id:[0-9]+}", itemsHandler.Update).Methods("PUT")
	s.router.HandleFunc("/items/{id:[0-9]+}", itemsHandler.Delete).Methods("DELETE")

	s.router.HandleFunc("/uploads/{filename}", assetsHandler.Serve).Methods("GET")

	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging(s.logger))
}

// Router exposes the configured handler, used by the end-to-end tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("server listening", map[string]interface{}{
			"addr": s.httpServer.Addr,
		})
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-stop
	s.logger.Info("shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped", nil)
	return nil
}
