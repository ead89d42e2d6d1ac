// Package server exposes the beam and frame solvers over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alexiusacademia/goframe/internal/repo"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the /api routes. Project routes are only mounted when
// store is not nil.
func NewRouter(cfg Config, store repo.Repository) *mux.Router {
	h := &Handler{Store: store}
	limiter := NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	router := mux.NewRouter()
	router.Use(LogRequests)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	if len(cfg.TokenKey) > 0 {
		api.Use(BearerAuth(cfg.TokenKey, "/api/health"))
	}

	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/beam/solve", h.SolveBeam).Methods("POST")
	api.HandleFunc("/beam/envelope", h.BeamEnvelope).Methods("POST")
	api.HandleFunc("/beam/report", h.BeamReport).Methods("POST")
	api.HandleFunc("/frame/solve", h.SolveFrame).Methods("POST")
	api.HandleFunc("/frame/report", h.FrameReport).Methods("POST")

	if store != nil {
		api.HandleFunc("/projects", h.CreateProject).Methods("POST")
		api.HandleFunc("/projects", h.ListProjects).Methods("GET")
		api.HandleFunc("/projects/{id:[0-9]+}", h.GetProject).Methods("GET")
		api.HandleFunc("/projects/{id:[0-9]+}", h.DeleteProject).Methods("DELETE")
		api.HandleFunc("/projects/{id:[0-9]+}/solve", h.SolveProject).Methods("POST")
	}
	return router
}

// Run serves until ctx is cancelled and then shuts down gracefully
func Run(ctx context.Context, cfg Config) error {
	var store repo.Repository
	if cfg.DatabaseURL != "" {
		db, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := repo.NewPostgresRepository(db)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		store = pg
	} else {
		log.Println("DATABASE_URL not set, project routes disabled")
	}
	if len(cfg.TokenKey) == 0 {
		log.Println("TOKEN_KEY not set, API is unauthenticated")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
