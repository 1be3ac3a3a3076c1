// Package server provides the HTTP REST API for the vibe jobs board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jordan/vibe-jobs/internal/cache"
	"github.com/jordan/vibe-jobs/internal/config"
	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/server/middleware"
	"github.com/jordan/vibe-jobs/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	db              *db.DB
	logger          *zap.Logger
	cache           *cache.CompanyCache
	resolver        *session.Resolver
	jwtService      *JWTService
	identityService *IdentityService
	authHandler     *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:     database,
		logger: logger,
	}

	// Company cache is optional; without Redis every session resolution is
	// a full fetch.
	var resolverCache session.CompanyCache
	if cfg.RedisAddr != "" {
		companyCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.cache = companyCache
		resolverCache = companyCache
	}

	s.resolver = session.NewResolver(database, resolverCache, logger)

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.identityService = NewIdentityService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.identityService, s.jwtService)

	// Setup router
	requireAuth := middleware.Auth(s.jwtService.AsTokenValidator())
	mux := http.NewServeMux()

	// Auth endpoints
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", requireAuth(http.HandlerFunc(s.handleUpdatePassword)))

	// Session and role endpoints
	mux.Handle("GET /session", requireAuth(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("POST /roles", requireAuth(http.HandlerFunc(s.handleAssignRole)))

	// Candidate profile endpoints
	mux.Handle("GET /profiles/me", requireAuth(http.HandlerFunc(s.handleGetMyProfile)))
	mux.Handle("PUT /profiles/me", requireAuth(http.HandlerFunc(s.handleUpsertMyProfile)))

	// Company endpoints
	mux.Handle("GET /companies/me", requireAuth(http.HandlerFunc(s.handleGetMyCompany)))
	mux.Handle("PUT /companies/me", requireAuth(http.HandlerFunc(s.handleUpsertMyCompany)))
	mux.Handle("GET /companies/me/jobs", requireAuth(http.HandlerFunc(s.handleListMyJobs)))
	mux.Handle("POST /companies/me/jobs", requireAuth(http.HandlerFunc(s.handleCreateJob)))

	// Job listing endpoints
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.Handle("GET /jobs/recommended", requireAuth(http.HandlerFunc(s.handleRecommendedJobs)))
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("PUT /jobs/{id}", requireAuth(http.HandlerFunc(s.handleUpdateJob)))
	mux.Handle("POST /jobs/{id}/publish", requireAuth(http.HandlerFunc(s.handlePublishJob)))
	mux.Handle("POST /jobs/{id}/pause", requireAuth(http.HandlerFunc(s.handlePauseJob)))
	mux.Handle("POST /jobs/{id}/close", requireAuth(http.HandlerFunc(s.handleCloseJob)))

	// Candidate search for employers
	mux.Handle("GET /candidates", requireAuth(http.HandlerFunc(s.handleListCandidates)))
	mux.Handle("GET /candidates/{id}", requireAuth(http.HandlerFunc(s.handleGetCandidate)))

	// Application endpoints
	mux.Handle("POST /jobs/{id}/applications", requireAuth(http.HandlerFunc(s.handleCreateApplication)))
	mux.Handle("GET /jobs/{id}/applications", requireAuth(http.HandlerFunc(s.handleListJobApplications)))
	mux.Handle("GET /applications/me", requireAuth(http.HandlerFunc(s.handleListMyApplications)))
	mux.Handle("PUT /applications/{id}/status", requireAuth(http.HandlerFunc(s.handleUpdateApplicationStatus)))
	mux.Handle("POST /applications/{id}/withdraw", requireAuth(http.HandlerFunc(s.handleWithdrawApplication)))

	// Saved job endpoints
	mux.Handle("PUT /jobs/{id}/saved", requireAuth(http.HandlerFunc(s.handleSaveJob)))
	mux.Handle("DELETE /jobs/{id}/saved", requireAuth(http.HandlerFunc(s.handleUnsaveJob)))
	mux.Handle("GET /saved-jobs", requireAuth(http.HandlerFunc(s.handleListSavedJobs)))

	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Wait for in-flight background cache refreshes before closing the pool.
	s.resolver.Close()
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("failed to close cache", zap.Error(err))
		}
	}

	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleRegister handles identity registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identityID, err := middleware.GetIdentityID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithIdentityID(w, r, identityID)
}
