package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbenali/jobboard/internal/cache"
	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/server/middleware"
	"github.com/mbenali/jobboard/internal/server/ratelimit"
	"github.com/mbenali/jobboard/internal/types"
)

// Store is the storage surface the handlers depend on. *db.DB satisfies it;
// tests substitute a mock.
type Store interface {
	UserStore

	CreateJob(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error)
	GetJobAndCountView(ctx context.Context, jobID uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context, opts db.ListJobsOptions) ([]types.Job, int, error)
	FeaturedJobs(ctx context.Context, limit int) ([]types.Job, error)
	LatestJobs(ctx context.Context, limit int) ([]types.Job, error)
	CategoryCounts(ctx context.Context) ([]types.CategoryCount, error)
	ToggleFeatured(ctx context.Context, jobID uuid.UUID) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	CreateApplication(ctx context.Context, req *types.SubmitApplicationRequest) (*types.Application, error)
	ListApplications(ctx context.Context, opts db.ListApplicationsOptions) ([]types.Application, int, error)
	ListApplicationsByEmail(ctx context.Context, email string) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status) (*types.Application, error)

	Stats(ctx context.Context) (*types.Stats, error)
	Growth(ctx context.Context, days int) (*types.Growth, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       Store
	cache       cache.Cache
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	closeDB     func()
}

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string
	RedisURL    string
	AdminEmails []string
}

// New creates a new server instance: it connects to the database, applies the
// schema, and wires the cache, auth services and router.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		c, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("cache: redis", zap.String("url", cfg.RedisURL))
	} else {
		c = cache.NewMemory()
		logger.Info("cache: in-memory (REDIS_URL not set)")
	}

	s := &Server{
		store:   database,
		cache:   c,
		logger:  logger,
		closeDB: database.Close,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig, cfg.AdminEmails)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the API router. Role gating is applied here, once, via the
// middleware wrappers; handlers never re-check roles.
func (s *Server) routes() *http.ServeMux {
	auth := middleware.RequireAuth(s.jwtService)
	admin := middleware.RequireAdmin(s.jwtService)

	mux := http.NewServeMux()

	// Public job catalog
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("GET /api/jobs/featured", s.handleFeaturedJobs)
	mux.HandleFunc("GET /api/jobs/latest", s.handleLatestJobs)
	mux.HandleFunc("GET /api/jobs/categories", s.handleJobCategories)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)

	// Admin job management
	mux.HandleFunc("POST /api/jobs", admin(s.handleCreateJob))
	mux.HandleFunc("PATCH /api/jobs/{id}/featured", admin(s.handleToggleFeatured))
	mux.HandleFunc("DELETE /api/jobs/{id}", admin(s.handleDeleteJob))

	// Applications
	mux.HandleFunc("POST /api/applications", auth(s.handleSubmitApplication))
	mux.HandleFunc("GET /api/applications", admin(s.handleListApplications))
	mux.HandleFunc("GET /api/applications/my", auth(s.handleMyApplications))
	mux.HandleFunc("PATCH /api/applications/{id}/status", admin(s.handleUpdateStatus))

	// Dashboards
	mux.HandleFunc("GET /api/admin/stats", admin(s.handleStats))
	mux.HandleFunc("GET /api/admin/growth", admin(s.handleGrowth))

	// Accounts
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("PATCH /api/users/{id}", auth(s.handleUpdateUser))

	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	_ = s.cache.Close()
	if s.closeDB != nil {
		s.closeDB()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds structured request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withRateLimit applies the per-client token buckets.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID), zap.String("path", r.URL.Path))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the client for rate limiting, by IP address.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// successResponse writes the standard success envelope with extra fields.
func (s *Server) successResponse(w http.ResponseWriter, status int, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	s.jsonResponse(w, status, body)
}

// errorResponse writes the standard error envelope. The message is shown to
// users verbatim.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "message": message})
}

// serviceError maps a service-layer error to its status and user-facing
// message. Unexpected errors are logged and masked behind fallback.
func (s *Server) serviceError(w http.ResponseWriter, err error, fallback string) {
	status := HTTPStatus(err)
	message := userMessage(err)
	if message == "" {
		message = fallback
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, message)
}
