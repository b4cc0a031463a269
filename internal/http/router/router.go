package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/infradesk/infra-desk/internal/auth"
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/database"
	"github.com/infradesk/infra-desk/internal/http/handler"
	"github.com/infradesk/infra-desk/internal/http/middleware"
	"github.com/infradesk/infra-desk/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/infradesk/infra-desk/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	partnerHandler     *handler.PartnerHandler
	clientHandler      *handler.ClientHandler
	projectHandler     *handler.ProjectHandler
	environmentHandler *handler.EnvironmentHandler
	serverHandler      *handler.ServerHandler
	resourceHandler    *handler.ResourceHandler
	userHandler        *handler.UserHandler
	profileHandler     *handler.ProfileHandler
	issueHandler       *handler.IssueHandler
	activityHandler    *handler.ActivityHandler
	searchHandler      *handler.SearchHandler
	exportHandler      *handler.ExportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	partnerHandler *handler.PartnerHandler,
	clientHandler *handler.ClientHandler,
	projectHandler *handler.ProjectHandler,
	environmentHandler *handler.EnvironmentHandler,
	serverHandler *handler.ServerHandler,
	resourceHandler *handler.ResourceHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	issueHandler *handler.IssueHandler,
	activityHandler *handler.ActivityHandler,
	searchHandler *handler.SearchHandler,
	exportHandler *handler.ExportHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		partnerHandler:     partnerHandler,
		clientHandler:      clientHandler,
		projectHandler:     projectHandler,
		environmentHandler: environmentHandler,
		serverHandler:      serverHandler,
		resourceHandler:    resourceHandler,
		userHandler:        userHandler,
		profileHandler:     profileHandler,
		issueHandler:       issueHandler,
		activityHandler:    activityHandler,
		searchHandler:      searchHandler,
		exportHandler:      exportHandler,
	}
}

// crud is the handler shape shared by every inventory collection
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	GetByID(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func mountCRUD(r chi.Router, h crud) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	if rt.cfg.Metrics.Enabled {
		r.Use(middleware.Metrics)
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check with connection pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  stats.Status,
			"service": "database",
			"stats":   stats,
		})
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		dbCheck := map[string]interface{}{"status": "healthy"}
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			status, code = "unhealthy", http.StatusServiceUnavailable
			dbCheck = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": map[string]interface{}{"database": dbCheck},
		})
	})

	if rt.cfg.Metrics.Enabled {
		r.Handle(rt.cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// Search and export at the root for operator tooling
	r.Group(func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Get("/search", rt.searchHandler.Search)
		r.Get("/export", rt.exportHandler.Export)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.authMiddleware.RequireWrite)

		r.Get("/search", rt.searchHandler.Search)
		r.Get("/export", rt.exportHandler.Export)

		r.Route("/partners", func(r chi.Router) { mountCRUD(r, rt.partnerHandler) })
		r.Route("/clients", func(r chi.Router) { mountCRUD(r, rt.clientHandler) })
		r.Route("/projects", func(r chi.Router) { mountCRUD(r, rt.projectHandler) })
		r.Route("/environments", func(r chi.Router) { mountCRUD(r, rt.environmentHandler) })
		r.Route("/servers", func(r chi.Router) { mountCRUD(r, rt.serverHandler) })
		r.Route("/resources", func(r chi.Router) { mountCRUD(r, rt.resourceHandler) })
		r.Route("/users", func(r chi.Router) { mountCRUD(r, rt.userHandler) })
		r.Route("/profiles", func(r chi.Router) { mountCRUD(r, rt.profileHandler) })

		r.Route("/issues", func(r chi.Router) {
			mountCRUD(r, rt.issueHandler)
			r.Get("/{id}/activities", rt.issueHandler.ListActivities)
		})

		r.Route("/activities", func(r chi.Router) { mountCRUD(r, rt.activityHandler) })
	})

	return r
}
