package server

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/campusnav/core/docs"
	httpHandlers "github.com/campusnav/core/internal/adapters/http"
	"github.com/campusnav/core/internal/adapters/repository"
	"github.com/campusnav/core/internal/application/services"
	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/infrastructure/metrics"
	"github.com/campusnav/core/internal/infrastructure/storage"
	"github.com/campusnav/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	data    *storage.DataDir
	metrics *metrics.Metrics
}

// CustomValidator runs the entity validation rules on request bodies
type CustomValidator struct{}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return entities.ValidateStruct(i)
}

// handlers bundles everything setupRoutes mounts
type handlers struct {
	auth          *httpHandlers.AuthHandler
	routes        *httpHandlers.RouteHandler
	notifications *httpHandlers.NotificationHandler
	analytics     *httpHandlers.AnalyticsHandler

	locationCRUD     *httpHandlers.CRUDHandler[entities.Location, ports.LocationForm]
	routeCRUD        *httpHandlers.CRUDHandler[entities.Route, ports.RouteForm]
	userCRUD         *httpHandlers.CRUDHandler[entities.User, ports.UserForm]
	notificationCRUD *httpHandlers.CRUDHandler[entities.Notification, ports.NotificationForm]

	authService *services.AuthService
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, data *storage.DataDir, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = httpHandlers.ErrorHandler(appLogger)

	// Initialize repositories
	locationRepo := repository.NewLocationRepository(data, appLogger)
	routeRepo := repository.NewRouteRepository(data, appLogger)
	userRepo := repository.NewUserRepository(data, appLogger)
	notificationRepo := repository.NewNotificationRepository(data, appLogger)

	hasher, err := services.NewPasswordHasher(cfg.Security.PasswordHash)
	if err != nil {
		return nil, err
	}

	// Initialize services
	var observer services.NotificationObserver
	if m != nil {
		observer = m
	}
	notifier := services.NewNotifier(notificationRepo, cfg.Notifier, observer, appLogger)
	locationService := services.NewLocationService(locationRepo, notifier, appLogger)
	routeService := services.NewRouteService(routeRepo, notifier, appLogger)
	userService := services.NewUserService(userRepo, notifier, hasher, appLogger)
	notificationService := services.NewNotificationService(notificationRepo, appLogger)
	authService := services.NewAuthService(userService, hasher, cfg.JWT, appLogger)
	routeFinder := services.NewRouteFinder(routeRepo, appLogger)
	analyticsService := services.NewAnalyticsService(locationRepo, routeRepo, appLogger)

	// Initialize handlers
	h := handlers{
		auth:             httpHandlers.NewAuthHandler(authService, userService, appLogger),
		routes:           httpHandlers.NewRouteHandler(routeFinder, appLogger),
		notifications:    httpHandlers.NewNotificationHandler(notificationService, appLogger),
		analytics:        httpHandlers.NewAnalyticsHandler(analyticsService, appLogger),
		locationCRUD:     httpHandlers.NewCRUDHandler(locationService.Controller, locationService.NewForm, appLogger),
		routeCRUD:        httpHandlers.NewCRUDHandler(routeService.Controller, routeService.NewForm, appLogger),
		userCRUD:         httpHandlers.NewCRUDHandler(userService.Controller, userService.NewForm, appLogger),
		notificationCRUD: httpHandlers.NewCRUDHandler(notificationService.Controller, notificationService.NewForm, appLogger),
		authService:      authService,
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		data:    data,
		metrics: m,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(h)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			reqLogger := s.logger.WithRequestID(values.RequestID)
			latency := float64(values.Latency.Nanoseconds()) / 1000000

			if values.Error != nil {
				reqLogger.Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"latency_ms", latency,
					"remote_ip", values.RemoteIP,
					"error", values.Error.Error(),
				)
				return nil
			}

			reqLogger.LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, latency)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	// Rate limiting middleware
	if s.config.Security.RateLimitRequests > 0 {
		limit := rate.Every(s.config.Security.RateLimitWindow / time.Duration(s.config.Security.RateLimitRequests))
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: limit, Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Message: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Message: "rate limit exceeded"})
			},
		}))
	}

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Timeout middleware
	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", h.auth.Signup)
	authGroup.POST("/login", h.auth.Login)

	auth := s.authMiddleware(h.authService)
	editors := s.requireRole(entities.UserRoleAdmin, entities.UserRoleStaff)
	admins := s.requireRole(entities.UserRoleAdmin)

	v1.GET("/me", h.auth.Me, auth)
	v1.GET("/analytics", h.analytics.Report, auth)

	// Location routes (authenticated)
	h.locationCRUD.Register(v1.Group("/locations", auth), editors)

	// Route routes (authenticated)
	routeGroup := v1.Group("/routes", auth)
	routeGroup.GET("/find", h.routes.Find)
	routeGroup.GET("/endpoints", h.routes.Endpoints)
	h.routeCRUD.Register(routeGroup, editors)

	// User routes (admin only)
	h.userCRUD.Register(v1.Group("/users", auth, admins))

	// Notification routes (authenticated)
	notificationGroup := v1.Group("/notifications", auth)
	notificationGroup.GET("/mine", h.notifications.Mine)
	notificationGroup.PUT("/mine/:id/delivered", h.notifications.MarkDelivered)
	h.notificationCRUD.Register(notificationGroup, admins)
}

// setupMetrics installs the request metrics middleware and /metrics
func (s *Server) setupMetrics() {
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = httpHandlers.StatusFor(err)
			}
			s.metrics.ObserveRequest(c.Request().Method, c.Path(), status, time.Since(start))

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Storage health check
	if err := s.data.HealthCheck(); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"files":  s.data.GetStorageInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.data.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)

	srv := &http.Server{
		Addr:         address,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	return s.echo.StartServer(srv)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
