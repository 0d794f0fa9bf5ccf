package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/wdream/freelancer-platform/docs"
	"github.com/wdream/freelancer-platform/internal/api/handler"
	"github.com/wdream/freelancer-platform/internal/api/middleware"
	"github.com/wdream/freelancer-platform/internal/core/domain"
	"github.com/wdream/freelancer-platform/internal/core/ports"
	"github.com/wdream/freelancer-platform/internal/infrastructure/http/handlers"
)

// Services carries everything the routes depend on.
type Services struct {
	Auth   ports.AuthService
	Jobs   ports.JobService
	Tokens middleware.TokenVerifier
	// Ready maps dependency name to its ping; nil marks it disabled.
	Ready map[string]handlers.PingFunc
}

// Options tunes the HTTP surface.
type Options struct {
	Env        string
	Port       string
	ClientURL  string
	Production bool
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options, svc Services, log zerolog.Logger) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, opts.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{opts.ClientURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: opts.Registerer,
	}))

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	info := handlers.NewInfoHandler(opts.Env, opts.Port)
	ready := handlers.NewReadinessHandler(svc.Ready)
	e.GET("/", info.Root)
	e.GET("/health", info.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", ready.Readiness) // readiness – are dependencies up?
	e.GET("/api/health", info.Diagnostics)

	requireAuth := middleware.Auth(svc.Tokens, svc.Auth)
	clientOnly := middleware.RBAC(domain.RoleClient)
	freelancerOnly := middleware.RBAC(domain.RoleFreelancer)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	// --- Job routes ---
	jobHandler := handler.NewJobHandler(svc.Jobs)
	jobs := e.Group("/api/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/my", jobHandler.Mine, requireAuth, clientOnly)
	jobs.GET("/:id", jobHandler.Get)
	jobs.POST("", jobHandler.Create, requireAuth, clientOnly)
	jobs.PUT("/:id", jobHandler.Update, requireAuth, clientOnly)
	jobs.DELETE("/:id", jobHandler.Delete, requireAuth, clientOnly)
	jobs.POST("/:id/proposals", jobHandler.SubmitProposal, requireAuth, freelancerOnly)

	return e
}
