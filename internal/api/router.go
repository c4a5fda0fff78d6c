package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Harsha6202/personalized-news-sentiment/docs"
	"github.com/Harsha6202/personalized-news-sentiment/internal/api/handler"
	"github.com/Harsha6202/personalized-news-sentiment/internal/api/middleware"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
)

// RouteGuard answers both the presentation-level question (/v1/guard) and
// the per-request check in front of session-bound endpoints.
type RouteGuard interface {
	handler.Evaluator
	middleware.Guarder
}

// Dependencies groups everything the local API needs.
type Dependencies struct {
	Session ports.SessionService
	News    ports.NewsService
	Guard   RouteGuard
	Inbox   handler.Drainer
	Probes  map[string]handler.Probe
	Log     zerolog.Logger

	// Registry receives the HTTP metrics; nil means the prometheus default.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "newsreader"}
	handlerConfig := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promConfig.Registerer = deps.Registry
		handlerConfig.Gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Health probes, metrics and docs ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: remote API and redis
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerConfig))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Session ---
	sessionHandler := handler.NewSessionHandler(deps.Session)
	v1.GET("/session", sessionHandler.Get)
	v1.GET("/session/events", sessionHandler.Events)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/register", sessionHandler.Register)
	v1.POST("/session/logout", sessionHandler.Logout)
	v1.POST("/session/verify-email", sessionHandler.VerifyEmail)
	v1.POST("/session/verification-email", sessionHandler.SendVerificationEmail)

	// --- Guard and notifications ---
	v1.GET("/guard", handler.NewGuardHandler(deps.Guard).Evaluate)
	v1.GET("/notifications", handler.NewNotificationHandler(deps.Inbox).Drain)

	// --- Session-bound data (route guard applied) ---
	newsHandler := handler.NewNewsHandler(deps.News)
	guard := middleware.Guard(deps.Guard)
	v1.GET("/articles", newsHandler.List, guard)
	v1.GET("/articles/:id", newsHandler.Get, guard)
	v1.POST("/articles/:id/save", newsHandler.ToggleSaved, guard)
	v1.POST("/articles/:id/read", newsHandler.MarkRead, guard)
	v1.POST("/articles/:id/share", newsHandler.Share, guard)
	v1.GET("/profile", newsHandler.Profile, guard)
	v1.GET("/stats", newsHandler.Stats, guard)
	v1.PUT("/preferences", newsHandler.UpdatePreferences, guard)

	return e
}
