package api

import (
	"net"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/rooman-dev/agl-new/internal/api/handler"
	"github.com/rooman-dev/agl-new/internal/api/middleware"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

// Options carries the dependencies of the HTTP layer.
type Options struct {
	AuthService ports.AuthService
	PostService ports.PostService
	FormService ports.FormService
	Tokens      ports.TokenVerifier

	// Readiness lists the dependencies pinged by /api/health/ready.
	Readiness []handler.DependencyCheck

	AllowedOrigins []string
	// TrustedProxies are the peers whose X-Forwarded-For is believed when
	// resolving the client address. Empty means the peer address is used.
	TrustedProxies []*net.IPNet
	Logger         zerolog.Logger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	EnableDocs bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)
	e.IPExtractor = ipExtractor(opts.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	if opts.EnableDocs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	requireAuth := middleware.Auth(opts.Tokens)
	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	health := handler.NewHealthHandler(opts.Readiness...)
	api.GET("/health", health.Liveness)
	api.GET("/health/ready", health.Readiness)

	// --- Auth ---
	auth := handler.NewAuthHandler(opts.AuthService)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/verify", auth.Verify, requireAuth)
	api.POST("/auth/change-password", auth.ChangePassword, requireAuth)

	// --- Posts ---
	posts := handler.NewPostHandler(opts.PostService)
	api.GET("/posts/published", posts.ListPublished)
	api.GET("/posts/id/:id", posts.GetByID)
	api.GET("/posts/slug/:slug", posts.GetBySlug)
	api.GET("/posts", posts.ListAll, requireAuth)
	api.POST("/posts", posts.Create, requireAuth)
	api.PUT("/posts/:id", posts.Update, requireAuth)
	api.DELETE("/posts/:id", posts.Delete, requireAuth)

	// --- Public forms ---
	forms := handler.NewFormHandler(opts.FormService)
	api.POST("/contact/contact", forms.Contact)
	api.POST("/contact/consultation", forms.Consultation)

	return e
}

// ipExtractor resolves c.RealIP(). Forwarding headers are ignored unless
// the request arrives from a configured proxy.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
