package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api/handler"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/api/middleware"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// Deps are the collaborators the view API is built from.
type Deps struct {
	Controller ports.Controller
	Queue      handler.IntentQueue
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Each router gets its own registry so several can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "view_api",
		Registerer: reg,
	}))

	// --- Dependencies ---
	viewHandler := handler.NewViewHandler(d.Controller)
	intentHandler := handler.NewIntentHandler(d.Queue)
	healthHandler := handler.NewHealthHandler(d.Controller)
	loggedIn := middleware.RequireLoggedIn(d.Controller)

	e.GET("/view", viewHandler.Get)

	// --- Logged-out intents ---
	e.POST("/intents/login", intentHandler.Login)
	e.POST("/intents/register", intentHandler.Register)

	// --- Logged-in intents ---
	in := e.Group("/intents", loggedIn)
	in.POST("/logout", intentHandler.Logout)
	in.POST("/refresh", intentHandler.Refresh)
	in.POST("/destinations", intentHandler.AddDestination)
	in.POST("/destinations/:id/delete", intentHandler.DeleteDestination)
	in.POST("/destinations/:id/update", intentHandler.UpdateDestination)
	in.POST("/destinations/:id/select", viewHandler.Select)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("view request")
			return nil
		},
	})
}
