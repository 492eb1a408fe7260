package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/config"
	"github.com/unclebandit/simple-crm/internal/controller"
	"github.com/unclebandit/simple-crm/internal/handler"
	"github.com/unclebandit/simple-crm/internal/observability"
)

// RouterConfig aggregates the dependencies mounted on the HTTP router.
type RouterConfig struct {
	App       config.AppConfig
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Customers *controller.CustomerController
	Health    *handler.HealthHandler
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	for _, mw := range middlewareStack(cfg, logger) {
		r.Use(mw)
	}

	if cfg.Health != nil {
		r.Get("/", cfg.Health.RootHandler)
		r.Get("/healthz", cfg.Health.HealthzHandler)
	}
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	if cfg.Customers != nil {
		cfg.Customers.Routes(r)
	}
	return r
}

func middlewareStack(cfg RouterConfig, logger *zap.Logger) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.App.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	if cfg.App.RequestTimeout > 0 {
		timeout = cfg.App.RequestTimeout
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		requestLogger(logger),
		middleware.Recoverer,
		middleware.Timeout(timeout),
		secureMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
	}
	if cfg.App.RateLimitPerMinute > 0 {
		middlewares = append(middlewares, httprate.Limit(cfg.App.RateLimitPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	return middlewares
}

// requestLogger writes one structured line per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
