package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"cryptoscope/internal/http/handlers"
	"cryptoscope/internal/infra"
	"cryptoscope/internal/middleware"
	"cryptoscope/web"
)

type Options struct {
	Logger          infra.Logger
	RateLimitPerMin int
	AllowedOrigins  []string
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimiddleware.RealIP, chimiddleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", app.Analyze)
		r.Post("/video", app.MediaGenerate)
		r.Get("/tokens/{symbol}", app.TokenInfo)
	})

	r.Handle("/*", web.Handler())

	return r
}
