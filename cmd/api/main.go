package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cryptoscope/internal/analysis"
	"cryptoscope/internal/gateway"
	"cryptoscope/internal/http/handlers"
	"cryptoscope/internal/http/httpapi"
	"cryptoscope/internal/infra"
	"cryptoscope/internal/market"
	"cryptoscope/internal/pipeline"
	"cryptoscope/internal/render"
	"cryptoscope/internal/upload"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	analyzer, err := analysis.NewAnalyzer(analysis.Options{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure analysis provider")
	}

	var runner pipeline.Runner
	switch cfg.MediaBackend {
	case infra.BackendLocal:
		uploader, err := upload.NewClient(upload.Options{
			BaseURL: cfg.LivepeerBaseURL,
			APIKey:  cfg.LivepeerAPIKey,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure upload client")
		}
		renderer := render.NewRenderer(nil, cfg.FFmpegFontFile)
		runner = pipeline.NewLocalPipeline(renderer, uploader, cfg.StagingDir, logger)
	default:
		client := gateway.NewClient(gateway.Options{BaseURL: cfg.GatewayBaseURL()})
		runner = pipeline.NewGatewayPipeline(client, client, logger)
	}
	logger.Info().Str("backend", cfg.MediaBackend).Msg("media pipeline configured")

	tokens := market.NewClient(market.Options{BaseURL: cfg.DexscreenerBaseURL})

	app := handlers.NewApp(logger, runner, analyzer, tokens)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.CORSOrigins,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
