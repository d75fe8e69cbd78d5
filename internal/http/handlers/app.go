package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"cryptoscope/internal/infra"
	"cryptoscope/internal/market"
	"cryptoscope/internal/pipeline"
)

// Analyzer produces a sentiment report for a project name.
type Analyzer interface {
	Analyze(ctx context.Context, projectName string) (string, error)
}

// TokenLookup resolves market data for a token symbol.
type TokenLookup interface {
	Token(ctx context.Context, symbol string) (*market.TokenInfo, error)
}

// App bundles the request handlers and their collaborators.
type App struct {
	Logger   infra.Logger
	Pipeline pipeline.Runner
	Analyzer Analyzer
	Market   TokenLookup
}

func NewApp(logger infra.Logger, p pipeline.Runner, analyzer Analyzer, tokens TokenLookup) *App {
	return &App{Logger: logger, Pipeline: p, Analyzer: analyzer, Market: tokens}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

var _ TokenLookup = (*market.Client)(nil)
