package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cryptoscope/internal/analysis"
)

type analyzeRequest struct {
	ProjectName string `json:"projectName"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
	Symbol   string `json:"symbol,omitempty"`
}

// Analyze requests a sentiment report from the chat provider and returns it
// together with the trading symbol extracted from the report.
func (a *App) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		a.error(w, http.StatusBadRequest, "project name is required")
		return
	}

	report, err := a.Analyzer.Analyze(r.Context(), req.ProjectName)
	if err != nil {
		a.Logger.Error().Err(err).Str("project", req.ProjectName).Msg("analysis failed")
		a.error(w, http.StatusBadGateway, "analysis failed")
		return
	}

	a.json(w, http.StatusOK, analyzeResponse{
		Analysis: report,
		Symbol:   analysis.ExtractSymbol(report),
	})
}
