package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cryptoscope/internal/market"
)

// TokenInfo proxies a read-only market lookup for the extracted symbol.
func (a *App) TokenInfo(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		a.error(w, http.StatusBadRequest, "symbol required")
		return
	}

	info, err := a.Market.Token(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, market.ErrTokenNotFound) {
			a.error(w, http.StatusNotFound, "token not found")
			return
		}
		a.Logger.Error().Err(err).Str("symbol", symbol).Msg("token lookup failed")
		a.error(w, http.StatusBadGateway, "token lookup failed")
		return
	}

	a.json(w, http.StatusOK, info)
}
