package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrTokenNotFound reports that dexscreener has no pairs for the symbol.
var ErrTokenNotFound = errors.New("market: token not found")

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client performs read-only token lookups against the dexscreener API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.dexscreener.com"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{httpClient: client, baseURL: base}
}

// TokenInfo is the subset of pair data the dashboard card renders.
type TokenInfo struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"priceUsd"`
	ChartURL string  `json:"chartUrl"`
}

type tokensResponse struct {
	Pairs []struct {
		URL       string `json:"url"`
		PriceUSD  string `json:"priceUsd"`
		BaseToken struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
	} `json:"pairs"`
}

// Token looks up the first trading pair for the given token symbol or address.
func (c *Client) Token(ctx context.Context, symbol string) (*TokenInfo, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, errors.New("market: symbol required")
	}
	endpoint := c.baseURL + "/latest/dex/tokens/" + url.PathEscape(trimmed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("market: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market: token lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("market: token lookup: http %d", resp.StatusCode)
	}

	var out tokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("market: decode response: %w", err)
	}
	if len(out.Pairs) == 0 {
		return nil, ErrTokenNotFound
	}

	pair := out.Pairs[0]
	price, err := strconv.ParseFloat(pair.PriceUSD, 64)
	if err != nil {
		return nil, fmt.Errorf("market: parse price %q: %w", pair.PriceUSD, err)
	}
	return &TokenInfo{
		Name:     pair.BaseToken.Name,
		Symbol:   pair.BaseToken.Symbol,
		PriceUSD: price,
		ChartURL: pair.URL,
	}, nil
}
