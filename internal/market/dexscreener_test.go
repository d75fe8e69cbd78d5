package market

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest/dex/tokens/BTC" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"pairs": []map[string]any{{
				"url":      "https://dexscreener.com/ethereum/0xabc",
				"priceUsd": "64250.55",
				"baseToken": map[string]string{
					"name":   "Bitcoin",
					"symbol": "BTC",
				},
			}},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	info, err := client.Token(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("Token error: %v", err)
	}
	if info.Name != "Bitcoin" || info.Symbol != "BTC" {
		t.Fatalf("unexpected token: %+v", info)
	}
	if info.PriceUSD != 64250.55 {
		t.Fatalf("unexpected price: %f", info.PriceUSD)
	}
	if info.ChartURL != "https://dexscreener.com/ethereum/0xabc" {
		t.Fatalf("unexpected chart url: %s", info.ChartURL)
	}
}

func TestTokenNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"pairs": []any{}})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.Token(context.Background(), "NOPE"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got: %v", err)
	}
}

func TestTokenUnparseablePrice(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"pairs": []map[string]any{{
				"url":      "https://dexscreener.com/ethereum/0xabc",
				"priceUsd": "n/a",
				"baseToken": map[string]string{
					"name":   "Bitcoin",
					"symbol": "BTC",
				},
			}},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.Token(context.Background(), "BTC"); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}

func TestTokenUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.Token(context.Background(), "BTC"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
