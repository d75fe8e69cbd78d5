package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTextToImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-image" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload textToImageRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.ModelID != textToImageModel {
			t.Fatalf("unexpected model: %s", payload.ModelID)
		}
		if !strings.Contains(payload.Prompt, "bullish outlook") {
			t.Fatalf("prompt not forwarded: %s", payload.Prompt)
		}
		if payload.Width != 1024 || payload.Height != 1024 {
			t.Fatalf("unexpected dimensions: %dx%d", payload.Width, payload.Height)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []map[string]string{{"url": "https://cdn.example.com/out.png"}},
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	got, err := client.TextToImage(context.Background(), "infographic for bullish outlook")
	if err != nil {
		t.Fatalf("TextToImage error: %v", err)
	}
	if got != "https://cdn.example.com/out.png" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestTextToImageUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model unavailable"})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.TextToImage(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestTextToImageMissingResultURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"images": []map[string]string{}})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.TextToImage(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty images array")
	}
}

func TestImageToVideo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/source.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})
	mux.HandleFunc("/image-to-video", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		if got := r.FormValue("model_id"); got != imageToVideoModel {
			t.Fatalf("unexpected model: %s", got)
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if len(data) != 4 || data[0] != 0x89 {
			t.Fatalf("image bytes not forwarded: %v", data)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []map[string]string{{"url": "https://cdn.example.com/out.mp4"}},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	got, err := client.ImageToVideo(context.Background(), ts.URL+"/source.png")
	if err != nil {
		t.Fatalf("ImageToVideo error: %v", err)
	}
	if got != "https://cdn.example.com/out.mp4" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestImageToVideoSourceFetchFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/source.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL})
	if _, err := client.ImageToVideo(context.Background(), ts.URL+"/source.png"); err == nil {
		t.Fatal("expected error when source image cannot be fetched")
	}
}
