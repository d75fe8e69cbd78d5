package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrMissingToken reports an unset API token. It is a configuration error and
// is surfaced before any network call is attempted.
var ErrMissingToken = errors.New("upload: api token is missing")

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client talks to the hosted media platform: it negotiates an upload slot,
// transfers the asset bytes, and resolves playback URLs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(opts Options) (*Client, error) {
	token := strings.TrimSpace(opts.APIKey)
	if token == "" {
		return nil, ErrMissingToken
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://livepeer.studio/api"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: client,
		baseURL:    base,
		token:      token,
	}, nil
}

// UploadSlot is a negotiated upload target and the playback identifier the
// uploaded asset will be reachable under.
type UploadSlot struct {
	URL        string
	PlaybackID string
}

type requestUploadResponse struct {
	URL   string `json:"url"`
	Asset struct {
		PlaybackID string `json:"playbackId"`
	} `json:"asset"`
}

// RequestUpload negotiates an upload slot for an asset with the given name.
func (c *Client) RequestUpload(ctx context.Context, name string) (*UploadSlot, error) {
	if c == nil {
		return nil, errors.New("upload: client not configured")
	}
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("upload: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/asset/request-upload", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: request slot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("upload: request slot: http %d", resp.StatusCode)
	}

	var out requestUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upload: decode slot response: %w", err)
	}
	if out.URL == "" || out.Asset.PlaybackID == "" {
		return nil, errors.New("upload: slot response missing url or playback id")
	}
	return &UploadSlot{URL: out.URL, PlaybackID: out.Asset.PlaybackID}, nil
}

// Upload transfers the asset bytes to a previously negotiated upload URL as
// multipart form data.
func (c *Client) Upload(ctx context.Context, uploadURL, name string, source io.Reader) error {
	if c == nil {
		return errors.New("upload: client not configured")
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("upload: encode form: %w", err)
	}
	if _, err := io.Copy(part, source); err != nil {
		return fmt.Errorf("upload: read source: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("upload: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload: transfer: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("upload: transfer: http %d", resp.StatusCode)
	}
	return nil
}

// PlaybackURL resolves a playback identifier to a streamable URL.
func (c *Client) PlaybackURL(playbackID string) string {
	return fmt.Sprintf("https://livepeercdn.studio/hls/%s/index.m3u8", playbackID)
}
