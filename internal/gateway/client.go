package gateway

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

// Fixed generation parameters for the hosted gateway models.
const (
	textToImageModel  = "SG161222/RealVisXL_V4.0_Lightning"
	imageToVideoModel = "stabilityai/stable-video-diffusion-img2vid-xt-1-1"

	imageWidth  = 1024
	imageHeight = 1024
	sampler     = "DPM++ 2M Karras"
	steps       = 30
	cfgScale    = 7.5

	negativePrompt = "text, words, letters, realistic hands, photographic elements, " +
		"complex patterns, cluttered design, sketchy lines, low quality graphics"
)

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client issues single-attempt generation calls against the text-to-image and
// image-to-video endpoints of a hosted gateway. It holds no state between
// invocations.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
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
	}
}

type textToImageRequest struct {
	ModelID        string  `json:"model_id"`
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Sampler        string  `json:"sampler,omitempty"`
	Steps          int     `json:"steps,omitempty"`
	CfgScale       float64 `json:"cfg_scale,omitempty"`
}

type generationResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Error string `json:"error"`
}

// TextToImage generates a single image for the given prompt and returns its URL.
func (c *Client) TextToImage(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", errors.New("gateway: client not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("gateway: prompt required")
	}
	payload := textToImageRequest{
		ModelID:        textToImageModel,
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		Width:          imageWidth,
		Height:         imageHeight,
		Sampler:        sampler,
		Steps:          steps,
		CfgScale:       cfgScale,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gateway: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-image", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: text-to-image request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResultURL(resp, "text-to-image")
}

// ImageToVideo animates the image at sourceURL and returns the video URL. The
// source image is fetched as a stream and re-encoded as multipart form data.
func (c *Client) ImageToVideo(ctx context.Context, sourceURL string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", errors.New("gateway: client not configured")
	}
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return "", errors.New("gateway: source image url required")
	}

	imgReq, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return "", fmt.Errorf("gateway: build image fetch: %w", err)
	}
	imgResp, err := c.httpClient.Do(imgReq)
	if err != nil {
		return "", fmt.Errorf("gateway: fetch source image: %w", err)
	}
	defer imgResp.Body.Close()
	if imgResp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("gateway: fetch source image: http %d", imgResp.StatusCode)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("model_id", imageToVideoModel); err != nil {
		return "", fmt.Errorf("gateway: encode form: %w", err)
	}
	part, err := writer.CreateFormFile("image", "source.png")
	if err != nil {
		return "", fmt.Errorf("gateway: encode form: %w", err)
	}
	if _, err := io.Copy(part, imgResp.Body); err != nil {
		return "", fmt.Errorf("gateway: stream source image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("gateway: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image-to-video", &buf)
	if err != nil {
		return "", fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: image-to-video request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResultURL(resp, "image-to-video")
}

func decodeResultURL(resp *http.Response, op string) (string, error) {
	var out generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", fmt.Errorf("gateway: %s: http %d", op, resp.StatusCode)
		}
		return "", fmt.Errorf("gateway: %s: decode response: %w", op, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if out.Error != "" {
			return "", fmt.Errorf("gateway: %s: %s (http %d)", op, out.Error, resp.StatusCode)
		}
		return "", fmt.Errorf("gateway: %s: http %d", op, resp.StatusCode)
	}
	if len(out.Images) == 0 || strings.TrimSpace(out.Images[0].URL) == "" {
		return "", fmt.Errorf("gateway: %s: missing result url", op)
	}
	return out.Images[0].URL, nil
}
